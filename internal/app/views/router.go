package views

import (
	"context"
	"fmt"
	"time"

	"github.com/qmc/portal/internal/app/services"
)

// Page is a rendered view: the shared chrome plus the view's own content
type Page struct {
	View    View             `json:"view"`
	Nav     []NavItem        `json:"nav"`
	Chrome  *services.Chrome `json:"chrome"`
	Year    int              `json:"year"`
	Content interface{}      `json:"content"`
}

// Params carries the per-request inputs some views read
type Params struct {
	// Query filters the staff directory
	Query string
	// Token is the console session, if any
	Token string
}

// Router dispatches a view to the page that renders it
type Router struct {
	pages services.PageService
	now   func() time.Time
}

func NewRouter(pages services.PageService, now func() time.Time) *Router {
	if now == nil {
		now = time.Now
	}
	return &Router{pages: pages, now: now}
}

func (r *Router) Render(ctx context.Context, view View, params Params) (*Page, error) {
	chrome, err := r.pages.Chrome(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading chrome: %w", err)
	}

	var content interface{}
	switch view {
	case Admissions:
		content, err = r.pages.Admissions(ctx)
	case Staff:
		content, err = r.pages.Staff(ctx, params.Query)
	case Admin:
		content, err = r.pages.Admin(ctx, params.Token)
	case About:
		content, err = r.pages.About(ctx)
	default:
		view = Home
		content, err = r.pages.Home(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("error rendering %s: %w", view, err)
	}

	return &Page{
		View:    view,
		Nav:     NavItems,
		Chrome:  chrome,
		Year:    r.now().Year(),
		Content: content,
	}, nil
}
