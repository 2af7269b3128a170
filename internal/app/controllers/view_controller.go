package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qmc/portal/internal/app/models/dto"
	"github.com/qmc/portal/internal/app/services"
	"github.com/qmc/portal/internal/app/views"
	"github.com/qmc/portal/internal/middleware"
)

// ViewController serves the public pages
type ViewController struct {
	router    *views.Router
	navigator *views.Navigator
	branding  services.BrandingService
	quotes    services.QuoteService
	staff     services.StaffService
}

// NewViewController creates a new ViewController
func NewViewController(
	router *views.Router,
	navigator *views.Navigator,
	branding services.BrandingService,
	quotes services.QuoteService,
	staff services.StaffService,
) *ViewController {
	return &ViewController{
		router:    router,
		navigator: navigator,
		branding:  branding,
		quotes:    quotes,
		staff:     staff,
	}
}

func (c *ViewController) render(ctx *gin.Context, view views.View) {
	page, err := c.router.Render(ctx.Request.Context(), view, views.Params{
		Query: ctx.Query("q"),
		Token: middleware.TokenFromRequest(ctx),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(page, ""))
}

// CurrentView renders the view the visitor was last on
// @Summary Render the current view
// @Description Renders the page the visitor navigated to last, home for new visitors
// @Tags views
// @Produce json
// @Success 200 {object} dto.APIResponse{data=views.Page} "Page rendered"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /views [get]
func (c *ViewController) CurrentView(ctx *gin.Context) {
	c.render(ctx, c.navigator.Current(middleware.VisitorID(ctx)))
}

// Navigate switches to a view and renders it
// @Summary Navigate to a view
// @Description Sets the visitor's current view and renders it. Unknown names render home.
// @Tags views
// @Produce json
// @Param view path string true "home, admissions, staff, admin or about"
// @Param q query string false "Staff search, staff view only"
// @Success 200 {object} dto.APIResponse{data=views.Page} "Page rendered"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /views/{view} [get]
func (c *ViewController) Navigate(ctx *gin.Context) {
	c.render(ctx, c.navigator.Navigate(middleware.VisitorID(ctx), ctx.Param("view")))
}

// GetSiteConfig returns the branding shown in the navbar and footer
// @Summary Get site configuration
// @Tags views
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.SiteConfig}
// @Router /config [get]
func (c *ViewController) GetSiteConfig(ctx *gin.Context) {
	cfg, err := c.branding.GetConfig(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(cfg, ""))
}

// GetQuote returns the home page quote
// @Summary Get the quote of the day
// @Description Returns the admin override when enabled, otherwise a generated quote with a fixed fallback
// @Tags views
// @Produce json
// @Success 200 {object} dto.APIResponse{data=aitext.Quote}
// @Router /home/quote [get]
func (c *ViewController) GetQuote(ctx *gin.Context) {
	q, err := c.quotes.HomeQuote(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(q, ""))
}

// GetStaffDirectory returns the faculty page
// @Summary Get the staff directory
// @Description Seeds the initial roster on first use. q filters by name or department.
// @Tags views
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {object} dto.APIResponse{data=services.StaffDirectory}
// @Router /staff [get]
func (c *ViewController) GetStaffDirectory(ctx *gin.Context) {
	dir, err := c.staff.Directory(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dir, ""))
}
