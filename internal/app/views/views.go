// Package views maps view names to page view models and remembers which view
// each visitor is on.
package views

import (
	"strings"
	"sync"
	"time"
)

// View is one of the site's top-level pages
type View string

const (
	Home       View = "home"
	Admissions View = "admissions"
	Staff      View = "staff"
	Admin      View = "admin"
	About      View = "about"
)

// NavItem is one navbar link
type NavItem struct {
	Label string `json:"label"`
	View  View   `json:"view"`
}

// NavItems are the navbar links in display order
var NavItems = []NavItem{
	{Label: "Home", View: Home},
	{Label: "Admissions", View: Admissions},
	{Label: "Staff", View: Staff},
	{Label: "Admin", View: Admin},
	{Label: "About", View: About},
}

// Parse returns the view named by name; anything unknown is Home
func Parse(name string) View {
	switch v := View(strings.ToLower(strings.TrimSpace(name))); v {
	case Home, Admissions, Staff, Admin, About:
		return v
	default:
		return Home
	}
}

// visitorTTL bounds how long an idle visitor's position is kept
const visitorTTL = 24 * time.Hour

type position struct {
	view   View
	seenAt time.Time
}

// Navigator keeps the current view per visitor in memory. There is no
// history; navigating replaces the current view.
type Navigator struct {
	mu       sync.Mutex
	visitors map[string]position
	now      func() time.Time
}

func NewNavigator(now func() time.Time) *Navigator {
	if now == nil {
		now = time.Now
	}
	return &Navigator{visitors: make(map[string]position), now: now}
}

// Current is Home for visitors that never navigated
func (n *Navigator) Current(visitor string) View {
	n.mu.Lock()
	defer n.mu.Unlock()

	p, ok := n.visitors[visitor]
	if !ok {
		return Home
	}
	return p.view
}

// Navigate moves visitor to the view named by name and returns it
func (n *Navigator) Navigate(visitor, name string) View {
	v := Parse(name)
	now := n.now()

	n.mu.Lock()
	defer n.mu.Unlock()

	for id, p := range n.visitors {
		if now.Sub(p.seenAt) > visitorTTL {
			delete(n.visitors, id)
		}
	}
	n.visitors[visitor] = position{view: v, seenAt: now}
	return v
}

func (n *Navigator) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.visitors)
}
