package ui

import (
	"slices"
	"strings"
)

// Sections are the page sections tracked by the navigation bar, in page
// order.
var Sections = []string{"home", "upload", "about"}

// ScrollOffset is the viewport offset, in CSS pixels, used both for the
// current-section probe and for the header style switch.
const ScrollOffset = 100

// Rect is a section's bounding box relative to the viewport.
type Rect struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

type HeaderStyle struct {
	Scrolled   bool   `json:"scrolled"`
	Background string `json:"background"`
	BoxShadow  string `json:"box_shadow"`
}

type NavState struct {
	ActiveLink string      `json:"active_link"`
	Header     HeaderStyle `json:"header"`
	MenuOpen   bool        `json:"menu_open"`
}

// CurrentSection returns the last section, in page order, whose box
// straddles ScrollOffset. Sections missing from rects are skipped.
func CurrentSection(rects map[string]Rect) string {
	current := ""
	for _, id := range Sections {
		r, ok := rects[id]
		if !ok {
			continue
		}
		if r.Top <= ScrollOffset && r.Bottom >= ScrollOffset {
			current = id
		}
	}
	return current
}

func HeaderFor(scrollY float64) HeaderStyle {
	if scrollY > ScrollOffset {
		return HeaderStyle{
			Scrolled:   true,
			Background: "rgba(255, 255, 255, 0.98)",
			BoxShadow:  "0 2px 20px rgba(0, 0, 0, 0.1)",
		}
	}
	return HeaderStyle{
		Background: "rgba(255, 255, 255, 0.95)",
		BoxShadow:  "none",
	}
}

// NavClick handles a click on an in-page link. Unknown targets leave the
// state untouched and report false.
func (c *Controller) NavClick(href string) bool {
	target, ok := strings.CutPrefix(href, "#")
	if !ok || !slices.Contains(Sections, target) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ScrollTarget = target
	c.state.Nav.ActiveLink = href
	return true
}

// Scroll recomputes the active link and header style for a viewport.
func (c *Controller) Scroll(scrollY float64, rects map[string]Rect) NavState {
	current := CurrentSection(rects)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Nav.ActiveLink = ""
	if current != "" {
		c.state.Nav.ActiveLink = "#" + current
	}
	c.state.Nav.Header = HeaderFor(scrollY)
	return c.state.Nav
}

func (c *Controller) ToggleMenu() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Nav.MenuOpen = !c.state.Nav.MenuOpen
	return c.state.Nav.MenuOpen
}

func (c *Controller) ScrollToUpload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ScrollTarget = "upload"
}
