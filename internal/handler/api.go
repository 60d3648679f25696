package handler

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/kdduha/plantdoc/internal/ui"
)

type ViewportRequest struct {
	ScrollY  float64            `json:"scroll_y" example:"420"`
	Sections map[string]ui.Rect `json:"sections"`
}

type NavRequest struct {
	Href string `json:"href" example:"#upload"`
}

type DragRequest struct {
	Over bool `json:"over"`
}

// State godoc
// @Summary Current page state
// @Tags api
// @Produce json
// @Success 200 {object} StateResponse
// @Router /api/state [get]
func State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStateResponse(controllerFrom(r).Snapshot()))
}

// Status godoc
// @Summary Poll the model status
// @Description Refreshes the status line. A classifier failure shows up in the returned status text.
// @Tags api
// @Produce json
// @Success 200 {object} StateResponse
// @Router /api/status [post]
func Status(w http.ResponseWriter, r *http.Request) {
	ctl := controllerFrom(r)
	_ = ctl.CheckModelStatus(r.Context())
	writeJSON(w, http.StatusOK, newStateResponse(ctl.Snapshot()))
}

// Viewport godoc
// @Summary Report a scroll position
// @Description Updates the active navigation link and the header style from section boxes measured by the browser.
// @Tags api
// @Accept json
// @Produce json
// @Param request body ViewportRequest true "Viewport"
// @Success 200 {object} ui.NavState
// @Failure 400 {string} string
// @Router /api/viewport [post]
func Viewport(w http.ResponseWriter, r *http.Request) {
	var req ViewportRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %s", err), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, controllerFrom(r).Scroll(req.ScrollY, req.Sections))
}

// Nav godoc
// @Summary Click a navigation link
// @Description Scrolls to the anchor target; 404 when the page has no such section.
// @Tags api
// @Accept json
// @Produce json
// @Param request body NavRequest true "Link"
// @Success 200 {object} StateResponse
// @Failure 400 {string} string
// @Failure 404 {object} StateResponse
// @Router /api/nav [post]
func Nav(w http.ResponseWriter, r *http.Request) {
	var req NavRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %s", err), http.StatusBadRequest)
		return
	}

	ctl := controllerFrom(r)
	status := http.StatusOK
	if !ctl.NavClick(req.Href) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, newStateResponse(ctl.Snapshot()))
}

// Drag godoc
// @Summary Drag a file over the drop zone
// @Tags api
// @Accept json
// @Produce json
// @Param request body DragRequest true "Drag state"
// @Success 200 {object} StateResponse
// @Failure 400 {string} string
// @Router /api/drag [post]
func Drag(w http.ResponseWriter, r *http.Request) {
	var req DragRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %s", err), http.StatusBadRequest)
		return
	}

	ctl := controllerFrom(r)
	if req.Over {
		ctl.DragOver()
	} else {
		ctl.DragLeave()
	}
	writeJSON(w, http.StatusOK, newStateResponse(ctl.Snapshot()))
}

// Health godoc
// @Summary Liveness probe
// @Tags api
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Uploads proxies saved images back from the classifier so result
// thumbnails resolve against the console's origin.
func Uploads(classifierURL string) (http.Handler, error) {
	target, err := url.Parse(classifierURL)
	if err != nil {
		return nil, fmt.Errorf("parse classifier url: %w", err)
	}
	return httputil.NewSingleHostReverseProxy(target), nil
}
