package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/kdduha/plantdoc/internal/advisor"
	"github.com/kdduha/plantdoc/internal/models"
)

type Explainer interface {
	Send(ctx context.Context, q *advisor.Query) (*models.ExplainResponse, error)
	SendStream(ctx context.Context, q *advisor.Query) (<-chan models.StreamChunk, error)
}

type ExplainHandler struct {
	service Explainer
}

func NewExplainHandler(service Explainer) *ExplainHandler {
	return &ExplainHandler{
		service: service,
	}
}

// query builds the advisor request for the session's current diagnosis.
// It reports false after writing a 409 when there is nothing to explain.
func query(w http.ResponseWriter, r *http.Request, req models.ExplainRequest) (*advisor.Query, bool) {
	ctl := controllerFrom(r)
	current := ctl.Current()
	if current == nil {
		http.Error(w, "no diagnosis to explain", http.StatusConflict)
		return nil, false
	}
	return &advisor.Query{
		Diagnosis: *current,
		Preview:   ctl.Preview(),
		Request:   req,
	}, true
}

func decodeExplainRequest(r *http.Request) (models.ExplainRequest, error) {
	var req models.ExplainRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("invalid JSON: %w", err)
		}
	} else {
		req.Prompt = r.FormValue("prompt")
	}

	if err := req.Validate(); err != nil {
		return req, fmt.Errorf("request validation failed: %w", err)
	}
	return req, nil
}

// Explain godoc
// @Summary Explain the current diagnosis
// @Description Asks the advisor model about the session's current result. Form posts are redirected back to the page with the answer shown under the result.
// @Tags explain
// @Accept json
// @Produce json
// @Param request body models.ExplainRequest true "Explain request"
// @Success 200 {object} models.ExplainResponse
// @Failure 400 {string} string
// @Failure 409 {string} string
// @Failure 500 {string} string
// @Router /explain [post]
func (h *ExplainHandler) Explain(w http.ResponseWriter, r *http.Request) {
	req, err := decodeExplainRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q, ok := query(w, r, req)
	if !ok {
		return
	}

	resp, err := h.service.Send(r.Context(), q)
	if err != nil {
		http.Error(w, fmt.Sprintf("service error: %s", err), http.StatusInternalServerError)
		return
	}
	controllerFrom(r).SetExplanation(resp.Explanation)

	if !wantsJSON(r) {
		http.Redirect(w, r, "/#results", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ExplainStream godoc
// @Summary Stream explanation
// @Description Stream explanation tokens for the session's current diagnosis.
// @Tags explain
// @Accept json
// @Produce text/event-stream
// @Param request body models.ExplainRequest true "Explain request"
// @Success 200 {object} models.StreamChunk "Stream of tokens (SSE)"
// @Failure 400 {string} string
// @Failure 409 {string} string
// @Failure 500 {string} string
// @Router /explain/stream [post]
func (h *ExplainHandler) ExplainStream(w http.ResponseWriter, r *http.Request) {
	req, err := decodeExplainRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q, ok := query(w, r, req)
	if !ok {
		return
	}

	stream, err := h.service.SendStream(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher := http.NewResponseController(w)
	var text strings.Builder

	for chunk := range stream {
		if chunk.Err != nil {
			fmt.Fprintf(w, "event: error\ndata: %v\n\n", chunk.Err)
			flusher.Flush()
			return
		}

		data, err := sonic.Marshal(chunk)
		if err != nil {
			fmt.Fprintf(w, "event: error\ndata: marshal error %v\n\n", err)
			flusher.Flush()
			return
		}

		text.WriteString(chunk.Delta)
		fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
		flusher.Flush()

		if chunk.Done {
			controllerFrom(r).SetExplanation(text.String())
			fmt.Fprintf(w, "event: done\ndata: {}\n\n")
			flusher.Flush()
			return
		}
	}
}
