package handler

import (
	"log"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kdduha/plantdoc/internal/ui"
)

type RouterOptions struct {
	Logger        *log.Logger
	Registry      *ui.Registry
	ClassifierURL string
	SecureCookie  bool

	// Timeout bounds every console request except training and the
	// explanation stream. Zero disables it.
	Timeout time.Duration

	// Explainer enables the advisor routes when set.
	Explainer Explainer
}

// Mount registers the console routes on r.
func Mount(r chi.Router, opts RouterOptions) error {
	uploads, err := Uploads(opts.ClassifierURL)
	if err != nil {
		return err
	}

	r.Get("/healthz", Health)
	r.Get("/static/uploads/*", uploads.ServeHTTP)

	sessions := NewSessions(opts.Logger, opts.Registry, opts.SecureCookie)
	console := NewConsoleHandler(opts.Logger, opts.Explainer != nil)

	var explain *ExplainHandler
	if opts.Explainer != nil {
		explain = NewExplainHandler(opts.Explainer)
	}

	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)

		r.Post("/train", console.Train)
		if explain != nil {
			r.Post("/explain/stream", explain.ExplainStream)
		}

		r.Group(func(r chi.Router) {
			if opts.Timeout > 0 {
				r.Use(middleware.Timeout(opts.Timeout))
			}

			r.Get("/", console.Index)
			r.Post("/upload", console.Upload)
			r.Post("/reset", console.Reset)
			r.Post("/notifications/{id}/dismiss", console.Dismiss)
			r.Post("/nav/toggle", console.ToggleMenu)
			r.Post("/nav/upload", console.ScrollToUpload)
			r.Get("/report", console.Report)

			r.Get("/api/state", State)
			r.Post("/api/status", Status)
			r.Post("/api/viewport", Viewport)
			r.Post("/api/nav", Nav)
			r.Post("/api/drag", Drag)

			if explain != nil {
				r.Post("/explain", explain.Explain)
			}
		})
	})
	return nil
}
