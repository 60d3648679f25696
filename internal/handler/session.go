package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/kdduha/plantdoc/internal/ui"
)

const (
	sessionCookie = "plantdoc_session"
	statusTimeout = 5 * time.Second
)

type sessionKey struct{}

// Sessions resolves the caller's controller from its cookie and stores it
// in the request context. A new session polls the model status once.
type Sessions struct {
	registry *ui.Registry
	logger   *log.Logger
	secure   bool
}

func NewSessions(logger *log.Logger, registry *ui.Registry, secureCookie bool) *Sessions {
	return &Sessions{
		registry: registry,
		logger:   logger,
		secure:   secureCookie,
	}
}

func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil {
			id = c.Value
		}

		id, ctl, created := s.registry.GetOrCreate(id)
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.secure,
				SameSite: http.SameSiteLaxMode,
			})

			// Only the page load waits for the poll; API callers get the
			// "checking" status and the answer lands in the session later.
			if r.Method == http.MethodGet && r.URL.Path == "/" {
				s.checkStatus(r.Context(), id, ctl)
			} else {
				go s.checkStatus(context.WithoutCancel(r.Context()), id, ctl)
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, ctl)))
	})
}

func (s *Sessions) checkStatus(ctx context.Context, id string, ctl *ui.Controller) {
	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()
	if err := ctl.CheckModelStatus(ctx); err != nil {
		s.logger.Printf("initial status check for session %s: %v\n", id, err)
	}
}

// controllerFrom returns the controller put in place by Sessions.Middleware.
func controllerFrom(r *http.Request) *ui.Controller {
	ctl, _ := r.Context().Value(sessionKey{}).(*ui.Controller)
	return ctl
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
