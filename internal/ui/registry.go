package ui

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kdduha/plantdoc/internal/metrics"
)

type session struct {
	ctl      *Controller
	lastSeen time.Time
}

// Registry maps session ids to controllers and forgets sessions that
// stay idle longer than idleTTL.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	factory  func() *Controller
	idleTTL  time.Duration
	now      func() time.Time
}

func NewRegistry(factory func() *Controller, idleTTL time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		factory:  factory,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Get returns the controller for id and refreshes its idle clock.
func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = r.now()
	return s.ctl, true
}

// GetOrCreate returns the session for id, or a new one under a fresh id
// when id is unknown. created reports the latter.
func (r *Registry) GetOrCreate(id string) (string, *Controller, bool) {
	if id != "" {
		if ctl, ok := r.Get(id); ok {
			return id, ctl, false
		}
	}

	ctl := r.factory()
	id = uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = &session{ctl: ctl, lastSeen: r.now()}
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.SetActiveSessions(n)
	return id, ctl, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops idle sessions and returns how many were dropped.
func (r *Registry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}

	r.mu.Lock()
	deadline := r.now().Add(-r.idleTTL)
	var expired []*Controller
	for id, s := range r.sessions {
		if s.lastSeen.Before(deadline) {
			expired = append(expired, s.ctl)
			delete(r.sessions, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	for _, ctl := range expired {
		ctl.Close()
	}
	metrics.SetActiveSessions(n)
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
