package ui

import (
	"testing"
	"time"
)

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry(func() *Controller { return newTestController(&fakeClassifier{}) }, time.Minute)

	id, first, created := r.GetOrCreate("")
	if !created || id == "" || first == nil {
		t.Fatalf("expected new session, got %q %v %v", id, first, created)
	}

	sameID, same, created := r.GetOrCreate(id)
	if created || sameID != id || same != first {
		t.Fatal("expected existing session")
	}

	otherID, other, created := r.GetOrCreate("unknown")
	if !created || otherID == "unknown" || other == first {
		t.Fatal("unknown id must yield a fresh session under a new id")
	}
	if r.Len() != 2 {
		t.Fatalf("Len = %d", r.Len())
	}
}

func TestRegistry_SweepDropsIdleSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRegistry(func() *Controller { return newTestController(&fakeClassifier{}) }, 10*time.Minute)
	r.now = func() time.Time { return now }

	idle, _, _ := r.GetOrCreate("")
	active, _, _ := r.GetOrCreate("")

	now = now.Add(9 * time.Minute)
	if _, ok := r.Get(active); !ok {
		t.Fatal("active session missing")
	}

	now = now.Add(2 * time.Minute)
	if n := r.Sweep(); n != 1 {
		t.Fatalf("Sweep dropped %d sessions", n)
	}
	if _, ok := r.Get(idle); ok {
		t.Fatal("idle session survived")
	}
	if _, ok := r.Get(active); !ok {
		t.Fatal("active session dropped")
	}
}
