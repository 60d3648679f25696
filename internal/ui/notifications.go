package ui

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	KindError   NotificationKind = "error"
	KindSuccess NotificationKind = "success"
)

// Class is the banner's CSS class.
func (k NotificationKind) Class() string {
	return string(k) + "-notification"
}

// StyleMarker names the style block the banner needs; the block is
// registered once per session.
func (k NotificationKind) StyleMarker() string {
	return k.Class() + "-styles"
}

func (k NotificationKind) Icon() string {
	if k == KindError {
		return "fa-exclamation-triangle"
	}
	return "fa-check-circle"
}

type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

// pushNotificationLocked appends a banner and arms its auto-dismiss
// timer. Callers hold c.mu.
func (c *Controller) pushNotificationLocked(kind NotificationKind, message string) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: c.now(),
	}
	c.state.Notifications = append(c.state.Notifications, n)

	if marker := kind.StyleMarker(); !slices.Contains(c.state.Styles, marker) {
		c.state.Styles = append(c.state.Styles, marker)
	}

	if c.notificationTTL > 0 {
		id := n.ID
		c.timers[id] = time.AfterFunc(c.notificationTTL, func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.timers, id)
			c.removeNotificationLocked(id)
		})
	}
	return n
}

// removeNotificationLocked is a no-op when the banner is already gone.
func (c *Controller) removeNotificationLocked(id string) bool {
	i := slices.IndexFunc(c.state.Notifications, func(n Notification) bool { return n.ID == id })
	if i < 0 {
		return false
	}
	c.state.Notifications = slices.Delete(c.state.Notifications, i, i+1)
	return true
}

// ShowError reports a failure: the intake area comes back, loading and
// results are hidden and an error banner is added.
func (c *Controller) ShowError(message string) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showErrorLocked(message)
}

func (c *Controller) showErrorLocked(message string) Notification {
	c.state.Phase = PhaseError
	c.state.LoadingVisible = false
	c.state.IntakeVisible = true
	c.state.ResultsVisible = false
	return c.pushNotificationLocked(KindError, message)
}

func (c *Controller) ShowSuccess(message string) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pushNotificationLocked(KindSuccess, message)
}

// Dismiss closes a banner by hand. It reports whether the banner was
// still showing.
func (c *Controller) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	return c.removeNotificationLocked(id)
}
