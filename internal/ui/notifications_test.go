package ui

import (
	"testing"
	"time"
)

func TestNotifications_AutoDismiss(t *testing.T) {
	c := NewController(nil, &fakeClassifier{}, 20*time.Millisecond)
	defer c.Close()

	c.ShowSuccess("saved")
	c.ShowError("broken")
	if n := len(c.Snapshot().Notifications); n != 2 {
		t.Fatalf("expected 2 notifications, got %d", n)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(c.Snapshot().Notifications) > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("notifications not dismissed: %+v", c.Snapshot().Notifications)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNotifications_ManualDismissBeforeTimer(t *testing.T) {
	c := NewController(nil, &fakeClassifier{}, 30*time.Millisecond)
	defer c.Close()

	n := c.ShowError("first")
	keep := c.ShowError("second")

	if !c.Dismiss(n.ID) {
		t.Fatal("expected dismiss to remove the banner")
	}
	if c.Dismiss(n.ID) {
		t.Fatal("second dismiss must report nothing removed")
	}

	s := c.Snapshot()
	if len(s.Notifications) != 1 || s.Notifications[0].ID != keep.ID {
		t.Fatalf("unexpected notifications: %+v", s.Notifications)
	}

	time.Sleep(80 * time.Millisecond)
	if len(c.Snapshot().Notifications) != 0 {
		t.Fatal("remaining banner not auto-dismissed")
	}
}

func TestNotifications_StylesRegisteredOnce(t *testing.T) {
	c := newTestController(&fakeClassifier{})

	for i := 0; i < 3; i++ {
		c.ShowError("e")
		c.ShowSuccess("s")
	}

	s := c.Snapshot()
	if len(s.Notifications) != 6 {
		t.Fatalf("notifications must stack, got %d", len(s.Notifications))
	}
	want := []string{"error-notification-styles", "success-notification-styles"}
	if len(s.Styles) != len(want) {
		t.Fatalf("styles = %v", s.Styles)
	}
	for i := range want {
		if s.Styles[i] != want[i] {
			t.Fatalf("styles = %v, want %v", s.Styles, want)
		}
	}
}

func TestShowError_ReturnsToIntake(t *testing.T) {
	c := newTestController(&fakeClassifier{})
	c.ShowResults(*diagnosis(0.9))

	n := c.ShowError("nope")

	s := c.Snapshot()
	if s.Phase != PhaseError || !s.IntakeVisible || s.ResultsVisible || s.LoadingVisible {
		t.Fatalf("unexpected visibility: %+v", s)
	}
	if n.Kind.Class() != "error-notification" || n.Kind.Icon() != "fa-exclamation-triangle" {
		t.Fatalf("unexpected kind decoration: %q %q", n.Kind.Class(), n.Kind.Icon())
	}
}

func TestShowSuccess_KeepsVisibility(t *testing.T) {
	c := newTestController(&fakeClassifier{})
	c.ShowResults(*diagnosis(0.9))

	c.ShowSuccess("ok")

	if s := c.Snapshot(); s.Phase != PhaseResult || !s.ResultsVisible {
		t.Fatalf("success banner changed visibility: %+v", s)
	}
}
