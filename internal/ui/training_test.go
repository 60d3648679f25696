package ui

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kdduha/plantdoc/internal/client"
	"github.com/kdduha/plantdoc/internal/models"
)

// recordingControl remembers every label and disabled flag it was given.
type recordingControl struct {
	mu       sync.Mutex
	label    string
	disabled bool
	labels   []string
}

func (r *recordingControl) Label() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.label
}

func (r *recordingControl) SetLabel(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.label = label
	r.labels = append(r.labels, label)
}

func (r *recordingControl) SetDisabled(disabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled = disabled
}

func TestTrainModel_Outcomes(t *testing.T) {
	tests := []struct {
		name       string
		resp       *models.TrainResponse
		err        error
		wantKind   NotificationKind
		wantMsg    string
		wantErr    bool
		wantStatus string
	}{
		{
			name:       "success",
			resp:       &models.TrainResponse{Success: true},
			wantKind:   KindSuccess,
			wantMsg:    "Model trained successfully!",
			wantStatus: "Model loaded - 38 classes available",
		},
		{
			name:     "server error",
			resp:     &models.TrainResponse{Error: "Training failed: dataset missing"},
			wantKind: KindError,
			wantMsg:  "Training failed: dataset missing",
			wantErr:  true,
		},
		{
			name:     "no success no error",
			resp:     &models.TrainResponse{},
			wantKind: KindError,
			wantMsg:  "Training failed",
			wantErr:  true,
		},
		{
			name:     "transport",
			err:      client.ErrTransport,
			wantKind: KindError,
			wantMsg:  "Error starting model training",
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeClassifier{
				train:    tt.resp,
				trainErr: tt.err,
				status:   &models.ModelStatus{ModelLoaded: true, NumClasses: 38},
			}
			c := newTestController(f)
			ctl := &recordingControl{label: "<i class=\"fas fa-brain\"></i> Train Model"}

			err := c.TrainModel(context.Background(), ctl)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TrainModel error = %v, wantErr %v", err, tt.wantErr)
			}

			if ctl.label != "<i class=\"fas fa-brain\"></i> Train Model" || ctl.disabled {
				t.Fatalf("control not restored: %q disabled=%v", ctl.label, ctl.disabled)
			}
			if len(ctl.labels) < 1 || ctl.labels[0] != BusyLabel {
				t.Fatalf("busy label never shown: %v", ctl.labels)
			}

			s := c.Snapshot()
			n := lastNotification(t, s)
			if n.Kind != tt.wantKind || n.Message != tt.wantMsg {
				t.Fatalf("unexpected notification: %+v", n)
			}
			if s.TrainingOverlay {
				t.Fatal("overlay left on")
			}
			if tt.wantStatus != "" && s.Status.Text != tt.wantStatus {
				t.Fatalf("status = %q", s.Status.Text)
			}
		})
	}
}

type blockingTrainer struct {
	fakeClassifier
	entered chan struct{}
	release chan struct{}
}

func (b *blockingTrainer) Train(ctx context.Context) (*models.TrainResponse, error) {
	b.entered <- struct{}{}
	<-b.release
	return &models.TrainResponse{Success: true}, nil
}

func TestTrainModel_SecondTriggerRejected(t *testing.T) {
	b := &blockingTrainer{
		fakeClassifier: fakeClassifier{status: &models.ModelStatus{ModelLoaded: true, NumClasses: 3}},
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	c := NewController(nil, b, 0)
	button := c.TrainButton()

	done := make(chan error, 1)
	go func() { done <- c.TrainModel(context.Background(), button) }()
	<-b.entered

	s := c.Snapshot()
	if !s.TrainButton.Disabled || s.TrainButton.Label != BusyLabel || !s.TrainingOverlay {
		t.Fatalf("expected busy button and overlay, got %+v overlay=%v", s.TrainButton, s.TrainingOverlay)
	}

	if err := c.TrainModel(context.Background(), button); !errors.Is(err, ErrTrainingInFlight) {
		t.Fatalf("expected ErrTrainingInFlight, got %v", err)
	}

	close(b.release)
	if err := <-done; err != nil {
		t.Fatalf("TrainModel: %v", err)
	}

	s = c.Snapshot()
	if s.TrainButton.Disabled || s.TrainButton.Label != TrainLabel || s.TrainingOverlay {
		t.Fatalf("button not restored: %+v overlay=%v", s.TrainButton, s.TrainingOverlay)
	}
}
