package ui

import (
	"context"
	"fmt"

	"github.com/kdduha/plantdoc/internal/client"
	"github.com/kdduha/plantdoc/internal/metrics"
)

const (
	TrainLabel = "Train Model"
	BusyLabel  = "Training..."

	MsgTrained          = "Model trained successfully!"
	MsgTrainingFailed   = "Training failed"
	MsgTrainingError    = "Error starting model training"
	MsgTrainingInFlight = "Training is already in progress"
)

func loadedText(numClasses int) string {
	return fmt.Sprintf("Model loaded - %d classes available", numClasses)
}

// Control is the clickable element that started an action.
type Control interface {
	Label() string
	SetLabel(label string)
	SetDisabled(disabled bool)
}

// TrainButton is the session's own "Train Model" button.
func (c *Controller) TrainButton() Control {
	return trainButton{c: c}
}

type trainButton struct {
	c *Controller
}

func (b trainButton) Label() string {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	return b.c.state.TrainButton.Label
}

func (b trainButton) SetLabel(label string) {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	b.c.state.TrainButton.Label = label
}

func (b trainButton) SetDisabled(disabled bool) {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	b.c.state.TrainButton.Disabled = disabled
}

// TrainModel asks the classifier to retrain. control is disabled and
// shows BusyLabel for the duration; its label and enabled state are
// restored on every exit path.
func (c *Controller) TrainModel(ctx context.Context, control Control) error {
	c.mu.Lock()
	if c.training {
		c.pushNotificationLocked(KindError, MsgTrainingInFlight)
		c.mu.Unlock()
		return ErrTrainingInFlight
	}
	c.training = true
	c.state.TrainingOverlay = true
	c.mu.Unlock()

	original := control.Label()
	control.SetLabel(BusyLabel)
	control.SetDisabled(true)
	defer func() {
		control.SetLabel(original)
		control.SetDisabled(false)

		c.mu.Lock()
		c.training = false
		c.state.TrainingOverlay = false
		c.mu.Unlock()
	}()

	c.logger.Println("start model training")
	resp, err := c.classifier.Train(ctx)
	if err != nil {
		c.logger.Printf("training error: %v\n", err)
		metrics.TrainingTotal("transport_error")
		c.ShowError(MsgTrainingError)
		return err
	}

	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = MsgTrainingFailed
		}
		metrics.TrainingTotal("failed")
		c.ShowError(msg)
		return &client.AppError{Message: msg}
	}

	metrics.TrainingTotal("success")
	c.logger.Println("finish model training")
	c.ShowSuccess(MsgTrained)

	// A failed re-poll only shows in the status line.
	_ = c.CheckModelStatus(ctx)
	return nil
}
