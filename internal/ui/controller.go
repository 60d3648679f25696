package ui

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/kdduha/plantdoc/internal/client"
	"github.com/kdduha/plantdoc/internal/intake"
	"github.com/kdduha/plantdoc/internal/metrics"
	"github.com/kdduha/plantdoc/internal/models"
	"github.com/kdduha/plantdoc/internal/report"
)

const (
	MsgUploadFailed     = "Error uploading file. Please try again."
	MsgUploadInFlight   = "An upload is already in progress"
	MsgNoResult         = "No diagnosis results to download"
	MsgReportDownloaded = "Report downloaded successfully!"
)

var (
	ErrUploadInFlight   = errors.New("upload already in progress")
	ErrTrainingInFlight = errors.New("training already in progress")
	ErrNoResult         = errors.New("no current diagnosis")
)

type Classifier interface {
	ModelStatus(ctx context.Context) (*models.ModelStatus, error)
	Upload(ctx context.Context, up client.Upload) (*models.DiagnosisResult, error)
	Train(ctx context.Context) (*models.TrainResponse, error)
}

// Controller owns the page state of one browser session. All methods are
// safe for concurrent use; the lock is never held across classifier calls.
type Controller struct {
	mu sync.Mutex

	classifier      Classifier
	logger          *log.Logger
	notificationTTL time.Duration
	now             func() time.Time

	state     State
	timers    map[string]*time.Timer
	uploading bool
	training  bool
}

func NewController(logger *log.Logger, classifier Classifier, notificationTTL time.Duration) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{
		classifier:      classifier,
		logger:          logger,
		notificationTTL: notificationTTL,
		now:             time.Now,
		timers:          make(map[string]*time.Timer),
		state: State{
			Phase:         PhaseIdle,
			IntakeVisible: true,
			Status:        StatusView{Text: StatusChecking},
			TrainButton:   ButtonState{Label: TrainLabel},
			Nav:           NavState{Header: HeaderFor(0)},
		},
	}
}

// Snapshot returns a copy of the current state for rendering.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Current returns a copy of the current diagnosis, or nil.
func (c *Controller) Current() *models.DiagnosisResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone().Current
}

// Close stops pending auto-dismiss timers.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}

func (c *Controller) DragOver() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.DragOver = true
}

func (c *Controller) DragLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.DragOver = false
}

// HandleDrop processes the first dropped file; the rest are ignored.
func (c *Controller) HandleDrop(ctx context.Context, files []intake.File) error {
	c.DragLeave()
	if len(files) == 0 {
		return nil
	}
	return c.HandleFile(ctx, files[0])
}

// HandleFileSelect processes the file picked in the file input, if any.
func (c *Controller) HandleFileSelect(ctx context.Context, files []intake.File) error {
	if len(files) == 0 {
		return nil
	}
	return c.HandleFile(ctx, files[0])
}

// HandleFile validates f, switches to Loading, uploads it and renders
// the outcome. A rejected file never reaches the classifier.
func (c *Controller) HandleFile(ctx context.Context, f intake.File) error {
	intake.DetectType(&f)
	format := intake.Format(f)

	c.mu.Lock()
	if err := intake.Validate(f); err != nil {
		// A running upload keeps its loading state; only the banner shows.
		if c.uploading {
			c.pushNotificationLocked(KindError, err.Error())
		} else {
			c.showErrorLocked(err.Error())
		}
		c.mu.Unlock()
		metrics.UploadTotal("rejected", format)
		return err
	}
	if c.uploading {
		c.pushNotificationLocked(KindError, MsgUploadInFlight)
		c.mu.Unlock()
		return ErrUploadInFlight
	}
	c.uploading = true
	c.showLoadingLocked()
	c.state.FileInput = f.Name
	c.state.FileInfo = intake.Describe(f)
	c.mu.Unlock()

	preview, err := intake.Preview(f.Data)
	if err != nil {
		c.logger.Printf("no preview for %s: %v\n", f.Name, err)
	}

	c.logger.Printf("start uploading file: %s\n", f.Name)
	start := c.now()
	result, err := c.classifier.Upload(ctx, client.Upload{
		FileName:    f.Name,
		ContentType: f.Type,
		Data:        f.Data,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploading = false
	c.state.Preview = preview

	status := "success"
	defer func() {
		metrics.UploadTotal(status, format)
		metrics.UploadDuration(status, format, c.now().Sub(start))
	}()

	if err != nil {
		var appErr *client.AppError
		if errors.As(err, &appErr) {
			status = "app_error"
			c.showErrorLocked(appErr.Message)
			return err
		}
		status = "transport_error"
		c.logger.Printf("upload error: %v\n", err)
		c.showErrorLocked(MsgUploadFailed)
		return err
	}

	c.showResultsLocked(*result)
	c.logger.Printf("finish uploading file: %s\n", f.Name)
	return nil
}

func (c *Controller) showLoadingLocked() {
	c.state.Phase = PhaseLoading
	c.state.IntakeVisible = false
	c.state.ResultsVisible = false
	c.state.LoadingVisible = true
}

// ShowResults makes result the current diagnosis and reveals it.
func (c *Controller) ShowResults(result models.DiagnosisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showResultsLocked(result)
}

func (c *Controller) showResultsLocked(result models.DiagnosisResult) {
	view := NewResultView(result)
	c.state.Current = &result
	c.state.Result = &view
	c.state.Explanation = ""
	c.state.Phase = PhaseResult
	c.state.LoadingVisible = false
	c.state.ResultsVisible = true
	c.state.ScrollTarget = "results"
}

// Reset returns to Idle and forgets the current diagnosis.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Phase = PhaseIdle
	c.state.IntakeVisible = true
	c.state.ResultsVisible = false
	c.state.LoadingVisible = false
	c.state.FileInput = ""
	c.state.FileInfo = ""
	c.state.Preview = ""
	c.state.Current = nil
	c.state.Result = nil
	c.state.Explanation = ""
	c.state.ScrollTarget = "upload-area"
}

// Preview returns the thumbnail of the file behind the current result.
func (c *Controller) Preview() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Preview
}

// SetExplanation keeps an advisor answer next to the current result. It
// is dropped when the result changes.
func (c *Controller) SetExplanation(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Current != nil {
		c.state.Explanation = text
	}
}

// CheckModelStatus polls the classifier and updates the status line.
func (c *Controller) CheckModelStatus(ctx context.Context) error {
	status, err := c.classifier.ModelStatus(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Printf("error checking model status: %v\n", err)
		c.state.Status = StatusView{Text: StatusFailed}
		return err
	}
	if status.ModelLoaded {
		c.state.Status = StatusView{Text: loadedText(status.NumClasses), Ready: true}
	} else {
		c.state.Status = StatusView{Text: StatusNotLoaded}
	}
	return nil
}

// DownloadReport renders the report of the current diagnosis.
func (c *Controller) DownloadReport() (*report.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Current == nil {
		c.showErrorLocked(MsgNoResult)
		return nil, ErrNoResult
	}

	doc, err := report.New(*c.state.Current, c.now())
	if err != nil {
		c.showErrorLocked(err.Error())
		return nil, err
	}
	c.pushNotificationLocked(KindSuccess, MsgReportDownloaded)
	return doc, nil
}
