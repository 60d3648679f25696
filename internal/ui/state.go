package ui

import (
	"fmt"
	"slices"

	"github.com/kdduha/plantdoc/internal/models"
)

// Phase is the visible region set of the page.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseResult  Phase = "result"
	PhaseError   Phase = "error"
)

// Tier is the confidence badge bucket.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// ConfidenceTier buckets a whole percent: >=80 high, >=60 medium.
func ConfidenceTier(percent int) Tier {
	switch {
	case percent >= 80:
		return TierHigh
	case percent >= 60:
		return TierMedium
	default:
		return TierLow
	}
}

// ResultView is the rendered form of a diagnosis.
type ResultView struct {
	ImagePath   string   `json:"image_path"`
	Disease     string   `json:"disease"`
	Description string   `json:"description"`
	Symptoms    string   `json:"symptoms"`
	Remedies    []string `json:"remedies"`
	Percent     int      `json:"percent"`
	BadgeText   string   `json:"badge_text"`
	Tier        Tier     `json:"tier"`
}

func (v ResultView) BadgeClass() string {
	return "confidence-badge " + string(v.Tier)
}

func NewResultView(r models.DiagnosisResult) ResultView {
	percent := r.ConfidencePercent()
	return ResultView{
		ImagePath:   r.ImagePath,
		Disease:     r.DisplayName(),
		Description: r.Description,
		Symptoms:    r.Symptoms,
		Remedies:    slices.Clone(r.Remedies),
		Percent:     percent,
		BadgeText:   fmt.Sprintf("%d%% Confidence", percent),
		Tier:        ConfidenceTier(percent),
	}
}

const (
	StatusChecking  = "Checking model status..."
	StatusNotLoaded = `Model not loaded - Click "Train Model" to initialize`
	StatusFailed    = "Error checking model status"
)

// StatusView backs the status text and its indicator dot.
type StatusView struct {
	Text  string `json:"text"`
	Ready bool   `json:"ready"`
}

func (s StatusView) IndicatorClass() string {
	if s.Ready {
		return "status-indicator ready"
	}
	return "status-indicator"
}

// State is a point-in-time copy of everything the page shows.
type State struct {
	Phase          Phase `json:"phase"`
	IntakeVisible  bool  `json:"intake_visible"`
	LoadingVisible bool  `json:"loading_visible"`
	ResultsVisible bool  `json:"results_visible"`
	DragOver       bool  `json:"drag_over"`

	// FileInput is the name held by the file input; empty when cleared.
	FileInput string `json:"file_input"`
	FileInfo  string `json:"file_info"`
	Preview   string `json:"preview,omitempty"`

	Current     *models.DiagnosisResult `json:"current"`
	Result      *ResultView             `json:"result,omitempty"`
	Explanation string                  `json:"explanation,omitempty"`

	Status        StatusView     `json:"status"`
	Notifications []Notification `json:"notifications"`
	Styles        []string       `json:"styles"`

	TrainButton     ButtonState `json:"train_button"`
	TrainingOverlay bool        `json:"training_overlay"`

	Nav          NavState `json:"nav"`
	ScrollTarget string   `json:"scroll_target,omitempty"`
}

// ButtonState is the label and enabled flag of a clickable control.
type ButtonState struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

func (s State) clone() State {
	out := s
	if s.Current != nil {
		cur := *s.Current
		cur.Remedies = slices.Clone(s.Current.Remedies)
		out.Current = &cur
	}
	if s.Result != nil {
		res := *s.Result
		res.Remedies = slices.Clone(s.Result.Remedies)
		out.Result = &res
	}
	out.Notifications = slices.Clone(s.Notifications)
	out.Styles = slices.Clone(s.Styles)
	return out
}
