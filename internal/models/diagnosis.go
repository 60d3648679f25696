package models

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// DiagnosisResult is what the classifier returns for an accepted upload.
type DiagnosisResult struct {
	Disease     string   `json:"disease" example:"Tomato_Early_blight"`
	Confidence  float64  `json:"confidence" example:"0.85"`
	Description string   `json:"description"`
	Symptoms    string   `json:"symptoms"`
	Remedies    []string `json:"remedies"`
	ImagePath   string   `json:"image_path" example:"static/uploads/1700000000_leaf.jpg"`
}

func (r DiagnosisResult) Validate() error {
	if r.Disease == "" {
		return fmt.Errorf("disease is empty")
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range [0,1]", r.Confidence)
	}
	return nil
}

// UploadResponse is the raw /upload body: either a diagnosis or an error.
type UploadResponse struct {
	DiagnosisResult
	Error string `json:"error,omitempty"`
}

type ModelStatus struct {
	ModelLoaded bool `json:"model_loaded"`
	NumClasses  int  `json:"num_classes"`
}

// TrainResponse is the /train_model body. Success is a boolean in the
// documented contract, but the server also answers with a message
// string, so both forms are accepted.
type TrainResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (t *TrainResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Success any    `json:"success"`
		Error   string `json:"error"`
	}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.Error = raw.Error
	t.Success = false
	t.Message = ""
	switch v := raw.Success.(type) {
	case bool:
		t.Success = v
	case string:
		t.Success = v != ""
		t.Message = v
	case nil:
	default:
		return fmt.Errorf("unexpected success value %v", v)
	}
	return nil
}
