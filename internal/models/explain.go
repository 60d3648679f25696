package models

import (
	"errors"
	"fmt"
)

const MaxPromptLength = 2000

// ExplainRequest asks the advisor about the session's current diagnosis.
type ExplainRequest struct {
	Prompt string `json:"prompt" example:"Is it safe to eat the fruit?"`

	// Optional generation parameters
	Generation *GenerationParams `json:"generation"`
}

// GenerationParams holds optional OpenAI-like generation parameters
type GenerationParams struct {
	Temperature *float64 `json:"temperature" example:"0.7" default:"0.7"`
	MaxTokens   *int     `json:"max_tokens" example:"512" default:"512"`
}

func (r *ExplainRequest) Validate() error {
	if len(r.Prompt) > MaxPromptLength {
		return fmt.Errorf("prompt is longer than %d bytes", MaxPromptLength)
	}
	if r.Generation == nil {
		return nil
	}
	if t := r.Generation.Temperature; t != nil && (*t < 0 || *t > 2) {
		return errors.New("temperature must be in [0, 2]")
	}
	if m := r.Generation.MaxTokens; m != nil && *m <= 0 {
		return errors.New("max_tokens must be positive")
	}
	return nil
}

type ExplainResponse struct {
	Explanation string `json:"explanation"`
}

type StreamChunk struct {
	Delta string `json:"delta,omitempty"`
	Done  bool   `json:"done,omitempty"`
	Err   error  `json:"-"`
}
