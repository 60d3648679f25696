package advisor

import (
	"fmt"
	"strings"

	"github.com/kdduha/plantdoc/internal/models"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
)

func getUserPrompt(q *Query) string {
	var remedies strings.Builder
	for i, r := range q.Diagnosis.Remedies {
		fmt.Fprintf(&remedies, "%d. %s\n", i+1, r)
	}

	userPrompt := fmt.Sprintf(diagnosisTemplate,
		q.Diagnosis.DisplayName(),
		q.Diagnosis.ConfidencePercent(),
		q.Diagnosis.Description,
		q.Diagnosis.Symptoms,
		strings.TrimRight(remedies.String(), "\n"),
	)
	if q.Request.Prompt != "" {
		userPrompt = fmt.Sprintf("%s\nQuestion: %s", userPrompt, q.Request.Prompt)
	}
	return userPrompt
}

func (a *Advisor) buildOpenAIReq(q *Query) *openai.ChatCompletionNewParams {
	var messages []openai.ChatCompletionMessageParamUnion
	if q.Preview != "" {
		messages = buildImageMessages(q)
	} else {
		messages = buildTextMessages(q)
	}

	params := &openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(a.modelName),
		Messages: messages,
	}

	gen := q.Request.Generation
	if gen != nil && gen.MaxTokens != nil {
		params.MaxCompletionTokens = openai.Int(int64(*gen.MaxTokens))
	}
	if gen != nil && gen.Temperature != nil {
		params.Temperature = openai.Float(*gen.Temperature)
	}
	return params
}

// buildImageMessages attaches the preview thumbnail, already a data URL.
func buildImageMessages(q *Query) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(getUserPrompt(q)),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: q.Preview,
			}),
		}),
	}
}

func buildTextMessages(q *Query) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage(getUserPrompt(q)),
	}
}

// Query is one question about a diagnosis.
type Query struct {
	Diagnosis models.DiagnosisResult
	Preview   string
	Request   models.ExplainRequest
}
