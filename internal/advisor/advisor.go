package advisor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/kdduha/plantdoc/internal/config"
	"github.com/kdduha/plantdoc/internal/metrics"
	"github.com/kdduha/plantdoc/internal/models"
	"github.com/openai/openai-go/v3"
)

var ErrEmptyCompletion = errors.New("model returned no choices")

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// Advisor explains diagnoses with an OpenAI-compatible chat model.
type Advisor struct {
	logger       *log.Logger
	openaiClient openai.Client
	modelName    string
	cache        Cache
}

func New(logger *log.Logger, openaiClient openai.Client, cfg config.OpenAIConfig) *Advisor {
	return &Advisor{
		logger:       logger,
		openaiClient: openaiClient,
		modelName:    cfg.Model,
	}
}

func (a *Advisor) SetCacheClient(cache Cache) {
	a.cache = cache
}

func (a *Advisor) Send(ctx context.Context, q *Query) (*models.ExplainResponse, error) {
	if cached, ok := a.cached(ctx, q); ok {
		return &models.ExplainResponse{Explanation: cached}, nil
	}

	resp, err := a.openaiClient.Chat.Completions.New(ctx, *a.buildOpenAIReq(q))
	if err != nil {
		return nil, fmt.Errorf("OpenAI client error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	response := &models.ExplainResponse{
		Explanation: resp.Choices[0].Message.Content,
	}
	a.store(ctx, q, response.Explanation)
	return response, nil
}

func (a *Advisor) SendStream(ctx context.Context, q *Query) (<-chan models.StreamChunk, error) {
	ch := make(chan models.StreamChunk, 1)

	if cached, ok := a.cached(ctx, q); ok {
		ch <- models.StreamChunk{Delta: cached, Done: true}
		close(ch)
		return ch, nil
	}

	params := a.buildOpenAIReq(q)

	go func() {
		defer close(ch)

		sendOrStop := func(msg models.StreamChunk) bool {
			select {
			case ch <- msg:
				return true
			case <-ctx.Done():
				return false
			}
		}

		sendNonBlocking := func(msg models.StreamChunk) {
			select {
			case ch <- msg:
			default:
			}
		}

		stream := a.openaiClient.Chat.Completions.NewStreaming(ctx, *params)
		defer stream.Close()

		var builder strings.Builder

		for stream.Next() {
			if ctx.Err() != nil {
				sendNonBlocking(models.StreamChunk{Err: ctx.Err()})
				return
			}

			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}

			delta := chunk.Choices[0].Delta.Content
			if delta == "" {
				continue
			}

			builder.WriteString(delta)
			if !sendOrStop(models.StreamChunk{Delta: delta}) {
				return
			}
		}

		if err := stream.Err(); err != nil {
			sendNonBlocking(models.StreamChunk{Err: err})
			return
		}

		a.store(ctx, q, builder.String())
		sendOrStop(models.StreamChunk{Done: true})
	}()

	return ch, nil
}

func (a *Advisor) cached(ctx context.Context, q *Query) (string, bool) {
	if a.cache == nil {
		return "", false
	}
	cached, found, err := a.cache.Get(ctx, getCacheKey(q))
	if err != nil {
		a.logger.Printf("cache get error: %v\n", err)
	}
	metrics.CacheLookup("explanation", found)
	if found {
		a.logger.Println("explanation served from cache")
	}
	return cached, found
}

func (a *Advisor) store(ctx context.Context, q *Query, explanation string) {
	if a.cache == nil || explanation == "" {
		return
	}
	if err := a.cache.Set(ctx, getCacheKey(q), explanation); err != nil {
		a.logger.Printf("failed to set cache: %v\n", err)
	}
}

// getCacheKey ignores the preview: the diagnosis already pins the
// content the model is asked about.
func getCacheKey(q *Query) string {
	data := []string{
		q.Diagnosis.Disease,
		fmt.Sprintf("%d", q.Diagnosis.ConfidencePercent()),
		q.Request.Prompt,
	}

	if gen := q.Request.Generation; gen != nil && gen.Temperature != nil {
		data = append(data, fmt.Sprintf("%f", *gen.Temperature))
	}

	if gen := q.Request.Generation; gen != nil && gen.MaxTokens != nil {
		data = append(data, fmt.Sprintf("%d", *gen.MaxTokens))
	}

	hash := sha256.Sum256([]byte(strings.Join(data, "-")))
	return "explanation:" + hex.EncodeToString(hash[:])
}
