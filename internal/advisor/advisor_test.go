package advisor

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/kdduha/plantdoc/internal/config"
	"github.com/kdduha/plantdoc/internal/models"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var diagnosis = models.DiagnosisResult{
	Disease:     "Apple___Black_rot",
	Confidence:  0.55,
	Description: "Fungal disease.",
	Symptoms:    "Dark lesions",
	Remedies:    []string{"Prune", "Spray"},
}

type memCache struct {
	mu    sync.Mutex
	items map[string]string
}

func (m *memCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func newTestAdvisor(t *testing.T, h http.HandlerFunc) *Advisor {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client := openai.NewClient(
		option.WithAPIKey("test"),
		option.WithBaseURL(srv.URL+"/v1/"),
		option.WithMaxRetries(0),
	)
	return New(log.New(io.Discard, "", 0), client, config.OpenAIConfig{Model: "plant-vision"})
}

func TestGetUserPrompt(t *testing.T) {
	q := &Query{Diagnosis: diagnosis, Request: models.ExplainRequest{Prompt: "Can I save the tree?"}}

	got := getUserPrompt(q)
	for _, want := range []string{
		"Diagnosis: Apple   Black Rot\n",
		"Confidence: 55%\n",
		"Remedies:\n1. Prune\n2. Spray",
		"\nQuestion: Can I save the tree?",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt misses %q:\n%s", want, got)
		}
	}
}

func TestGetCacheKey(t *testing.T) {
	temp := 0.2
	a := getCacheKey(&Query{Diagnosis: diagnosis})
	b := getCacheKey(&Query{Diagnosis: diagnosis, Preview: "data:image/png;base64,AAAA"})
	c := getCacheKey(&Query{Diagnosis: diagnosis, Request: models.ExplainRequest{Generation: &models.GenerationParams{Temperature: &temp}}})

	if a != b {
		t.Error("preview must not change the key")
	}
	if a == c {
		t.Error("generation params must change the key")
	}
	if !strings.HasPrefix(a, "explanation:") {
		t.Errorf("unexpected key %q", a)
	}
}

func TestSend_UsesCompletionAndCaches(t *testing.T) {
	calls := 0
	a := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"model":"plant-vision"`) {
			t.Errorf("model missing from body: %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"plant-vision","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Prune the cankers."}}]}`)
	})
	a.SetCacheClient(&memCache{items: map[string]string{}})

	for i := 0; i < 2; i++ {
		resp, err := a.Send(context.Background(), &Query{Diagnosis: diagnosis})
		if err != nil {
			t.Fatalf("Send #%d: %v", i, err)
		}
		if resp.Explanation != "Prune the cankers." {
			t.Fatalf("explanation = %q", resp.Explanation)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls)
	}
}

func TestSendStream_DeliversDeltasThenDone(t *testing.T) {
	a := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, delta := range []string{"Remove ", "infected ", "fruit."} {
			fmt.Fprintf(w, "data: {\"id\":\"c1\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":\"plant-vision\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", delta)
		}
		io.WriteString(w, "data: [DONE]\n\n")
	})
	cache := &memCache{items: map[string]string{}}
	a.SetCacheClient(cache)

	stream, err := a.SendStream(context.Background(), &Query{Diagnosis: diagnosis})
	if err != nil {
		t.Fatalf("SendStream: %v", err)
	}

	var (
		text strings.Builder
		done bool
	)
	for chunk := range stream {
		if chunk.Err != nil {
			t.Fatalf("stream error: %v", chunk.Err)
		}
		text.WriteString(chunk.Delta)
		done = done || chunk.Done
	}
	if text.String() != "Remove infected fruit." || !done {
		t.Fatalf("got %q done=%v", text.String(), done)
	}

	cached, ok, _ := cache.Get(context.Background(), getCacheKey(&Query{Diagnosis: diagnosis}))
	if !ok || cached != "Remove infected fruit." {
		t.Fatalf("stream result not cached: %q %v", cached, ok)
	}
}

func TestSendStream_FromCache(t *testing.T) {
	a := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called")
	})
	q := &Query{Diagnosis: diagnosis}
	a.SetCacheClient(&memCache{items: map[string]string{getCacheKey(q): "cached answer"}})

	stream, err := a.SendStream(context.Background(), q)
	if err != nil {
		t.Fatalf("SendStream: %v", err)
	}
	chunk := <-stream
	if chunk.Delta != "cached answer" || !chunk.Done {
		t.Fatalf("unexpected chunk: %+v", chunk)
	}
	if _, open := <-stream; open {
		t.Fatal("stream must be closed after the cached chunk")
	}
}
