package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kdduha/plantdoc/internal/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.ClassifierConfig{BaseURL: srv.URL + "/"}, srv.Client())
}

func TestModelStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/model_status" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"model_loaded":true,"num_classes":12}`)
	})

	status, err := c.ModelStatus(context.Background())
	if err != nil {
		t.Fatalf("ModelStatus: %v", err)
	}
	if !status.ModelLoaded || status.NumClasses != 12 {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestUpload_SendsMultipartFileField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/upload" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if hdr.Filename != "leaf.png" || string(data) != "pixels" {
			t.Errorf("unexpected part %q %q", hdr.Filename, data)
		}
		if ct := hdr.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("part content type = %q", ct)
		}
		io.WriteString(w, `{"disease":"Tomato_Early_blight","confidence":0.85,"description":"d","symptoms":"s","remedies":["a","b"],"image_path":"static/uploads/1_leaf.png"}`)
	})

	res, err := c.Upload(context.Background(), Upload{FileName: "leaf.png", ContentType: "image/png", Data: []byte("pixels")})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.Disease != "Tomato_Early_blight" || res.Confidence != 0.85 || len(res.Remedies) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestUpload_ServerErrorIsAppError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"error":"Model not loaded. Please train the model first."}`)
	})

	_, err := c.Upload(context.Background(), Upload{FileName: "a.jpg", Data: []byte("x")})
	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Message != "Model not loaded. Please train the model first." {
		t.Fatalf("message = %q", appErr.Message)
	}
	if errors.Is(err, ErrTransport) {
		t.Fatal("app error must not be a transport error")
	}
}

func TestUpload_TransportFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "html body", body: "<html>413</html>", code: http.StatusRequestEntityTooLarge},
		{name: "missing disease", body: `{"confidence":0.5}`, code: http.StatusOK},
		{name: "confidence out of range", body: `{"disease":"x","confidence":3}`, code: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				io.WriteString(w, tt.body)
			})
			_, err := c.Upload(context.Background(), Upload{FileName: "a.jpg", Data: []byte("x")})
			if !errors.Is(err, ErrTransport) {
				t.Fatalf("expected ErrTransport, got %v", err)
			}
		})
	}
}

func TestUpload_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(config.ClassifierConfig{BaseURL: url}, nil)
	_, err := c.Upload(context.Background(), Upload{FileName: "a.jpg", Data: []byte("x")})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestTrain_SuccessForms(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		success bool
		errMsg  string
	}{
		{name: "bool", body: `{"success":true}`, success: true},
		{name: "message string", body: `{"success":"Model trained successfully!"}`, success: true},
		{name: "error", body: `{"error":"Training failed: no data"}`, errMsg: "Training failed: no data"},
		{name: "false", body: `{"success":false}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/train_model" {
					t.Errorf("path = %s", r.URL.Path)
				}
				io.WriteString(w, tt.body)
			})
			resp, err := c.Train(context.Background())
			if err != nil {
				t.Fatalf("Train: %v", err)
			}
			if resp.Success != tt.success || resp.Error != tt.errMsg {
				t.Fatalf("unexpected response: %+v", resp)
			}
		})
	}
}

type mapCache struct {
	items map[string]string
}

func (m *mapCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *mapCache) Set(_ context.Context, key string, value string) error {
	m.items[key] = value
	return nil
}

func TestUpload_ServesRepeatedImageFromCache(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		io.WriteString(w, `{"disease":"Apple___healthy","confidence":0.91,"remedies":["water"]}`)
	})
	cache := &mapCache{items: map[string]string{}}
	c.SetCacheClient(cache)

	up := Upload{FileName: "a.jpg", ContentType: "image/jpeg", Data: []byte("same bytes")}
	for i := 0; i < 2; i++ {
		res, err := c.Upload(context.Background(), up)
		if err != nil {
			t.Fatalf("Upload #%d: %v", i, err)
		}
		if res.Disease != "Apple___healthy" {
			t.Fatalf("Upload #%d disease = %q", i, res.Disease)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 classifier call, got %d", calls)
	}
	if len(cache.items) != 1 {
		t.Fatalf("expected 1 cache entry, got %d", len(cache.items))
	}
}

func TestUpload_DoesNotCacheErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"error":"Invalid file type"}`)
	})
	cache := &mapCache{items: map[string]string{}}
	c.SetCacheClient(cache)

	if _, err := c.Upload(context.Background(), Upload{FileName: "a.jpg", Data: []byte("x")}); err == nil {
		t.Fatal("expected error")
	}
	if len(cache.items) != 0 {
		t.Fatalf("expected empty cache, got %v", cache.items)
	}
}
