package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/kdduha/plantdoc/internal/config"
	"github.com/kdduha/plantdoc/internal/metrics"
	"github.com/kdduha/plantdoc/internal/models"
)

// ErrTransport marks failures to reach the classifier or to read its
// answer: network errors, non-JSON bodies, cancelled contexts.
var ErrTransport = errors.New("classifier transport error")

// AppError is an error reported by the classifier itself in the "error"
// field of an otherwise well-formed answer.
type AppError struct {
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// Upload is one image sent to /upload under the multipart field "file".
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type Client struct {
	baseURL       string
	httpClient    *http.Client
	uploadTimeout time.Duration
	trainTimeout  time.Duration
	logger        *log.Logger
	cache         Cache
}

func New(cfg config.ClassifierConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:    httpClient,
		uploadTimeout: cfg.UploadTimeout,
		trainTimeout:  cfg.TrainTimeout,
		logger:        log.New(io.Discard, "", 0),
	}
}

func (c *Client) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// SetCacheClient enables caching of diagnoses by image content. Only
// successful diagnoses are cached; a retrained model is picked up once
// entries expire.
func (c *Client) SetCacheClient(cache Cache) {
	c.cache = cache
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ModelStatus(ctx context.Context) (*models.ModelStatus, error) {
	var status models.ModelStatus
	if err := c.do(ctx, http.MethodGet, "/model_status", nil, "", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) Upload(ctx context.Context, up Upload) (*models.DiagnosisResult, error) {
	if c.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.uploadTimeout)
		defer cancel()
	}

	key := uploadCacheKey(up)
	if cached, ok := c.cachedDiagnosis(ctx, key); ok {
		return cached, nil
	}

	body, contentType, err := multipartBody(up)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	var resp models.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/upload", body, contentType, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &AppError{Message: resp.Error}
	}
	if err := resp.DiagnosisResult.Validate(); err != nil {
		return nil, fmt.Errorf("%w: malformed diagnosis: %v", ErrTransport, err)
	}

	result := resp.DiagnosisResult
	c.storeDiagnosis(ctx, key, &result)
	return &result, nil
}

func (c *Client) cachedDiagnosis(ctx context.Context, key string) (*models.DiagnosisResult, bool) {
	if c.cache == nil {
		return nil, false
	}
	cached, found, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Printf("cache get error: %v\n", err)
	}
	metrics.CacheLookup("diagnosis", found)
	if !found {
		return nil, false
	}

	var result models.DiagnosisResult
	if err := sonic.UnmarshalString(cached, &result); err != nil {
		c.logger.Printf("drop corrupt cache entry %s: %v\n", key, err)
		return nil, false
	}
	c.logger.Println("diagnosis served from cache")
	return &result, true
}

func (c *Client) storeDiagnosis(ctx context.Context, key string, result *models.DiagnosisResult) {
	if c.cache == nil {
		return
	}
	data, err := sonic.MarshalString(result)
	if err != nil {
		c.logger.Printf("failed to encode cache entry: %v\n", err)
		return
	}
	if err := c.cache.Set(ctx, key, data); err != nil {
		c.logger.Printf("failed to set cache: %v\n", err)
	}
}

func uploadCacheKey(up Upload) string {
	hash := sha256.Sum256(up.Data)
	return "diagnosis:" + hex.EncodeToString(hash[:])
}

func (c *Client) Train(ctx context.Context) (*models.TrainResponse, error) {
	if c.trainTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.trainTimeout)
		defer cancel()
	}

	var resp models.TrainResponse
	if err := c.do(ctx, http.MethodGet, "/train_model", nil, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do performs the request and decodes a JSON body regardless of the
// status code: the classifier reports application errors in the body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrTransport, path, err)
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s (status %d): %v", ErrTransport, path, resp.StatusCode, err)
	}
	return nil
}

func multipartBody(up Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(up.FileName)))
	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(up.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
