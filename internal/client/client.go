package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:3000/api"
	DefaultTimeout = 10 * time.Second
)

// Config is fixed at construction. Per-call variation goes through Request.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	DefaultHeaders http.Header
	HTTPClient     *http.Client
	Logger         *slog.Logger
	UserAgent      string
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	headers    http.Header
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
	tokens     TokenStore
}

func NewClient(cfg Config, tokens TokenStore) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}

	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		headers:    cfg.DefaultHeaders.Clone(),
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		logger:     logger,
		tokens:     tokens,
	}
}

func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// Do performs one round trip and decodes a 2xx JSON body into out. Every
// failure is returned as *APIError. Requests are never retried.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.baseURL + req.Path
	if query := req.Query.Encode(); query != "" {
		target += "?" + query
	}

	var (
		body        io.Reader
		contentType string
	)
	switch payload := req.Body.(type) {
	case nil:
	case *Multipart:
		if payload == nil || payload.Reader == nil {
			return &APIError{Status: StatusNetworkError, Message: msgNoUpload}
		}
		stream, formType := payload.open()
		defer stream.Close()
		body, contentType = stream, formType
	default:
		raw, err := json.Marshal(payload)
		if err != nil {
			return &APIError{Status: StatusNetworkError, Message: msgEncodeFailed, Err: err}
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, method, target, body)
	if err != nil {
		return &APIError{Status: StatusNetworkError, Message: msgNetwork, Err: err}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	layerHeaders(httpReq.Header, c.headers)
	layerHeaders(httpReq.Header, req.Header)
	// Authorization always reflects the token store, never caller headers.
	httpReq.Header.Del("Authorization")
	if token := c.tokens.Get(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		apiErr := transportError(ctx, callCtx, err)
		c.logger.Debug("api request failed", "method", method, "path", req.Path, "error", apiErr.Message, "duration", time.Since(started))
		return apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(ctx, callCtx, err)
	}
	c.logger.Debug("api request",
		"method", method,
		"path", req.Path,
		"status", resp.StatusCode,
		"duration", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Error string `json:"error"`
		}
		message := msgRequestFail
		if json.Unmarshal(raw, &failure) == nil && strings.TrimSpace(failure.Error) != "" {
			message = failure.Error
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if out == nil {
		if !json.Valid(raw) {
			return &APIError{Status: resp.StatusCode, Message: msgInvalidJSON}
		}
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: msgInvalidJSON, Err: err}
	}
	return nil
}

func layerHeaders(dst, src http.Header) {
	for key, values := range src {
		dst.Del(key)
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}

// transportError classifies a failure that happened before a complete
// response was read.
func transportError(parent, call context.Context, err error) *APIError {
	switch {
	case errors.Is(parent.Err(), context.Canceled):
		return &APIError{Status: StatusNetworkError, Message: msgCanceled, Err: err}
	case errors.Is(call.Err(), context.DeadlineExceeded):
		return &APIError{Status: http.StatusRequestTimeout, Message: msgTimeout, Err: err}
	default:
		return &APIError{Status: StatusNetworkError, Message: msgNetwork, Err: err}
	}
}
