// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is where the service listens when run locally.
	DefaultBaseURL = "http://127.0.0.1:5000"

	// MaxResponseSize bounds how much of a response body is read.
	MaxResponseSize = 10 * 1024 * 1024

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "pdfchat/0.1.0"
)

// Client talks to the document Q&A service.
//
// A Client is safe for concurrent use, but callers normally issue one
// request at a time from the UI loop.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	userAgent  string
}

// New creates a client for the service at baseURL.
func New(baseURL string) (*Client, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	return &Client{
		baseURL: baseURL,
		// No Timeout: requests end when the server answers or ctx is done.
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		logger:    zap.NewNop(),
		userAgent: DefaultUserAgent,
	}, nil
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// WithLogger sets the request logger.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	if logger != nil {
		c.logger = logger.Named("backend")
	}
	return c
}

// WithUserAgent overrides the User-Agent header.
func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

// BaseURL returns the configured server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetAPIKey registers the credential with the service.
func (c *Client) SetAPIKey(ctx context.Context, key string) (*SetKeyResponse, error) {
	body, err := json.Marshal(SetKeyRequest{APIKey: key})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var out SetKeyResponse
	if err := c.do(ctx, PathSetAPIKey, "application/json", bytes.NewReader(body), &out,
		zap.String("key_fingerprint", Fingerprint(key))); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload sends the document as a multipart form under UploadField.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (*UploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(UploadField, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	var out UploadResponse
	if err := c.do(ctx, PathUpload, mw.FormDataContentType(), &buf, &out,
		zap.String("file", name), zap.Int("bytes", buf.Len())); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ask submits one question and returns the answer.
func (c *Client) Ask(ctx context.Context, question string) (*AskResponse, error) {
	body, err := json.Marshal(AskRequest{Question: question})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var out AskResponse
	if err := c.do(ctx, PathAsk, "application/json", bytes.NewReader(body), &out,
		zap.Int("question_len", len(question))); err != nil {
		return nil, err
	}
	return &out, nil
}

// do posts body to path and decodes a success response into out.
// Non-2xx statuses become *APIError; anything without a decodable JSON body
// becomes *TransportError.
func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader, out any, fields ...zap.Field) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logRequest(req, fields...)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("path", path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return &TransportError{Op: "POST " + path, Err: err}
	}
	defer resp.Body.Close()
	c.logResponse(req, resp, time.Since(start))

	data, err := readResponse(resp)
	if err != nil {
		return &TransportError{Op: "POST " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if err := json.Unmarshal(data, &errResp); err != nil {
			return &TransportError{Op: "POST " + path, Err: fmt.Errorf("failed to parse error response (HTTP %d): %w", resp.StatusCode, err)}
		}
		return &APIError{Status: resp.StatusCode, Message: errResp.Error}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: "POST " + path, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

// readResponse reads at most MaxResponseSize bytes of the body.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// logRequest logs the method and path only.
func (c *Client) logRequest(req *http.Request, fields ...zap.Field) {
	c.logger.Debug("api request",
		append([]zap.Field{zap.String("method", req.Method), zap.String("path", req.URL.Path)}, fields...)...)
}

// logResponse logs status and duration, never the body.
func (c *Client) logResponse(req *http.Request, resp *http.Response, d time.Duration) {
	c.logger.Info("api response",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", d))
}

// Fingerprint returns a short SHA-256 based identifier for a credential,
// safe to log.
func Fingerprint(key string) string {
	if key == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:4])
}
