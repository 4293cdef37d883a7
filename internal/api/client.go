// Package api provides a client for the SmartSave Hub server endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartsavehub/smartsave/internal/logging"
	"github.com/smartsavehub/smartsave/internal/model"
)

const (
	pageTimeout = 10 * time.Second
	maxBodySize = 1 << 20 // 1 MB
	userAgent   = "smartsave/1.0"
)

var (
	// ErrMalformedResponse indicates a body that is not the expected JSON.
	ErrMalformedResponse = errors.New("smartsave: malformed response")
	// ErrUnexpectedStatus indicates a non-2xx response without a JSON error body.
	ErrUnexpectedStatus = errors.New("smartsave: unexpected status")
)

// ServerError is a failure the server reported with success=false.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return "smartsave: request rejected by server"
	}
	return e.Message
}

// IsServerError reports whether err is a server-reported failure rather than a transport one.
func IsServerError(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}

// Client talks to a SmartSave Hub server.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a client for the given server base URL.
// Returns nil if the URL is empty or not http(s).
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     logging.L().Named("api"),
	}
}

// BaseURL returns the server the client points at.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AddMoney deposits amount into the goal at index. It makes a single attempt.
// A success=false response is returned alongside a *ServerError.
func (c *Client) AddMoney(ctx context.Context, index int, amount int64) (*AddMoneyResult, error) {
	var res AddMoneyResult
	status, err := c.post(ctx, fmt.Sprintf("/add-money/%d", index), addMoneyRequest{Amount: amount}, &res)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return &res, &ServerError{Status: status, Message: res.Error}
	}
	return &res, nil
}

// DeleteGoal removes the goal at index.
func (c *Client) DeleteGoal(ctx context.Context, index int) error {
	var res statusResponse
	status, err := c.post(ctx, fmt.Sprintf("/delete-goal/%d", index), nil, &res)
	if err != nil {
		return err
	}
	if !res.Success {
		return &ServerError{Status: status, Message: res.Error}
	}
	return nil
}

// UPILink asks the server for a UPI payment link for the goal at index.
func (c *Client) UPILink(ctx context.Context, index int, amount int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, pageTimeout)
	defer cancel()

	body, status, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/get-upi-link/%d/%d", index, amount), nil, "application/json")
	if err != nil {
		return "", err
	}

	var res upiLinkResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !res.Success || res.UPIURI == "" {
		return "", &ServerError{Status: status, Message: "no UPI link for this goal"}
	}
	return res.UPIURI, nil
}

// FetchBoard loads the server-rendered goal page and scrapes the goal cards from it.
func (c *Client) FetchBoard(ctx context.Context) (*model.Board, error) {
	ctx, cancel := context.WithTimeout(ctx, pageTimeout)
	defer cancel()

	body, status, err := c.do(ctx, http.MethodGet, "/goal", nil, "text/html")
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w %d", ErrUnexpectedStatus, status)
	}
	return ParseBoard(bytes.NewReader(body))
}

// post sends a JSON request and decodes the JSON response into out.
// The body of a non-2xx response is still inspected for a server error message.
func (c *Client) post(ctx context.Context, path string, payload, out any) (int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("smartsave: encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	body, status, err := c.do(ctx, http.MethodPost, path, reqBody, "application/json")
	if err != nil {
		return status, err
	}

	if status < 200 || status >= 300 {
		var sr statusResponse
		if json.Unmarshal(body, &sr) == nil && !sr.Success {
			return status, &ServerError{Status: status, Message: sr.Error}
		}
		return status, fmt.Errorf("%w %d", ErrUnexpectedStatus, status)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return status, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return status, nil
}

// do performs a request and returns the response body and status code.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, accept string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("smartsave: creating request: %w", err)
	}

	reqID := uuid.NewString()
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	//nolint:gosec // URL is built from the configured server
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method), zap.String("path", path),
			zap.String("request_id", reqID), zap.Error(err))
		return nil, 0, fmt.Errorf("smartsave: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("smartsave: reading response: %w", err)
	}

	c.log.Debug("request done",
		zap.String("method", method), zap.String("path", path),
		zap.String("request_id", reqID), zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))
	return data, resp.StatusCode, nil
}
