// Package hrclient is a Go client for the HR interviews REST API. It keeps a
// response cache and a notification queue the way a UI layer would.
package hrclient

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

	"hr-interviews-go/pkg/logger"
)

const networkErrorMessage = "Network error - please check your connection"

type Client struct {
	baseURL       string
	http          *http.Client
	notifications *Notifications
	cache         *Cache
	log           logger.Logger
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.http = client }
}

func WithNotifications(notifications *Notifications) Option {
	return func(c *Client) { c.notifications = notifications }
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New builds a client for baseURL, e.g. "http://localhost:8080/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: 15 * time.Second},
		notifications: NewNotifications(),
		cache:         NewCache(),
		log:           logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Notifications() *Notifications {
	return c.notifications
}

func (c *Client) Cache() *Cache {
	return c.cache
}

func (c *Client) Employees() *EmployeesAPI {
	return &EmployeesAPI{c: c}
}

func (c *Client) Interviews() *InterviewsAPI {
	return &InterviewsAPI{c: c}
}

type errorEnvelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		c.log.Warn("hrclient: request failed", "method", method, "path", path, "err", err)
		return c.fail(&APIError{Status: 0, Code: codeNetworkError, Message: networkErrorMessage})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(decodeAPIError(resp))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) fail(apiErr *APIError) error {
	kind := Classify(apiErr)
	c.log.Debug("hrclient: api error", "status", apiErr.Status, "code", apiErr.Code, "type", kind)
	if notifiable(kind) {
		c.notifications.Error(apiErr.Message)
	}
	return apiErr
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("HTTP %d", resp.StatusCode),
	}

	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return apiErr
	}
	switch {
	case envelope.Error != nil:
		apiErr.Code = envelope.Error.Code
		if envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
		}
	default:
		apiErr.Code = envelope.Code
		if envelope.Message != "" {
			apiErr.Message = envelope.Message
		}
	}
	return apiErr
}
