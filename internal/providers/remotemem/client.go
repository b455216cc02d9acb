// Package remotemem is a client for a hosted semantic memory service
// exposing the mem0 REST API.
package remotemem

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sandevgo/roombot/internal/config"
	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/pkg/retry"
)

const serviceName = "remote-memory"

type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	retrier *retry.Retrier
}

func NewClient(cfg *config.RemoteMemoryConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		retrier: retry.NewRetrier(&retry.Config{
			MaxRetries:    2,
			BackoffFactor: 2,
			InitialDelay:  200 * time.Millisecond,
			MaxDelay:      2 * time.Second,
			Jitter:        50 * time.Millisecond,
		}),
	}
}

type searchRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
	Limit  int    `json:"limit,omitempty"`
}

type addRequest struct {
	Messages []core.Message `json:"messages"`
	UserID   string         `json:"user_id"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Search returns memories of userID relevant to query.
func (c *Client) Search(ctx context.Context, query, userID string, limit int) ([]core.MemoryRecord, error) {
	body, err := c.do(ctx, "search", http.MethodPost, "/v1/memories/search/", searchRequest{
		Query:  query,
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, &core.ServiceError{Service: serviceName, Op: "search", Err: fmt.Errorf("decode: %w", err)}
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Add stores an exchange for userID.
func (c *Client) Add(ctx context.Context, messages []core.Message, userID string, metadata map[string]any) error {
	_, err := c.do(ctx, "add", http.MethodPost, "/v1/memories/", addRequest{
		Messages: messages,
		UserID:   userID,
		Metadata: metadata,
	})
	return err
}

// DeleteAll removes every memory of userID.
func (c *Client) DeleteAll(ctx context.Context, userID string) error {
	path := "/v1/memories/?" + url.Values{"user_id": {userID}}.Encode()
	_, err := c.do(ctx, "delete", http.MethodDelete, path, nil)
	return err
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	var data []byte
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return nil, &core.ServiceError{Service: serviceName, Op: op, Err: fmt.Errorf("marshal: %w", err)}
		}
	}

	var body []byte
	err := c.retrier.Do(ctx, func() error {
		var reqBody io.Reader
		if data != nil {
			reqBody = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return retry.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Authorization", "Token "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", core.BotUserAgent)
		if data != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return retry.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
			// Client errors will not change on retry.
			if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return retry.Permanent(statusErr)
			}
			return statusErr
		}
		return nil
	})
	if err != nil {
		serr := &core.ServiceError{Service: serviceName, Op: op, Err: err}
		var se *statusError
		if errors.As(err, &se) {
			serr.StatusCode = se.code
		}
		if errors.Is(err, context.DeadlineExceeded) {
			serr.Err = errors.Join(core.ErrTimeout, err)
		}
		return nil, serr
	}
	return body, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return http.StatusText(e.code)
	}
	return e.body
}

// decodeRecords accepts both a bare array and a {"results": [...]} envelope.
func decodeRecords(body []byte) ([]core.MemoryRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var records []core.MemoryRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var envelope struct {
		Results []core.MemoryRecord `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	return envelope.Results, nil
}
