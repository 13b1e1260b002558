// Package webhook delivers notifications to a configurable HTTP
// endpoint. The posted body can be reshaped with a JMESPath expression
// so one endpoint config can feed Slack, Teams, or a bespoke sink
// without code changes.
package webhook

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

	"github.com/jmespath-community/go-jmespath"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// Config captures the webhook destination behaviour.
type Config struct {
	URL string

	// BodyExpression is an optional JMESPath expression applied to the
	// canonical notification document to produce the posted body.
	BodyExpression string

	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
}

// Client delivers notifications to a webhook endpoint.
type Client struct {
	url        string
	expr       jmespath.JMESPath // nil when no body expression is configured
	retryLimit int
	client     *http.Client
}

// NewClient builds a webhook client. The JMESPath expression is
// compiled once here so a bad expression fails startup, not the first
// notification.
func NewClient(cfg Config) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("webhook url is required")
	}

	var expr jmespath.JMESPath
	if strings.TrimSpace(cfg.BodyExpression) != "" {
		compiled, err := jmespath.Compile(cfg.BodyExpression)
		if err != nil {
			return nil, fmt.Errorf("compile body expression: %w", err)
		}
		expr = compiled
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{url: url, expr: expr, retryLimit: retries, client: hc}, nil
}

// Notify posts the notification, retrying with linear backoff.
func (c *Client) Notify(ctx context.Context, n service.Notification) error {
	if n.OccurredAt.IsZero() {
		n.OccurredAt = time.Now().UTC()
	}

	body, err := c.buildBody(n)
	if err != nil {
		return err
	}

	attempts := c.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		err = c.post(ctx, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt < attempts-1 {
			delay := time.Duration(attempt+1) * 200 * time.Millisecond
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return lastErr
}

func (c *Client) buildBody(n service.Notification) ([]byte, error) {
	if c.expr == nil {
		body, err := json.Marshal(n)
		if err != nil {
			return nil, fmt.Errorf("encode notification: %w", err)
		}
		return body, nil
	}

	// Round-trip through JSON so the expression sees plain maps.
	raw, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode notification: %w", err)
	}

	shaped, err := c.expr.Search(doc)
	if err != nil {
		return nil, fmt.Errorf("apply body expression: %w", err)
	}
	body, err := json.Marshal(shaped)
	if err != nil {
		return nil, fmt.Errorf("encode shaped body: %w", err)
	}
	return body, nil
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
