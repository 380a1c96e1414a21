// Package gemini is a minimal client for the Gemini generateContent endpoint.
//
// A call is retried only when the server answers 429, waiting through a fixed
// delay sequence (1s, 2s, 4s). Every other failure is returned at once.
package gemini

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
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash-preview-09-2025"

	// FallbackText is returned when a successful response carries no text.
	FallbackText = "No response generated."

	maxErrorBody = 512
)

// ErrMissingAPIKey is returned before any request is made when no key is configured.
var ErrMissingAPIKey = errors.New("gemini API key not configured")

// DefaultBackoff is the wait before each retry after a 429, consumed in order.
var DefaultBackoff = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API error: %d", e.Code)
	}
	return fmt.Sprintf("API error: %d: %s", e.Code, e.Body)
}

// RateLimited reports whether the server asked us to slow down.
func (e *StatusError) RateLimited() bool { return e.Code == http.StatusTooManyRequests }

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds a single HTTP attempt. Zero leaves it to the transport.
	Timeout time.Duration
}

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger

	delays []time.Duration
	wait   func(ctx context.Context, d time.Duration) error
}

func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("gemini"),
		delays:     DefaultBackoff,
		wait:       sleep,
	}
}

func (c *Client) Model() string { return c.model }

// Generate sends prompt and returns the first candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(Request{Contents: []Content{{Parts: []Part{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	log := c.logger.With(zap.String("request_id", uuid.NewString()), zap.String("model", c.model))
	start := time.Now()
	log.Debug("generate", zap.Int("prompt_len", len(prompt)))

	for attempt := 0; ; attempt++ {
		text, err := c.attempt(ctx, body)
		if err == nil {
			log.Info("generated",
				zap.Int("attempts", attempt+1),
				zap.Int("response_len", len(text)),
				zap.Duration("elapsed", time.Since(start)))
			return text, nil
		}

		var se *StatusError
		if errors.As(err, &se) && se.RateLimited() && attempt < len(c.delays) {
			delay := c.delays[attempt]
			log.Debug("rate limited, backing off", zap.Int("attempt", attempt+1), zap.Duration("delay", delay))
			if err := c.wait(ctx, delay); err != nil {
				return "", err
			}
			continue
		}

		log.Warn("generate failed",
			zap.Int("attempts", attempt+1),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", err
	}
}

func (c *Client) endpoint() string {
	q := url.Values{"key": {c.apiKey}}
	return fmt.Sprintf("%s/models/%s:generateContent?%s", c.baseURL, url.PathEscape(c.model), q.Encode())
}

func (c *Client) attempt(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error embeds the request URL, which carries the key.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		if len(msg) > maxErrorBody {
			cut := maxErrorBody
			for cut > 0 && !utf8.RuneStart(msg[cut]) {
				cut--
			}
			msg = msg[:cut]
		}
		return "", &StatusError{Code: resp.StatusCode, Body: msg}
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if text := out.Text(); text != "" {
		return text, nil
	}
	return FallbackText, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
