package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

// RetryConfig holds resilience parameters for the remote generation call.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
}

// DefaultRetryConfig is tuned for an interactive request path.
var DefaultRetryConfig = RetryConfig{MaxRetries: 2, InitialBackoff: 200 * time.Millisecond}

// Client calls the external text-generation service behind a circuit
// breaker, so a flapping assistant does not pile requests up.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	cfg        RetryConfig
}

// NewClient creates a new assistant client.
func NewClient(baseURL, apiKey string, timeout time.Duration, cfg RetryConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		cb:         newBreaker("assistant"),
		cfg:        cfg,
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate sends the prompt to the remote service and returns its text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var out generateResponse

	result, err := c.cb.Execute(func() (any, error) {
		innerErr := retryWithBackoff(ctx, c.cfg, func() error {
			body, err := json.Marshal(generateRequest{Prompt: prompt})
			if err != nil {
				return err
			}

			url := fmt.Sprintf("%s/v1/generate", c.baseURL)
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			if c.apiKey != "" {
				req.Header.Set("Authorization", "Bearer "+c.apiKey)
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer func() {
				_ = resp.Body.Close()
			}()

			if resp.StatusCode != http.StatusOK {
				err := fmt.Errorf("assistant API returned status %d", resp.StatusCode)
				if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
					// Bad requests stay bad, only 429 and 5xx may recover.
					return terminalError{err: err}
				}
				return err
			}
			return json.NewDecoder(resp.Body).Decode(&out)
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return out.Text, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: assistant circuit open", httpx.ErrUnavailable)
		}
		return "", fmt.Errorf("%w: %s", httpx.ErrUnavailable, err)
	}
	return result.(string), nil
}

// terminalError marks failures that retrying cannot fix.
type terminalError struct{ err error }

func (e terminalError) Error() string { return e.err.Error() }
func (e terminalError) Unwrap() error { return e.err }

// retryWithBackoff executes fn with exponential backoff plus jitter. It
// respects context cancellation and stops early on terminal errors.
func retryWithBackoff(ctx context.Context, cfg RetryConfig, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		var term terminalError
		if errors.As(lastErr, &term) {
			return term.err
		}

		if attempt < cfg.MaxRetries {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * cfg.InitialBackoff
			wait := backoff + time.Duration(rand.Int63n(int64(backoff/2)+1))

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	return lastErr
}
