package rostercheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/mergington/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Get performs a GET request against path.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a bodyless POST against path.
func (c *HTTPClient) Post(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// membershipPath builds /activities/{name}/{action}?email=... with both
// parts escaped.
func membershipPath(activity, action, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/" + action + "?email=" + url.QueryEscape(email)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

// fetchActivities returns the current GET /activities payload.
func fetchActivities(ctx context.Context, client *HTTPClient) (Activities, error) {
	resp, err := client.Get(ctx, "/activities")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET /activities returned %d", ErrUnexpectedAPI, resp.StatusCode)
	}
	var out Activities
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode activities: %w", ErrUnexpectedAPI, err)
	}
	return out, nil
}

// changeRoster issues one signup or remove and classifies the response.
func changeRoster(ctx context.Context, client *HTTPClient, action string, e Enrollment) (string, string) {
	resp, err := client.Post(ctx, membershipPath(e.Activity, action, e.Email))
	if err != nil {
		return outcomeFailed, err.Error()
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return outcomeFailed, err.Error()
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var msg messageResponse
		_ = json.Unmarshal(body, &msg)
		return outcomeSuccess, msg.Message
	case http.StatusBadRequest, http.StatusNotFound:
		var errBody errorResponse
		_ = json.Unmarshal(body, &errBody)
		return outcomeRejected, errBody.Detail
	default:
		return outcomeFailed, fmt.Sprintf("status %d", resp.StatusCode)
	}
}

// counts aggregates outcomes across workers.
type counts struct {
	succeeded int64
	rejected  int64
	failed    int64
}

// submitAll runs action for every enrollment using a fixed worker pool.
func submitAll(ctx context.Context, config *Config, client *HTTPClient, action string, enrollments []Enrollment) counts {
	logger.Get().Info(ctx, "submitting roster changes",
		logger.String("action", action),
		logger.Int("requests", len(enrollments)),
		logger.Int("workers", config.Workers))

	var c counts
	jobs := make(chan Enrollment, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range jobs {
				outcome, detail := changeRoster(ctx, client, action, e)
				switch outcome {
				case outcomeSuccess:
					atomic.AddInt64(&c.succeeded, 1)
				case outcomeRejected:
					atomic.AddInt64(&c.rejected, 1)
				default:
					atomic.AddInt64(&c.failed, 1)
				}
				if config.Verbose || outcome != outcomeSuccess {
					logger.Get().Debug(ctx, "roster change",
						logger.String("action", action),
						logger.String("activity", e.Activity),
						logger.String("email", e.Email),
						logger.String("outcome", outcome),
						logger.String("detail", detail))
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, e := range enrollments {
			select {
			case <-ctx.Done():
				return
			case jobs <- e:
			}
		}
	}()

	wg.Wait()
	return c
}
