package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/echolearn/arena/pkg/logger"
)

// HTTPClient wraps http.Client with a shared timeout and user header.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request on behalf of a user.
func (c *HTTPClient) Get(ctx context.Context, url, userID string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body on behalf of a user.
func (c *HTTPClient) Post(ctx context.Context, url, userID string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	return c.client.Do(req)
}

// getJSON performs a GET and decodes the JSON response.
func getJSON(ctx context.Context, client *HTTPClient, url, userID string, v any) error {
	resp, err := client.Get(ctx, url, userID)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// submission outcome classifications.
const (
	outcomeSuccess   = "success"
	outcomeDuplicate = "duplicate"
	outcomeFailed    = "failed"
)

// submitAll runs all users' submissions against one contest concurrently.
func submitAll(ctx context.Context, config *Config, contest contestDetail, users []user, stats *Stats) []submitResult {
	logger.Get().Info(ctx, "submitting simulated entries",
		logger.Int("users", len(users)),
		logger.Int("workers", config.Workers),
		logger.Int("contest", contest.ContestNumber),
	)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/contests/" + contest.ID + "/submit"

	var (
		successful int64
		duplicate  int64
		failed     int64
		attempted  int64
	)

	results := make([]submitResult, 0, len(users))
	var resultsMu sync.Mutex

	userChan := make(chan user, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range userChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				req := buildSubmission(u, contest)
				outcome, result := submitSingle(ctx, client, url, u.ID, req)

				atomic.AddInt64(&attempted, 1)
				switch outcome {
				case outcomeSuccess:
					atomic.AddInt64(&successful, 1)
					resultsMu.Lock()
					results = append(results, result)
					resultsMu.Unlock()
				case outcomeDuplicate:
					atomic.AddInt64(&duplicate, 1)
				case outcomeFailed:
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(userChan)
		for _, u := range users {
			select {
			case <-ctx.Done():
				return
			case userChan <- u:
			}
		}
	}()

	wg.Wait()

	stats.SubmissionsAttempted += int(atomic.LoadInt64(&attempted))
	stats.SubmissionsSuccessful += int(atomic.LoadInt64(&successful))
	stats.SubmissionsDuplicate += int(atomic.LoadInt64(&duplicate))
	stats.SubmissionsFailed += int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "submission round completed",
		logger.Int64("successful", atomic.LoadInt64(&successful)),
		logger.Int64("duplicate", atomic.LoadInt64(&duplicate)),
		logger.Int64("failed", atomic.LoadInt64(&failed)),
	)

	return results
}

// submitSingle submits one entry and classifies the outcome.
func submitSingle(ctx context.Context, client *HTTPClient, url, userID string, req submitRequest) (string, submitResult) {
	resp, err := client.Post(ctx, url, userID, req)
	if err != nil {
		return outcomeFailed, submitResult{}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcomeFailed, submitResult{}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var result submitResult
		if err := json.Unmarshal(body, &result); err != nil {
			return outcomeFailed, submitResult{}
		}
		return outcomeSuccess, result
	case http.StatusBadRequest:
		if strings.Contains(string(body), "already_submitted") {
			return outcomeDuplicate, submitResult{}
		}
		return outcomeFailed, submitResult{}
	default:
		return outcomeFailed, submitResult{}
	}
}
