package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eventease/insights/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Send performs a request with a JSON body using the given method.
func (c *HTTPClient) Send(ctx context.Context, method, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitResult buckets a submission outcome.
type submitResult string

const (
	resultSuccess   submitResult = "success"
	resultDuplicate submitResult = "duplicate"
	resultFailed    submitResult = "failed"
)

// submitRecords submits JSON bodies concurrently using a worker pool and
// returns (successful, duplicate, failed) counts.
func submitRecords(ctx context.Context, config *Config, url string, bodies []interface{}) (int, int, int) {
	client := newHTTPClient(config.Timeout)

	var (
		successful int64
		duplicate  int64
		failed     int64
	)

	bodyChan := make(chan interface{}, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for body := range bodyChan {
				select {
				case <-ctx.Done():
					return
				default:
					switch submitSingle(ctx, client, url, body) {
					case resultSuccess:
						atomic.AddInt64(&successful, 1)
					case resultDuplicate:
						atomic.AddInt64(&duplicate, 1)
					case resultFailed:
						atomic.AddInt64(&failed, 1)
					}
				}
			}
		}()
	}

	go func() {
		defer close(bodyChan)
		for _, body := range bodies {
			select {
			case <-ctx.Done():
				return
			case bodyChan <- body:
			}
		}
	}()

	wg.Wait()

	if config.Verbose {
		logger.Get().Info(ctx, "submission batch completed",
			logger.String("url", url),
			logger.Int("successful", int(successful)),
			logger.Int("duplicate", int(duplicate)),
			logger.Int("failed", int(failed)),
		)
	}
	return int(successful), int(duplicate), int(failed)
}

// submitSingle submits one record and buckets the outcome by status code.
func submitSingle(ctx context.Context, client *HTTPClient, url string, body interface{}) submitResult {
	resp, err := client.Send(ctx, http.MethodPost, url, body)
	if err != nil {
		return resultFailed
	}

	respBody, err := readResponseBody(resp)
	if err != nil {
		return resultFailed
	}

	switch resp.StatusCode {
	case http.StatusAccepted:
		return resultSuccess
	case http.StatusOK:
		var ack AckResponse
		if err := json.Unmarshal(respBody, &ack); err == nil && ack.Duplicate {
			return resultDuplicate
		}
		return resultSuccess
	default:
		return resultFailed
	}
}
