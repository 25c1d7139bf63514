package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// fetchJSON runs a GET through the policy pipeline and decodes the
// response body into target. Scryfall serves its error payloads with
// 4xx statuses, so those bodies are decoded rather than rejected;
// callers inspect the decoded object for the "error" marker.
func (c *Client) fetchJSON(ctx context.Context, endpoint string, target any) error {
	call := func(ctx context.Context) error {
		return c.doJSONRequest(ctx, endpoint, target)
	}
	return c.policies.wrap(call)(ctx)
}

func (c *Client) doJSONRequest(ctx context.Context, endpoint string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("scryfall: server error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

func isRetryable(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		// Network errors (connection resets etc.)
		if strings.Contains(urlErr.Error(), "connection") {
			return true
		}
	}
	return false
}

func backoffDelay(attempt int) time.Duration {
	// exponential backoff; the retry policy caps the cumulative sleep
	return time.Duration(1<<uint(attempt-1)) * 250 * time.Millisecond
}
