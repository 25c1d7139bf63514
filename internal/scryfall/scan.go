package scryfall

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// DownloadScan streams a Scryfall image URI to path, creating parent
// directories as needed. Returns the saved path, or "" if the download
// failed; like the other request helpers, failures are absorbed here.
func (c *Client) DownloadScan(ctx context.Context, imgURL, path string) string {
	call := func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, imgURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("scryfall: scan download status %d", resp.StatusCode)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		_, err = io.Copy(f, resp.Body)
		return err
	}

	if err := c.policies.wrap(call)(ctx); err != nil {
		slog.Warn("Art scan download failed", "url", imgURL, "error", err)
		return ""
	}
	return path
}
