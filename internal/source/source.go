// Package source loads rule texts and item dumps from local paths or HTTP
// URLs, and watches local rule files for changes.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mosaner/nicofilter/internal/models"
)

// Loader loads rule texts and item dumps.
type Loader struct {
	client  *http.Client
	retries int
}

// New creates a new loader from config.
func New(cfg models.SourceConfig) *Loader {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	retries := cfg.Retries
	if retries == 0 {
		retries = 3
	}

	return &Loader{
		client: &http.Client{
			Timeout: timeout,
		},
		retries: retries,
	}
}

// Load reads content from a local path or, when ref starts with a scheme,
// from an HTTP URL with retries.
func (l *Loader) Load(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return l.fetch(ctx, ref)
	}

	return os.ReadFile(ref)
}

// fetch downloads content from a URL with retries and backoff.
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for i := 0; i < l.retries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(i) * time.Second):
			}
		}

		data, err := l.doFetch(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("failed after %d retries: %w", l.retries, lastErr)
}

func (l *Loader) doFetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "nicofilter/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}
