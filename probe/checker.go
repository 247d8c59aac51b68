// Package probe checks whether job posting URLs are still live.
//
// Postings expire; serving a dead link is worse than serving one result
// fewer. The checker is wired into the search engine behind an option and
// stays disabled in the default path to keep search latency network-free.
package probe

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 4 * time.Second

// Markers in a final (post-redirect) URL that indicate an expired or
// removed posting.
var badMarkers = []string{"expired", "not-found", "removed", "archived", "404", "page-not-found"}

// Checker probes URLs with bounded, redirect-following HEAD requests.
type Checker struct {
	client *http.Client
	logger *slog.Logger
}

// NewChecker creates a checker whose every probe is bounded by timeout.
// A non-positive timeout falls back to 4 seconds.
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Checker{
		client: &http.Client{Timeout: timeout},
		logger: slog.Default().With("component", "url-probe"),
	}
}

// IsLive reports whether the URL resolves to a live posting: the HEAD
// request must succeed with status 200 and the final URL must not carry
// an expired/removed marker. Any transport failure counts as not live.
func (c *Checker) IsLive(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		c.logger.Debug("url check failed", "url", url, "err", err)
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("url check failed", "url", url, "err", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	final := strings.ToLower(resp.Request.URL.String())
	for _, marker := range badMarkers {
		if strings.Contains(final, marker) {
			return false
		}
	}

	return true
}
