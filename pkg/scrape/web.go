package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"
)

const userAgent = "cinepedia-scraper/1.0 (+https://github.com/cinepedia/scraper)"

// Loader fetches raw page HTML. Fetches are cached per URL and collapsed
// through singleflight so concurrent workers asking for the same page do
// not hammer the source.
type Loader struct {
	client *http.Client

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewLoader creates a loader using the given HTTP client, or
// http.DefaultClient when nil.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		client: client,
		cache:  make(map[string][]byte),
	}
}

// Fetch downloads the page at url and returns its raw HTML.
func (l *Loader) Fetch(ctx context.Context, url string) ([]byte, error) {
	l.cacheMu.RLock()
	if cached, ok := l.cache[url]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(url, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[url]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch url: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[url] = body
		l.cacheMu.Unlock()

		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}
