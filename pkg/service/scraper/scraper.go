// Package scraper aggregates raw current-affairs text for one date
// from a fixed ordered set of news sources.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dailysync/upsc/pkg/adapter"
	"github.com/dailysync/upsc/pkg/model"
	"github.com/dailysync/upsc/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const fetchTimeout = 10 * time.Second

// Client fetches and concatenates article text per date. Each
// successfully fetched article is written through the Storage cache
// and read back before use, so a partial write is never surfaced as
// fetched content.
type Client struct {
	sources []Source
	storage adapter.Storage
	http    *http.Client
}

// Option is a functional option for Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for fetching
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a scraper over the given sources, in order.
func New(storage adapter.Storage, sources []Source, opts ...Option) *Client {
	c := &Client{
		sources: sources,
		storage: storage,
		http:    &http.Client{Timeout: fetchTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchAll returns the concatenation, in source order, of all article
// texts successfully fetched for date. A per-source failure is logged
// and skipped; if every source fails the result is an empty string.
// FetchAll itself never fails.
func (c *Client) FetchAll(ctx context.Context, date model.DateKey) string {
	logger := logging.From(ctx)

	var texts []string
	for _, src := range c.sources {
		text, err := c.fetchSource(ctx, src, date)
		if err != nil {
			logger.Warn("failed to fetch source",
				"source", src.Name,
				"date", date,
				"error", err)
			continue
		}
		logger.Info("fetched source",
			"source", src.Name,
			"date", date,
			"bytes", len(text))
		texts = append(texts, text)
	}

	return strings.Join(texts, "\n")
}

// fetchSource fetches one source's page for date, extracts its text,
// caches it, and returns the cached copy.
func (c *Client) fetchSource(ctx context.Context, src Source, date model.DateKey) (string, error) {
	url := src.URL + date.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to build request", goerr.Value("url", url))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch page", goerr.Value("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected status code",
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode))
	}

	article, err := extractArticle(resp.Body)
	if err != nil {
		return "", err
	}

	key := cacheKey(date, src)
	if err := c.writeCache(ctx, key, article); err != nil {
		return "", err
	}

	// Read back from the cache rather than trusting the in-memory copy:
	// if the write did not complete, this fails instead of returning
	// truncated text.
	return c.readCache(ctx, key)
}

func (c *Client) writeCache(ctx context.Context, key, article string) error {
	w, err := c.storage.Put(ctx, key)
	if err != nil {
		return goerr.Wrap(err, "failed to open cache writer", goerr.Value("key", key))
	}
	if _, err := io.WriteString(w, article); err != nil {
		w.Close()
		return goerr.Wrap(err, "failed to write cache", goerr.Value("key", key))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize cache", goerr.Value("key", key))
	}
	return nil
}

func (c *Client) readCache(ctx context.Context, key string) (string, error) {
	r, err := c.storage.Get(ctx, key)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read back cache", goerr.Value("key", key))
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read cached article", goerr.Value("key", key))
	}
	return string(data), nil
}

func cacheKey(date model.DateKey, src Source) string {
	return fmt.Sprintf("%s_%s.txt", date, src.Name)
}
