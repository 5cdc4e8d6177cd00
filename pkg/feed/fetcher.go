package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
)

// errPermanent marks fetch failures that retrying won't fix
var errPermanent = errors.New("permanent failure")

// HTTPFetcher downloads feed documents over HTTP
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	retries   int
	maxSize   int64
}

// FetcherParams defines HTTPFetcher settings
type FetcherParams struct {
	Timeout   time.Duration
	UserAgent string
	Retries   int   // total attempts, at least one
	MaxSize   int64 // body size limit in bytes, 0 for no limit
}

// NewHTTPFetcher creates a new feed fetcher
func NewHTTPFetcher(params FetcherParams) *HTTPFetcher {
	if params.Retries < 1 {
		params.Retries = 1
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: params.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: params.UserAgent,
		retries:   params.Retries,
		maxSize:   params.MaxSize,
	}
}

// Fetch retrieves the document at url, retrying transient failures with backoff.
// Client errors (4xx) are not retried.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	retrier := repeater.NewBackoff(f.retries, 100*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	var body []byte
	attempt := 0
	err := retrier.Do(ctx, func() error {
		attempt++
		data, err := f.fetch(ctx, url)
		if err != nil {
			lgr.Printf("[WARN] fetch %s, attempt %d: %v", url, attempt, err)
			return err
		}
		body = data
		return nil
	}, errPermanent)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return body, nil
}

// fetch makes a single request
func (f *HTTPFetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w: %w", errPermanent, err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	addBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, errPermanent)
		}
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return readLimited(resp.Body, f.maxSize)
}

// readLimited reads r fully, failing if it holds more than limit bytes
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("document exceeds %d bytes: %w", limit, errPermanent)
	}
	return data, nil
}
