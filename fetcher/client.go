package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTimeout = 15 * time.Second
	userAgent      = "symbolPicker/1.0 (+https://github.com/Abhimanyu14/material-symbols)"
)

// NewClient returns a plain client for asset downloads.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NewCachingClient returns a client whose responses are kept on disk under
// cacheDir and reused according to standard Cache-Control rules. An empty
// cacheDir disables the disk cache.
func NewCachingClient(cacheDir string, timeout time.Duration) (*http.Client, error) {
	if cacheDir == "" {
		return NewClient(timeout), nil
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create http cache directory: %w", err)
	}

	transport := httpcache.NewTransport(diskcache.New(cacheDir))
	transport.MarkCachedResponses = true

	client := NewClient(timeout)
	client.Transport = transport
	return client, nil
}

// get performs a GET and returns the body. header may be nil.
func get(ctx context.Context, client *http.Client, op, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Op: op, URL: url, Err: err}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		return nil, &Error{Op: op, URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &Error{Op: op, URL: url, Status: resp.StatusCode, Err: ErrNotFound}
	case resp.StatusCode != http.StatusOK:
		return nil, &Error{Op: op, URL: url, Status: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, URL: url, Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"op":     op,
		"url":    url,
		"bytes":  len(body),
		"cached": resp.Header.Get(httpcache.XFromCache) != "",
	}).Debug("fetched")

	return body, nil
}
