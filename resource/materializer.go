// Package resource turns selected icons into Android vector drawable files.
package resource

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Abhimanyu14/material-symbols/cache"
	"github.com/Abhimanyu14/material-symbols/symbol"
)

// DefaultConcurrency bounds parallel drawable downloads in MaterializeAll.
const DefaultConcurrency = 4

// TextSource fetches drawable XML. *fetcher.Assets implements it.
type TextSource interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// DrawableFile is a file ready to be written into a drawable directory.
type DrawableFile struct {
	Icon    symbol.Icon
	Name    string
	URL     string
	Content string
}

// Size is the content length in bytes.
func (f DrawableFile) Size() int { return len(f.Content) }

// Materializer downloads drawables, caching content by resource URL.
type Materializer struct {
	host  string
	src   TextSource
	limit int
	texts *cache.Keyed[string, string]
}

type Option func(*Materializer)

// WithConcurrency bounds MaterializeAll. Values below 1 fall back to the default.
func WithConcurrency(n int) Option {
	return func(m *Materializer) {
		if n > 0 {
			m.limit = n
		}
	}
}

func New(host string, src TextSource, cacheOpts []cache.Option, opts ...Option) *Materializer {
	m := &Materializer{host: host, src: src, limit: DefaultConcurrency}
	for _, opt := range opts {
		opt(m)
	}
	m.texts = cache.New(func(ctx context.Context, url string) (string, error) {
		return m.src.FetchText(ctx, url)
	}, append([]cache.Option{cache.WithName("drawable")}, cacheOpts...)...)
	return m
}

// Materialize fetches the drawable for icon with opts.
func (m *Materializer) Materialize(ctx context.Context, icon symbol.Icon, opts symbol.Options) (DrawableFile, error) {
	url := symbol.ResourceURL(m.host, icon, opts)
	content, err := m.texts.Get(ctx, url)
	if err != nil {
		return DrawableFile{}, fmt.Errorf("failed to fetch drawable for %s: %w", icon.Name, err)
	}
	return DrawableFile{
		Icon:    icon,
		Name:    symbol.FileName(icon, opts),
		URL:     url,
		Content: content,
	}, nil
}

// MaterializeAll fetches every icon concurrently. It returns all files in the
// order of icons, or the first error; a failure cancels the remaining fetches.
func (m *Materializer) MaterializeAll(ctx context.Context, icons []symbol.Icon, opts symbol.Options) ([]DrawableFile, error) {
	files := make([]DrawableFile, len(icons))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.limit)
	for i, icon := range icons {
		i, icon := i, icon
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := m.Materialize(gctx, icon, opts)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"count":   len(files),
		"options": opts.String(),
	}).Debug("drawables materialized")
	return files, nil
}

// Stats reports the drawable cache.
func (m *Materializer) Stats() cache.Stats {
	return m.texts.Stats()
}

// Close stops the drawable cache.
func (m *Materializer) Close() {
	m.texts.Close()
}
