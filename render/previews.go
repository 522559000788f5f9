package render

import (
	"context"
	"fmt"
	"image"

	"github.com/Abhimanyu14/material-symbols/cache"
	"github.com/Abhimanyu14/material-symbols/symbol"
)

// SVGSource fetches preview documents. *fetcher.Assets implements it.
type SVGSource interface {
	FetchSVG(ctx context.Context, url string) ([]byte, error)
}

// RasterKey identifies one preview drawn at one pixel size.
type RasterKey struct {
	Preview symbol.PreviewKey
	Px      int
}

// Previews caches preview SVGs per PreviewKey and their rasters per size.
// Each SVG is fetched once per session however many sizes are drawn from it.
type Previews struct {
	host    string
	src     SVGSource
	sources *cache.Keyed[symbol.PreviewKey, []byte]
	rasters *cache.Keyed[RasterKey, image.Image]
}

// NewPreviews builds the preview caches. opts apply to both layers.
func NewPreviews(host string, src SVGSource, opts ...cache.Option) *Previews {
	p := &Previews{host: host, src: src}
	p.sources = cache.New(p.fetch, withName(opts, "preview-svg")...)
	p.rasters = cache.New(p.rasterize, withName(opts, "preview-raster")...)
	return p
}

func withName(opts []cache.Option, name string) []cache.Option {
	out := make([]cache.Option, 0, len(opts)+1)
	out = append(out, cache.WithName(name))
	return append(out, opts...)
}

func (p *Previews) fetch(ctx context.Context, key symbol.PreviewKey) ([]byte, error) {
	return p.src.FetchSVG(ctx, key.URL(p.host))
}

// rasterize only runs once the source is cached, so it never waits on the
// network while holding a worker slot.
func (p *Previews) rasterize(_ context.Context, key RasterKey) (image.Image, error) {
	svg, ok := p.sources.Lookup(key.Preview)
	if !ok {
		return nil, fmt.Errorf("no preview source for %s", key.Preview)
	}
	return Rasterize(svg, key.Px, key.Px)
}

// Lookup returns the raster if it is already cached.
func (p *Previews) Lookup(key symbol.PreviewKey, px int) (image.Image, bool) {
	return p.rasters.Lookup(RasterKey{Preview: key, Px: px})
}

// Request returns the cached raster, or starts whatever loads are missing and
// calls notify once with the outcome. It never blocks.
func (p *Previews) Request(key symbol.PreviewKey, px int, notify func(image.Image, error)) (image.Image, bool) {
	rk := RasterKey{Preview: key, Px: px}
	if img, ok := p.rasters.Lookup(rk); ok {
		return img, true
	}
	if notify == nil {
		notify = func(image.Image, error) {}
	}

	if _, ok := p.sources.Request(key, func(_ []byte, err error) {
		if err != nil {
			notify(nil, err)
			return
		}
		p.requestRaster(rk, notify)
	}); ok {
		p.requestRaster(rk, notify)
	}
	return nil, false
}

func (p *Previews) requestRaster(rk RasterKey, notify func(image.Image, error)) {
	if img, ok := p.rasters.Request(rk, notify); ok {
		notify(img, nil)
	}
}

// Get waits for the raster, fetching and drawing it if needed.
func (p *Previews) Get(ctx context.Context, key symbol.PreviewKey, px int) (image.Image, error) {
	if _, err := p.sources.Get(ctx, key); err != nil {
		return nil, err
	}
	return p.rasters.Get(ctx, RasterKey{Preview: key, Px: px})
}

// Source returns the cached SVG document for key, fetching it if needed.
func (p *Previews) Source(ctx context.Context, key symbol.PreviewKey) ([]byte, error) {
	return p.sources.Get(ctx, key)
}

// Stats reports the source and raster layers separately.
func (p *Previews) Stats() (sources, rasters cache.Stats) {
	return p.sources.Stats(), p.rasters.Stats()
}

// Close stops both layers; pending notifications are dropped.
func (p *Previews) Close() {
	p.sources.Close()
	p.rasters.Close()
}
