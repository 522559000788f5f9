package render

import (
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhimanyu14/material-symbols/fetcher"
	"github.com/Abhimanyu14/material-symbols/symbol"
)

// Left half filled, right half empty.
const halfSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M0 0h12v24H0z"/></svg>`

// Material assets use a shifted view box.
const shiftedSVG = `<svg xmlns="http://www.w3.org/2000/svg" height="24" width="24" viewBox="0 -960 960 960"><path d="M0 -960h960v960H0z"/></svg>`

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestRasterize(t *testing.T) {
	img, err := Rasterize([]byte(halfSVG), 24, 24)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 24, 24), img.Bounds())
	assert.Equal(t, uint32(0xffff), alphaAt(img, 3, 12))
	assert.Equal(t, uint32(0), alphaAt(img, 20, 12))

	img, err = Rasterize([]byte(shiftedSVG), 16, 16)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xffff), alphaAt(img, 8, 8))
}

func TestViewBoxTransform(t *testing.T) {
	m := viewBoxTransform(0, -960, 960, 960, 24, 24)

	x, y := m.Transform(0, -960)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	x, y = m.Transform(960, 0)
	assert.InDelta(t, 24, x, 1e-9)
	assert.InDelta(t, 24, y, 1e-9)

	x, y = viewBoxTransform(0, 0, 0, 0, 16, 16).Transform(8, 4)
	assert.InDelta(t, 8, x, 1e-9)
	assert.InDelta(t, 4, y, 1e-9)
}

func TestRasterizeErrors(t *testing.T) {
	_, err := Rasterize([]byte(halfSVG), 0, 24)
	assert.Error(t, err)

	_, err = Rasterize([]byte(`<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0`), 24, 24)
	assert.Error(t, err)
}

func TestThumbnailIndependentAxes(t *testing.T) {
	img, err := Rasterize([]byte(halfSVG), 48, 48)
	require.NoError(t, err)

	thumb := Thumbnail(img, 8, 4)
	assert.Equal(t, image.Rect(0, 0, 8, 4), thumb.Bounds())
	assert.Greater(t, alphaAt(thumb, 1, 2), uint32(0xf000))
	assert.Less(t, alphaAt(thumb, 6, 2), uint32(0x1000))

	assert.Same(t, img, Thumbnail(img, 48, 48))
	assert.True(t, Thumbnail(img, 0, 3).Bounds().Empty())
}

type countingServer struct {
	*httptest.Server
	mu   sync.Mutex
	hits map[string]int
}

func newCountingServer(t *testing.T) *countingServer {
	return newSVGServer(t, halfSVG)
}

func newSVGServer(t *testing.T, body string) *countingServer {
	s := &countingServer{hits: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.mu.Unlock()
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *countingServer) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

func TestPreviewsWeightChangeReusesSource(t *testing.T) {
	srv := newCountingServer(t)
	previews := NewPreviews(srv.URL, fetcher.NewAssets(fetcher.NewClient(0)))
	defer previews.Close()

	icon := symbol.NewIcon("settings")
	opts := symbol.DefaultOptions()
	ctx := context.Background()

	_, err := previews.Get(ctx, symbol.PreviewKeyFor(icon, opts), 24)
	require.NoError(t, err)

	heavy := opts.WithWeight(symbol.Weight700)
	img, ok := previews.Lookup(symbol.PreviewKeyFor(icon, heavy), 24)
	assert.True(t, ok)
	assert.NotNil(t, img)

	_, err = previews.Get(ctx, symbol.PreviewKeyFor(icon, heavy), 48)
	require.NoError(t, err)

	assert.Equal(t, 1, srv.total())
	sources, rasters := previews.Stats()
	assert.Equal(t, 1, sources.Entries)
	assert.Equal(t, 2, rasters.Entries)
}

func TestPreviewsConcurrentRequestsFetchOnce(t *testing.T) {
	srv := newCountingServer(t)
	previews := NewPreviews(srv.URL, fetcher.NewAssets(fetcher.NewClient(0)))
	defer previews.Close()

	key := symbol.PreviewKeyFor(symbol.NewIcon("search"), symbol.DefaultOptions())

	var delivered atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := previews.Request(key, 24, func(img image.Image, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, img)
				delivered.Add(1)
			}); ok {
				delivered.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Eventually(t, func() bool { return delivered.Load() == 8 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, srv.total())

	img, ok := previews.Request(key, 24, nil)
	assert.True(t, ok)
	assert.NotNil(t, img)
}

func TestPreviewsDrawShiftedViewBox(t *testing.T) {
	srv := newSVGServer(t, shiftedSVG)
	previews := NewPreviews(srv.URL, fetcher.NewAssets(fetcher.NewClient(0)))
	defer previews.Close()

	key := symbol.PreviewKeyFor(symbol.NewIcon("settings"), symbol.DefaultOptions())
	img, err := previews.Get(context.Background(), key, 32)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
	for _, p := range []image.Point{{1, 1}, {16, 16}, {30, 30}} {
		assert.Equal(t, uint32(0xffff), alphaAt(img, p.X, p.Y), "pixel %v", p)
	}

	thumb := Thumbnail(img, 2, 2)
	assert.Greater(t, alphaAt(thumb, 0, 0), uint32(0xf000))
}

type flakySource struct {
	calls atomic.Int32
}

func (f *flakySource) FetchSVG(context.Context, string) ([]byte, error) {
	if f.calls.Add(1) == 1 {
		return nil, &fetcher.Error{Op: "fetch preview", Err: fetcher.ErrNotFound}
	}
	return []byte(halfSVG), nil
}

func TestPreviewsFailureIsNotCached(t *testing.T) {
	src := &flakySource{}
	previews := NewPreviews("", src)
	defer previews.Close()

	key := symbol.PreviewKeyFor(symbol.NewIcon("home"), symbol.DefaultOptions())

	errs := make(chan error, 1)
	_, ok := previews.Request(key, 24, func(_ image.Image, err error) { errs <- err })
	require.False(t, ok)
	select {
	case err := <-errs:
		assert.True(t, fetcher.IsNotFound(err))
	case <-time.After(2 * time.Second):
		t.Fatal("notification not delivered")
	}

	_, err := previews.Get(context.Background(), key, 24)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}
