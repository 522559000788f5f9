package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogPayload = `)]}'
{"host":"fonts.gstatic.com","icons":[
 {"name":"10k","unsupported_families":[]},
 {"name":"settings"},
 {"name":"legacy_only","unsupported_families":["Material Symbols Rounded","Material Symbols Sharp"]},
 {"name":"search","unsupported_families":["Material Icons"]}
]}`

func TestParseCatalog(t *testing.T) {
	names, err := ParseCatalog([]byte(catalogPayload), DefaultFamily)
	require.NoError(t, err)
	assert.Equal(t, []string{"10k", "settings", "search"}, names)

	names, err = ParseCatalog([]byte(catalogPayload), "Material Icons")
	require.NoError(t, err)
	assert.Equal(t, []string{"10k", "settings", "legacy_only"}, names)
}

func TestParseCatalogWithoutPrefix(t *testing.T) {
	names, err := ParseCatalog([]byte(`{"icons":[{"name":"home"}]}`), DefaultFamily)
	require.NoError(t, err)
	assert.Equal(t, []string{"home"}, names)
}

func TestParseCatalogRejectsGarbage(t *testing.T) {
	_, err := ParseCatalog([]byte(")]}'\n<html>"), DefaultFamily)
	assert.Error(t, err)
}

func TestCatalogFetchUsesDiskCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Contains(t, r.Header.Get("Cache-Control"), "max-stale=2592000")
		assert.Contains(t, r.Header.Get("Cache-Control"), "min-fresh=259200")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogPayload))
	}))
	defer srv.Close()

	client, err := NewCachingClient(t.TempDir(), 0)
	require.NoError(t, err)
	catalog := NewCatalog(client, srv.URL, "")

	for i := 0; i < 2; i++ {
		names, err := catalog.FetchNames(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"10k", "settings", "search"}, names)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestCatalogFetchFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte(")]}'{not json"))
		}
	}))
	defer srv.Close()

	_, err := NewCatalog(NewClient(0), srv.URL+"/broken", "").FetchNames(context.Background())
	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusInternalServerError, fe.Status)
	assert.False(t, IsNotFound(err))

	_, err = NewCatalog(NewClient(0), srv.URL+"/garbage", "").FetchNames(context.Background())
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "parse catalog", fe.Op)
}

func TestAssetsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/icon.svg":
			_, _ = w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M0 0h24v24H0z"/></svg>`))
		case "/icon.xml":
			_, _ = w.Write([]byte(`<vector android:width="24dp"/>`))
		case "/image.xml":
			_, _ = w.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
		case "/empty.xml":
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	assets := NewAssets(NewClient(0))
	ctx := context.Background()

	svg, err := assets.FetchSVG(ctx, srv.URL+"/icon.svg")
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	text, err := assets.FetchText(ctx, srv.URL+"/icon.xml")
	require.NoError(t, err)
	assert.Equal(t, `<vector android:width="24dp"/>`, text)

	_, err = assets.FetchText(ctx, srv.URL+"/missing.xml")
	assert.True(t, IsNotFound(err))

	_, err = assets.FetchText(ctx, srv.URL+"/image.xml")
	assert.ErrorContains(t, err, "image/png")
	assert.False(t, IsNotFound(err))

	_, err = assets.FetchText(ctx, srv.URL+"/empty.xml")
	assert.ErrorContains(t, err, "empty response")
}

func TestFetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewAssets(NewClient(0)).FetchText(ctx, srv.URL+"/slow.xml")
	assert.True(t, errors.Is(err, context.Canceled))
}
