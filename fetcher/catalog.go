package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
)

const (
	DefaultCatalogURL = "https://fonts.google.com/metadata/icons?key=material_symbols&incomplete=true"

	// DefaultFamily is the family whose unsupported icons are dropped.
	DefaultFamily = "Material Symbols Rounded"

	// Serve from the disk cache while at least 3 days fresh, accept up to 30
	// days stale.
	catalogCacheControl = "min-fresh=259200, max-stale=2592000"

	xssiPrefix = ")]}'"
)

type catalogResponse struct {
	Icons []catalogIcon `json:"icons"`
}

type catalogIcon struct {
	Name                string   `json:"name"`
	UnsupportedFamilies []string `json:"unsupported_families"`
}

// Catalog downloads the list of available icon names.
type Catalog struct {
	client *http.Client
	url    string
	family string
}

func NewCatalog(client *http.Client, url, family string) *Catalog {
	if url == "" {
		url = DefaultCatalogURL
	}
	if family == "" {
		family = DefaultFamily
	}
	return &Catalog{client: client, url: url, family: family}
}

// FetchNames returns every icon name available in the target family, in the
// order the server lists them. It returns either the whole list or an error.
func (c *Catalog) FetchNames(ctx context.Context) ([]string, error) {
	header := http.Header{}
	header.Set("Cache-Control", catalogCacheControl)

	body, err := get(ctx, c.client, "fetch catalog", c.url, header)
	if err != nil {
		return nil, err
	}

	names, err := ParseCatalog(body, c.family)
	if err != nil {
		return nil, &Error{Op: "parse catalog", URL: c.url, Err: err}
	}
	return names, nil
}

// ParseCatalog decodes the metadata payload, stripping the anti-hijacking
// prefix and dropping icons the family does not support.
func ParseCatalog(data []byte, family string) ([]string, error) {
	data = bytes.TrimPrefix(bytes.TrimSpace(data), []byte(xssiPrefix))

	var resp catalogResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	names := make([]string, 0, len(resp.Icons))
	for _, icon := range resp.Icons {
		if icon.Name == "" || slices.Contains(icon.UnsupportedFamilies, family) {
			continue
		}
		names = append(names, icon.Name)
	}
	return names, nil
}
