package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/h2non/filetype"
)

// Assets downloads preview SVGs and drawable XML from the asset host.
type Assets struct {
	client *http.Client
}

func NewAssets(client *http.Client) *Assets {
	return &Assets{client: client}
}

// FetchSVG returns the raw SVG document at url.
func (a *Assets) FetchSVG(ctx context.Context, url string) ([]byte, error) {
	body, err := get(ctx, a.client, "fetch preview", url, nil)
	if err != nil {
		return nil, err
	}
	if err := validateText(body); err != nil {
		return nil, &Error{Op: "fetch preview", URL: url, Err: err}
	}
	return body, nil
}

// FetchText returns the drawable resource at url verbatim.
func (a *Assets) FetchText(ctx context.Context, url string) (string, error) {
	body, err := get(ctx, a.client, "fetch drawable", url, nil)
	if err != nil {
		return "", err
	}
	if err := validateText(body); err != nil {
		return "", &Error{Op: "fetch drawable", URL: url, Err: err}
	}
	return string(body), nil
}

// validateText rejects empty bodies and payloads that sniff as a binary
// format (images, archives, fonts) rather than vector markup.
func validateText(body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("empty response")
	}
	kind, err := filetype.Match(body)
	if err != nil {
		return fmt.Errorf("failed to inspect response: %w", err)
	}
	if kind != filetype.Unknown {
		return fmt.Errorf("unexpected %s payload", kind.MIME.Value)
	}
	return nil
}
