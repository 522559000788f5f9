package symbol

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultAssetHost serves both the SVG previews and the Android XML drawables.
const DefaultAssetHost = "fonts.gstatic.com"

const defaultSegment = "default"

// PreviewKey is the subset of (icon, options) that determines the preview image.
// Weight is deliberately absent: the preview asset path does not encode it, so a
// weight-only change must hit the same cache entry.
type PreviewKey struct {
	Name   string
	Style  Style
	Grade  Grade
	Filled bool
	Size   Size
}

func PreviewKeyFor(icon Icon, opts Options) PreviewKey {
	return PreviewKey{
		Name:   icon.Name,
		Style:  opts.Style,
		Grade:  opts.Grade,
		Filled: opts.Filled,
		Size:   opts.Size,
	}
}

// URL builds the preview URL from the key alone so the two cannot diverge.
func (k PreviewKey) URL(host string) string {
	return assetURL(host, k.Style, k.Name, previewSegment(k.Grade, k.Filled), k.Size, "svg")
}

func (k PreviewKey) String() string {
	return fmt.Sprintf("%s:%s:%d:%t:%d", k.Name, k.Style.Wire(), k.Grade, k.Filled, k.Size)
}

// PreviewURL is the SVG used for on-screen previews.
func PreviewURL(host string, icon Icon, opts Options) string {
	return PreviewKeyFor(icon, opts).URL(host)
}

// ResourceURL is the Android vector drawable XML for the full option set.
func ResourceURL(host string, icon Icon, opts Options) string {
	return assetURL(host, opts.Style, icon.Name, ResourceSegment(opts), opts.Size, "xml")
}

// PreviewSegment is the option path segment of a preview URL.
func PreviewSegment(opts Options) string {
	return previewSegment(opts.Grade, opts.Filled)
}

func previewSegment(grade Grade, filled bool) string {
	var segs []string
	if grade != DefaultGrade {
		segs = append(segs, grade.Segment())
	}
	if filled {
		segs = append(segs, "fill1")
	}
	return joinSegments(segs)
}

// ResourceSegment orders weight, grade, fill; the endpoint parses it positionally.
func ResourceSegment(opts Options) string {
	var segs []string
	if opts.Weight != DefaultWeight {
		segs = append(segs, "wght"+strconv.Itoa(int(opts.Weight)))
	}
	if opts.Grade != DefaultGrade {
		segs = append(segs, opts.Grade.Segment())
	}
	if opts.Filled {
		segs = append(segs, "fill1")
	}
	return joinSegments(segs)
}

func joinSegments(segs []string) string {
	if len(segs) == 0 {
		return defaultSegment
	}
	return strings.Join(segs, "")
}

func assetURL(host string, style Style, name, segment string, size Size, ext string) string {
	if host == "" {
		host = DefaultAssetHost
	}
	scheme := "https://"
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		scheme = ""
	}
	return fmt.Sprintf("%s%s/s/i/short-term/release/materialsymbols%s/%s/%s/%dpx.%s",
		scheme, strings.TrimSuffix(host, "/"), style.Wire(), name, segment, int(size), ext)
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9_]`)

// SanitizeName lowercases, maps spaces to underscores and strips everything
// outside [a-z0-9_].
func SanitizeName(name string) string {
	name = strings.ReplaceAll(strings.ToLower(name), " ", "_")
	return unsafeFileChars.ReplaceAllString(name, "")
}

// FileName is the drawable resource name, e.g. ic_10k_rounded_w700_filled_24dp.xml.
// Style and size are always present; weight, fill and grade only when they
// differ from the defaults.
func FileName(icon Icon, opts Options) string {
	var b strings.Builder
	b.WriteString("ic_")
	b.WriteString(SanitizeName(icon.Name))
	b.WriteString("_")
	b.WriteString(opts.Style.Wire())
	if opts.Weight != DefaultWeight {
		b.WriteString("_w")
		b.WriteString(strconv.Itoa(int(opts.Weight)))
	}
	if opts.Filled {
		b.WriteString("_filled")
	}
	if opts.Grade != DefaultGrade {
		b.WriteString(opts.Grade.fileSuffix())
	}
	b.WriteString("_")
	b.WriteString(strconv.Itoa(int(opts.Size)))
	b.WriteString("dp.xml")
	return b.String()
}
