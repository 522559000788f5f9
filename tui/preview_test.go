package tui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(w, h int, on func(x, y int) bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if on(x, y) {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

func TestRenderPreviewHalfBlocks(t *testing.T) {
	img := filled(4, 4, func(x, _ int) bool { return x < 2 })

	out := RenderPreview(img, DefaultTheme())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, 4, lipgloss.Width(line))
		assert.True(t, strings.HasSuffix(line, "  "), "right half is blank")
	}
	assert.Equal(t, 4, strings.Count(out, "█"))
}

func TestRenderPreviewHalves(t *testing.T) {
	top := RenderPreview(filled(1, 2, func(_, y int) bool { return y == 0 }), DefaultTheme())
	assert.Contains(t, top, "▀")

	bottom := RenderPreview(filled(1, 2, func(_, y int) bool { return y == 1 }), DefaultTheme())
	assert.Contains(t, bottom, "▄")

	odd := RenderPreview(filled(3, 3, func(_, _ int) bool { return true }), DefaultTheme())
	lines := strings.Split(odd, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "▀")
}

func TestRenderPreviewEmpty(t *testing.T) {
	assert.Equal(t, "", RenderPreview(image.NewRGBA(image.Rect(0, 0, 0, 0)), DefaultTheme()))
}

func TestRenderThumbnailIsOneLine(t *testing.T) {
	out := renderThumbnail(filled(32, 32, func(_, _ int) bool { return true }), DefaultTheme())
	assert.NotContains(t, out, "\n")
	assert.Equal(t, thumbCols, lipgloss.Width(out))
}

func TestCoverage(t *testing.T) {
	assert.Equal(t, 0, coverage(color.NRGBA{}))
	assert.Equal(t, shades, coverage(color.NRGBA{A: 0xff}))
	assert.Equal(t, 2, coverage(color.NRGBA{A: 0x80}))
}

func TestShadeBlendsInkOverPaper(t *testing.T) {
	p := newPainter(&Theme{Ink: "#FFFFFF", Paper: "#000000"})
	assert.Equal(t, lipgloss.Color("#000000"), p.shade(0))
	assert.Equal(t, lipgloss.Color("#7F7F7F"), p.shade(2))
	assert.Equal(t, lipgloss.Color("#FFFFFF"), p.shade(shades))
}

func TestParseHex(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x7C, G: 0x3A, B: 0xED, A: 0xff}, parseHex("#7C3AED"))
	assert.Equal(t, color.RGBA{A: 0xff}, parseHex("purple"))
	assert.Equal(t, color.RGBA{A: 0xff}, parseHex("#zzzzzz"))
}

func TestLayout(t *testing.T) {
	l := NewLayout()

	l.Update(120, 40)
	assert.True(t, l.IsMinimumSize())
	wide := l.Calculate(32)
	assert.True(t, wide.ShowPreview)
	assert.Equal(t, 38, wide.PreviewPanelWidth)
	assert.Equal(t, 82, wide.ListPanelWidth)
	assert.Equal(t, 34, wide.ListRows)

	l.Update(80, 30)
	narrow := l.Calculate(32)
	assert.False(t, narrow.ShowPreview)
	assert.Equal(t, 80, narrow.ListPanelWidth)

	l.Update(50, 30)
	assert.False(t, l.IsMinimumSize())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "settings", truncate("settings", 8))
	assert.Equal(t, "sett...", truncate("settings", 7))
	assert.Equal(t, "se", truncate("settings", 2))
}
