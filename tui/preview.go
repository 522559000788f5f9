package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Abhimanyu14/material-symbols/render"
)

// shades is the number of non-empty coverage levels a cell half can take.
const shades = 4

// thumbCols is the width of a list row thumbnail in cells.
const thumbCols = 2

// RenderPreview draws img with half-block glyphs, two pixel rows per line.
// Only alpha is used: coverage blends the theme's Ink over its Paper.
func RenderPreview(img image.Image, theme *Theme) string {
	b := img.Bounds()
	if b.Empty() {
		return ""
	}
	p := newPainter(theme)

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := coverage(img.At(x, y))
			bottom := 0
			if y+1 < b.Max.Y {
				bottom = coverage(img.At(x, y+1))
			}
			sb.WriteString(p.cell(top, bottom))
		}
	}
	return sb.String()
}

// renderThumbnail scales img down to a single line of thumbCols cells.
func renderThumbnail(img image.Image, theme *Theme) string {
	return RenderPreview(render.Thumbnail(img, thumbCols, 2), theme)
}

func coverage(c color.Color) int {
	_, _, _, a := c.RGBA()
	return int((a*shades + 0x7fff) / 0xffff)
}

type painter struct {
	ink   color.RGBA
	paper color.RGBA
	cells map[[2]int]string
}

func newPainter(theme *Theme) *painter {
	return &painter{
		ink:   parseHex(string(theme.Ink)),
		paper: parseHex(string(theme.Paper)),
		cells: make(map[[2]int]string),
	}
}

func (p *painter) cell(top, bottom int) string {
	k := [2]int{top, bottom}
	if s, ok := p.cells[k]; ok {
		return s
	}

	var s string
	switch {
	case top == 0 && bottom == 0:
		s = " "
	case top == bottom:
		s = lipgloss.NewStyle().Foreground(p.shade(top)).Render("█")
	case bottom == 0:
		s = lipgloss.NewStyle().Foreground(p.shade(top)).Render("▀")
	case top == 0:
		s = lipgloss.NewStyle().Foreground(p.shade(bottom)).Render("▄")
	default:
		s = lipgloss.NewStyle().Foreground(p.shade(top)).Background(p.shade(bottom)).Render("▀")
	}
	p.cells[k] = s
	return s
}

func (p *painter) shade(level int) lipgloss.Color {
	mix := func(a, b uint8) uint8 {
		return uint8((int(a)*(shades-level) + int(b)*level) / shades)
	}
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X",
		mix(p.paper.R, p.ink.R), mix(p.paper.G, p.ink.G), mix(p.paper.B, p.ink.B)))
}

// parseHex reads "#RRGGBB". Anything else is black.
func parseHex(s string) color.RGBA {
	c := color.RGBA{A: 0xff}
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}
