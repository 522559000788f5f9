// Package render turns preview SVGs into images for the picker.
package render

import (
	"bytes"
	"fmt"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// Rasterize draws svg into a w x h RGBA image, stretching the view box to fit.
func Rasterize(svg []byte, w, h int) (img *image.RGBA, err error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", w, h)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	// oksvg panics on some malformed path data.
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("failed to draw SVG: %v", r)
		}
	}()

	vb := icon.ViewBox
	icon.Transform = viewBoxTransform(vb.X, vb.Y, vb.W, vb.H, w, h)

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	return rgba, nil
}

// viewBoxTransform maps the view box onto a w x h target. The offset is
// applied in view box units before scaling; Material assets use a view box
// starting at y = -960.
func viewBoxTransform(x, y, vw, vh float64, w, h int) rasterx.Matrix2D {
	if vw <= 0 {
		vw = float64(w)
	}
	if vh <= 0 {
		vh = float64(h)
	}
	return rasterx.Identity.
		Scale(float64(w)/vw, float64(h)/vh).
		Translate(-x, -y)
}

// Thumbnail scales src to exactly w x h. The x and y factors are independent,
// so a square icon can be squeezed into a terminal cell grid.
func Thumbnail(src image.Image, w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Rect, src, b, draw.Over, nil)
	return dst
}
