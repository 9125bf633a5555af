package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/mrnam205/autotender/annotation"
	"github.com/mrnam205/autotender/fonts"
)

// Compositor renders annotation items onto raster documents.
type Compositor struct {
	fonts *fonts.Source
}

// New constructs a raster compositor drawing with faces from src.
func New(src *fonts.Source) *Compositor {
	return &Compositor{fonts: src}
}

// Composite copies the source image onto a fresh RGBA surface and applies
// every item of the spec in order. The source is never mutated; the returned
// surface always has the source's dimensions.
func (c *Compositor) Composite(src image.Image, spec *annotation.Spec) (*image.RGBA, error) {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)

	for _, item := range spec.Items {
		var err error
		switch it := item.(type) {
		case *annotation.TextItem:
			err = c.drawText(dst, it.Content, it.At, it.FontSize, it.Color, it.Bold)
		case *annotation.ImageItem:
			err = c.drawImage(dst, it)
		case *annotation.CitationBlock:
			err = c.drawCitation(dst, it)
		}
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func (c *Compositor) drawText(dst *image.RGBA, content string, at annotation.Point, size float64, col annotation.Color, bold bool) error {
	if content == "" {
		return nil
	}
	face, err := c.fonts.Face(size, bold)
	if err != nil {
		return err
	}
	// The item position is the top-left corner of the text box; the drawer
	// wants the baseline.
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(toRGBA(col)),
		Face: face,
		Dot: fixed.Point26_6{
			X: toFixed(at.X),
			Y: toFixed(at.Y) + face.Metrics().Ascent,
		},
	}
	drawer.DrawString(content)
	return nil
}

func (c *Compositor) drawImage(dst *image.RGBA, it *annotation.ImageItem) error {
	if it.Image == nil {
		return &annotation.AssetLoadError{Path: it.Path, Err: errors.New("image not decoded")}
	}
	scale := it.EffectiveScale()
	srcBounds := it.Image.Bounds()
	w := int(math.Round(float64(srcBounds.Dx()) * scale))
	h := int(math.Round(float64(srcBounds.Dy()) * scale))
	if w <= 0 || h <= 0 {
		return nil
	}
	x := int(math.Round(it.At.X))
	y := int(math.Round(it.At.Y))
	rect := image.Rect(x, y, x+w, y+h)
	xdraw.ApproxBiLinear.Scale(dst, rect, it.Image, srcBounds, xdraw.Over, nil)
	return nil
}

func (c *Compositor) drawCitation(dst *image.RGBA, it *annotation.CitationBlock) error {
	advance := it.FontSize * it.EffectiveLineSpacing()
	if advance <= 0 {
		advance = 12 * it.EffectiveLineSpacing()
	}
	at := it.At
	for _, line := range it.Lines {
		if err := c.drawText(dst, line, at, it.FontSize, it.Color, false); err != nil {
			return err
		}
		at.Y += advance
	}
	return nil
}

func toRGBA(c annotation.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
