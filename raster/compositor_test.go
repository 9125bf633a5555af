package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/mrnam205/autotender/annotation"
	"github.com/mrnam205/autotender/fonts"
)

func newBlank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func pixelsEqual(a, b *image.RGBA) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

// anyInkIn reports whether any pixel in the given region differs from white.
func anyInkIn(img *image.RGBA, x0, y0, x1, y1 int) bool {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := img.RGBAAt(x, y)
			if c.R != 255 || c.G != 255 || c.B != 255 {
				return true
			}
		}
	}
	return false
}

func TestComposite_TextPreservesDimensionsAndRendersAtPosition(t *testing.T) {
	src := newBlank(800, 600)
	spec := &annotation.Spec{}
	spec.Add(&annotation.TextItem{
		Content:  "PAID IN FULL",
		At:       annotation.Point{X: 50, Y: 50},
		FontSize: 24,
		Color:    annotation.Black,
	})

	out, err := New(fonts.NewSource()).Composite(src, spec)
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	if out.Bounds().Dx() != 800 || out.Bounds().Dy() != 600 {
		t.Fatalf("output dimensions %v, want 800x600", out.Bounds())
	}
	if !anyInkIn(out, 50, 50, 400, 90) {
		t.Fatalf("no text rendered near (50,50)")
	}
	if anyInkIn(out, 500, 300, 800, 600) {
		t.Fatalf("ink found far from the only annotation")
	}
}

func TestComposite_EmptySpecIsIdentity(t *testing.T) {
	src := newBlank(120, 80)
	out, err := New(fonts.NewSource()).Composite(src, &annotation.Spec{})
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	if !pixelsEqual(src, out) {
		t.Fatalf("empty spec should reproduce the source pixel for pixel")
	}
}

func TestComposite_DoesNotMutateSource(t *testing.T) {
	src := newBlank(200, 200)
	spec := &annotation.Spec{}
	spec.Add(&annotation.TextItem{Content: "X", At: annotation.Point{X: 10, Y: 10}, FontSize: 48})
	if _, err := New(fonts.NewSource()).Composite(src, spec); err != nil {
		t.Fatalf("composite: %v", err)
	}
	if anyInkIn(src, 0, 0, 200, 200) {
		t.Fatalf("source image was mutated")
	}
}

func TestComposite_NonOverlappingItemsAreOrderIndependent(t *testing.T) {
	a := &annotation.TextItem{Content: "TOP", At: annotation.Point{X: 10, Y: 10}, FontSize: 16}
	b := &annotation.TextItem{Content: "BOTTOM", At: annotation.Point{X: 10, Y: 200}, FontSize: 16}

	c := New(fonts.NewSource())
	first, err := c.Composite(newBlank(300, 300), &annotation.Spec{Items: []annotation.Item{a, b}})
	if err != nil {
		t.Fatalf("composite a,b: %v", err)
	}
	second, err := c.Composite(newBlank(300, 300), &annotation.Spec{Items: []annotation.Item{b, a}})
	if err != nil {
		t.Fatalf("composite b,a: %v", err)
	}
	if !pixelsEqual(first, second) {
		t.Fatalf("non-overlapping items should compose order-independently")
	}
}

func TestComposite_BlitsScaledSignature(t *testing.T) {
	sig := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(sig, sig.Bounds(), image.NewUniform(color.RGBA{R: 200, A: 255}), image.Point{}, draw.Src)

	spec := &annotation.Spec{}
	spec.Add(&annotation.ImageItem{Path: "sig.png", Image: sig, At: annotation.Point{X: 20, Y: 20}, Scale: 2})

	out, err := New(fonts.NewSource()).Composite(newBlank(100, 100), spec)
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	center := out.RGBAAt(24, 24)
	if center.R < 150 || center.G > 100 {
		t.Fatalf("signature pixels not blitted, got %+v at (24,24)", center)
	}
	// 4x4 scaled by 2 covers an 8x8 box; well outside must stay white.
	outside := out.RGBAAt(40, 40)
	if outside.R != 255 || outside.G != 255 {
		t.Fatalf("pixel outside scaled signature changed: %+v", outside)
	}
}

func TestComposite_ImageItemWithoutPixelsFails(t *testing.T) {
	spec := &annotation.Spec{}
	spec.Add(&annotation.ImageItem{Path: "sig.png", At: annotation.Point{X: 1, Y: 1}})
	_, err := New(fonts.NewSource()).Composite(newBlank(10, 10), spec)
	var assetErr *annotation.AssetLoadError
	if !errors.As(err, &assetErr) {
		t.Fatalf("error = %v, want *AssetLoadError", err)
	}
}

func TestComposite_CitationBlockAdvancesLines(t *testing.T) {
	spec := &annotation.Spec{}
	spec.Add(&annotation.CitationBlock{
		Lines:    []string{"Tendered per UCC 3-603(b).", "Without Prejudice, UCC 1-308."},
		At:       annotation.Point{X: 10, Y: 10},
		FontSize: 20,
	})
	out, err := New(fonts.NewSource()).Composite(newBlank(400, 120), spec)
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	if !anyInkIn(out, 10, 10, 380, 34) {
		t.Fatalf("first citation line not rendered")
	}
	// Second line starts one advance (20 * 1.25 = 25) below the first.
	if !anyInkIn(out, 10, 35, 380, 60) {
		t.Fatalf("second citation line not rendered below the first")
	}
}
