// Package annotation defines the overlay instructions applied to a remittance
// coupon: text endorsements, a signature image and multi-line citation blocks.
// A Spec is an ordered list of items; order is significant because later items
// visually overlay earlier ones wherever they share a region.
package annotation

import (
	"fmt"
	"image"
	"strings"
)

// Point locates an item on the document. The origin is the top-left corner;
// units are pixels for raster documents and PDF points for PDF pages.
type Point struct {
	X float64
	Y float64
}

// Bounds describes the drawable area of a document.
type Bounds struct {
	Width  float64
	Height float64
}

// Contains reports whether p lies within the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.Width && p.Y < b.Height
}

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Common annotation colors.
var (
	Black = Color{0, 0, 0}
	Blue  = Color{0, 0, 255}
	Red   = Color{255, 0, 0}
)

// Item is a single overlay instruction. Concrete types are TextItem,
// ImageItem and CitationBlock.
type Item interface {
	// Position returns the top-left anchor of the item.
	Position() Point
	// Describe returns a short human-readable label used in error messages.
	Describe() string
}

var (
	_ Item = (*TextItem)(nil)
	_ Item = (*ImageItem)(nil)
	_ Item = (*CitationBlock)(nil)
)

// TextItem draws a single line of text at a fixed position.
//
// When Match is non-empty and the compositor has an OCR engine configured,
// the item is re-anchored to the first occurrence of Match in the document
// plus the given offsets; At remains the fallback when no match is found.
type TextItem struct {
	Content  string
	At       Point
	FontSize float64
	Color    Color
	Bold     bool

	Match   string
	OffsetX float64
	OffsetY float64
}

func (t *TextItem) Position() Point { return t.At }

func (t *TextItem) Describe() string {
	s := t.Content
	if len(s) > 32 {
		s = s[:29] + "..."
	}
	return fmt.Sprintf("text %q", s)
}

// ImageItem blits an image, typically a scanned signature, at a position.
// Path names the asset on disk; Image holds the decoded pixels once the
// compositor has loaded the asset.
type ImageItem struct {
	Path  string
	Image image.Image
	At    Point
	Scale float64
}

func (i *ImageItem) Position() Point { return i.At }

func (i *ImageItem) Describe() string { return fmt.Sprintf("image %q", i.Path) }

// EffectiveScale returns Scale, defaulting to 1.
func (i *ImageItem) EffectiveScale() float64 {
	if i.Scale <= 0 {
		return 1
	}
	return i.Scale
}

// CitationBlock draws consecutive lines of legal citation text, advancing the
// baseline by FontSize*LineSpacing per line.
type CitationBlock struct {
	Lines       []string
	At          Point
	FontSize    float64
	Color       Color
	LineSpacing float64
}

func (c *CitationBlock) Position() Point { return c.At }

func (c *CitationBlock) Describe() string {
	if len(c.Lines) == 0 {
		return "citation block"
	}
	return fmt.Sprintf("citation block %q", c.Lines[0])
}

// EffectiveLineSpacing returns LineSpacing, defaulting to 1.25.
func (c *CitationBlock) EffectiveLineSpacing() float64 {
	if c.LineSpacing <= 0 {
		return 1.25
	}
	return c.LineSpacing
}

// Spec is the full set of overlay instructions for one document. Items are
// applied strictly in slice order.
type Spec struct {
	Items []Item
}

// Add appends items and returns the spec for chaining.
func (s *Spec) Add(items ...Item) *Spec {
	s.Items = append(s.Items, items...)
	return s
}

// Empty reports whether the spec carries no items.
func (s *Spec) Empty() bool { return len(s.Items) == 0 }

// ValidateBounds checks every item position against the document bounds and
// returns an *OutOfBoundsError for the first violation.
func (s *Spec) ValidateBounds(b Bounds) error {
	for _, item := range s.Items {
		if !b.Contains(item.Position()) {
			return &OutOfBoundsError{Item: item.Describe(), At: item.Position(), Bounds: b}
		}
	}
	return nil
}

// ParseColor interprets a color name ("black", "blue", "red", "white") or a
// "#rrggbb" hex triplet.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "black":
		return Black, nil
	case "blue":
		return Blue, nil
	case "red":
		return Red, nil
	case "white":
		return Color{255, 255, 255}, nil
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		var c Color
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err == nil {
			return c, nil
		}
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}
