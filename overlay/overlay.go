// Package overlay implements the PDF backend of the annotation compositor.
// Annotations are drawn onto a transparent single-page overlay PDF sized to
// the source page, which is then stamped onto the source document.
package overlay

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/go-pdf/fpdf"

	"github.com/mrnam205/autotender/annotation"
)

// Core PDF fonts carry their baseline roughly 80% down from the top of the em
// box; items anchor at the top-left corner like the raster backend.
const baselineRatio = 0.8

const defaultFontFamily = "Helvetica"

// Build renders the spec onto a fresh overlay page of the given size and
// returns the encoded PDF. Coordinates are PDF points with a top-left origin,
// matching fpdf's coordinate system.
func Build(page annotation.Bounds, spec *annotation.Spec) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, item := range spec.Items {
		var err error
		switch it := item.(type) {
		case *annotation.TextItem:
			drawText(pdf, tr, it.Content, it.At, it.FontSize, it.Color, it.Bold)
		case *annotation.ImageItem:
			err = drawImage(pdf, it, fmt.Sprintf("asset-%d", i))
		case *annotation.CitationBlock:
			drawCitation(pdf, tr, it)
		}
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode overlay pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawText(pdf *fpdf.Fpdf, tr func(string) string, content string, at annotation.Point, size float64, col annotation.Color, bold bool) {
	if content == "" {
		return
	}
	if size <= 0 {
		size = 12
	}
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont(defaultFontFamily, style, size)
	pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
	pdf.Text(at.X, at.Y+size*baselineRatio, tr(content))
}

func drawImage(pdf *fpdf.Fpdf, it *annotation.ImageItem, name string) error {
	if it.Image == nil {
		return &annotation.AssetLoadError{Path: it.Path, Err: fmt.Errorf("image not decoded")}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, it.Image); err != nil {
		return &annotation.AssetLoadError{Path: it.Path, Err: err}
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, &buf)

	scale := it.EffectiveScale()
	b := it.Image.Bounds()
	w := float64(b.Dx()) * scale
	h := float64(b.Dy()) * scale
	pdf.ImageOptions(name, it.At.X, it.At.Y, w, h, false, opts, 0, "")
	return nil
}

func drawCitation(pdf *fpdf.Fpdf, tr func(string) string, it *annotation.CitationBlock) {
	size := it.FontSize
	if size <= 0 {
		size = 12
	}
	advance := size * it.EffectiveLineSpacing()
	at := it.At
	for _, line := range it.Lines {
		drawText(pdf, tr, line, at, size, it.Color, false)
		at.Y += advance
	}
}
