// Package compositor orchestrates coupon annotation: it loads a source
// document, resolves item placement, validates bounds and hands the spec to
// the raster or PDF backend. One call composites one document; no output file
// exists unless the whole operation succeeds.
package compositor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrnam205/autotender/annotation"
	"github.com/mrnam205/autotender/fonts"
	"github.com/mrnam205/autotender/observability"
	"github.com/mrnam205/autotender/ocr"
	"github.com/mrnam205/autotender/overlay"
	"github.com/mrnam205/autotender/raster"
)

// Option configures a Compositor.
type Option func(*Compositor)

// WithFonts sets the font source used by the raster backend.
func WithFonts(src *fonts.Source) Option {
	return func(c *Compositor) { c.fonts = src }
}

// WithOCR enables match-driven placement using the given engine and language
// hints.
func WithOCR(engine ocr.Engine, langs ...string) Option {
	return func(c *Compositor) {
		c.engine = engine
		c.langs = append([]string(nil), langs...)
	}
}

// WithLogger sets the logger; the default is a no-op.
func WithLogger(l observability.Logger) Option {
	return func(c *Compositor) { c.log = l }
}

// Compositor applies an annotation spec to a document. Zero-value options
// yield a compositor with embedded fonts, no OCR and silent logging.
type Compositor struct {
	fonts  *fonts.Source
	engine ocr.Engine
	langs  []string
	log    observability.Logger
}

// New constructs a Compositor.
func New(opts ...Option) *Compositor {
	c := &Compositor{
		fonts: fonts.NewSource(),
		log:   observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AnnotateFile composites the spec onto the document at srcPath and writes
// the result to dstPath. The backend is chosen by the source extension.
// Exactly one file is written on success; on any failure no output exists.
func (c *Compositor) AnnotateFile(ctx context.Context, srcPath, dstPath string, spec *annotation.Spec) error {
	ext := strings.ToLower(filepath.Ext(srcPath))
	switch {
	case ext == ".pdf":
		return c.annotatePDF(ctx, srcPath, dstPath, spec)
	case raster.SupportedInput(ext):
		return c.annotateRaster(ctx, srcPath, dstPath, spec)
	default:
		return &annotation.DocumentLoadError{
			Path: srcPath,
			Err:  fmt.Errorf("unsupported document format %q", ext),
		}
	}
}

func (c *Compositor) annotateRaster(ctx context.Context, srcPath, dstPath string, spec *annotation.Spec) error {
	img, err := raster.Load(srcPath)
	if err != nil {
		return err
	}
	if err := loadAssets(spec); err != nil {
		return err
	}
	resolved, err := c.resolvePlacement(ctx, srcPath, spec, true)
	if err != nil {
		return err
	}
	bounds := annotation.Bounds{
		Width:  float64(img.Bounds().Dx()),
		Height: float64(img.Bounds().Dy()),
	}
	if err := resolved.ValidateBounds(bounds); err != nil {
		return err
	}

	surface, err := raster.New(c.fonts).Composite(img, resolved)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := raster.Encode(&buf, surface, dstPath); err != nil {
		return &annotation.WriteError{Path: dstPath, Err: err}
	}
	if err := writeAtomic(dstPath, buf.Bytes()); err != nil {
		return err
	}
	c.log.Info("annotated raster document",
		observability.String("source", srcPath),
		observability.String("output", dstPath),
		observability.Int("items", len(resolved.Items)))
	return nil
}

func (c *Compositor) annotatePDF(ctx context.Context, srcPath, dstPath string, spec *annotation.Spec) error {
	dims, err := overlay.PageDimensions(srcPath)
	if err != nil {
		return err
	}
	if len(dims) == 0 {
		return &annotation.DocumentLoadError{Path: srcPath, Err: fmt.Errorf("document has no pages")}
	}
	if err := loadAssets(spec); err != nil {
		return err
	}
	// Match-driven placement needs page raster data, which the PDF path does
	// not produce; items keep their explicit positions.
	resolved, err := c.resolvePlacement(ctx, srcPath, spec, false)
	if err != nil {
		return err
	}
	page := dims[0]
	if err := resolved.ValidateBounds(page); err != nil {
		return err
	}

	overlayPDF, err := overlay.Build(page, resolved)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dstPath), ".autotender-*.pdf")
	if err != nil {
		return &annotation.WriteError{Path: dstPath, Err: err}
	}
	tmpPath := tmp.Name()
	tmp.Close()
	if err := overlay.Stamp(srcPath, tmpPath, overlayPDF, []string{"1"}); err != nil {
		os.Remove(tmpPath)
		return &annotation.WriteError{Path: dstPath, Err: err}
	}
	if err := os.Rename(tmpPath, dstPath); err != nil {
		os.Remove(tmpPath)
		return &annotation.WriteError{Path: dstPath, Err: err}
	}
	c.log.Info("annotated pdf document",
		observability.String("source", srcPath),
		observability.String("output", dstPath),
		observability.Int("items", len(resolved.Items)),
		observability.Float64("page_width", page.Width),
		observability.Float64("page_height", page.Height))
	return nil
}

// loadAssets decodes every image item that still carries only a path.
func loadAssets(spec *annotation.Spec) error {
	for _, item := range spec.Items {
		it, ok := item.(*annotation.ImageItem)
		if !ok || it.Image != nil {
			continue
		}
		if it.Path == "" {
			return &annotation.AssetLoadError{Path: "", Err: fmt.Errorf("image item has neither path nor pixels")}
		}
		img, err := raster.LoadAsset(it.Path)
		if err != nil {
			return err
		}
		it.Image = img
	}
	return nil
}

// writeAtomic stages the output next to its destination and renames it into
// place, so a failed write never leaves a partial file at dstPath.
func writeAtomic(dstPath string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(dstPath), ".autotender-*")
	if err != nil {
		return &annotation.WriteError{Path: dstPath, Err: err}
	}
	tmpPath := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return &annotation.WriteError{Path: dstPath, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return &annotation.WriteError{Path: dstPath, Err: err}
	}
	if err := os.Rename(tmpPath, dstPath); err != nil {
		os.Remove(tmpPath)
		return &annotation.WriteError{Path: dstPath, Err: err}
	}
	return nil
}
