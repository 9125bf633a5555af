// Package ocr defines the OCR provider contract used for match-driven
// annotation placement. The default engine is a no-op; importing the
// tesseract subpackage installs a gosseract-backed engine.
package ocr

import "context"

// Region describes a rectangular area in pixel coordinates with the origin in
// the upper-left corner of the image.
type Region struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IsEmpty reports whether the region has non-positive dimensions.
func (r Region) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Input encapsulates a single document image submitted for OCR.
type Input struct {
	// Image is the encoded image payload (PNG or JPEG).
	Image []byte
	// Languages is a list of trained-data hints (e.g., "eng", "deu").
	Languages []string
	// DPI carries the effective dots-per-inch; zero means unknown.
	DPI int
}

// InputOption mutates an OCR input.
type InputOption func(*Input)

// WithLanguages sets language hints on the OCR input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithDPI overrides the DPI value on the OCR input.
func WithDPI(dpi int) InputOption {
	return func(in *Input) { in.DPI = dpi }
}

// NewInput builds an Input for an encoded image.
func NewInput(image []byte, opts ...InputOption) Input {
	in := Input{Image: image}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// Word represents a single recognized token.
type Word struct {
	Text       string
	Bounds     Region
	Confidence float64
}

// Result captures OCR output for a single input image.
type Result struct {
	// PlainText contains the linearized text extracted from the image.
	PlainText string
	// Words carries the recognized tokens with positional metadata.
	Words []Word
}

// Engine is the OCR provider contract: one image in, one result out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}

var defaultEngine Engine = noopEngine{}

// DefaultEngine returns the process-wide OCR engine.
func DefaultEngine() Engine { return defaultEngine }

// SetDefaultEngine sets the process-wide OCR engine.
func SetDefaultEngine(engine Engine) { defaultEngine = engine }

type noopEngine struct{}

func (noopEngine) Name() string { return "noop" }

func (noopEngine) Recognize(ctx context.Context, input Input) (Result, error) {
	return Result{}, nil
}
