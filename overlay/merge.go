package overlay

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/mrnam205/autotender/annotation"
)

// stampDesc pins the overlay page to the source page: bottom-left anchored at
// its natural size, so overlay coordinates line up 1:1 with page coordinates.
const stampDesc = "pos:bl, scale:1.0 abs, rot:0"

// PageDimensions returns the media box size of every page in points.
// Failures are reported as *annotation.DocumentLoadError.
func PageDimensions(path string) ([]annotation.Bounds, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, &annotation.DocumentLoadError{Path: path, Err: err}
	}
	dims, err := ctx.PageDims()
	if err != nil {
		return nil, &annotation.DocumentLoadError{Path: path, Err: err}
	}
	out := make([]annotation.Bounds, len(dims))
	for i, d := range dims {
		out[i] = annotation.Bounds{Width: d.Width, Height: d.Height}
	}
	return out, nil
}

// Stamp merges the overlay PDF on top of the selected pages of the source
// document and writes the combined document to outPath.
func Stamp(srcPath, outPath string, overlayPDF []byte, pages []string) error {
	tmp, err := os.CreateTemp("", "autotender-overlay-*.pdf")
	if err != nil {
		return fmt.Errorf("stage overlay: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(overlayPDF); err != nil {
		tmp.Close()
		return fmt.Errorf("stage overlay: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("stage overlay: %w", err)
	}

	wm, err := api.PDFWatermark(tmp.Name(), stampDesc, true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("configure stamp: %w", err)
	}
	if err := api.AddWatermarksFile(srcPath, outPath, pages, wm, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("stamp overlay: %w", err)
	}
	return nil
}
