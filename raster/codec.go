// Package raster implements the image backend of the annotation compositor:
// decoding common raster formats, drawing annotation items onto an RGBA
// surface and encoding the result.
package raster

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/mrnam205/autotender/annotation"
)

const jpegQuality = 95

// SupportedInput reports whether ext (including the leading dot) names a
// raster format the loader can decode.
func SupportedInput(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return true
	}
	return false
}

// Load reads and decodes a raster document. Failures are reported as
// *annotation.DocumentLoadError.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &annotation.DocumentLoadError{Path: path, Err: err}
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &annotation.DocumentLoadError{Path: path, Err: err}
	}
	return img, nil
}

// LoadAsset decodes a referenced asset such as a signature image. Failures
// are reported as *annotation.AssetLoadError.
func LoadAsset(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &annotation.AssetLoadError{Path: path, Err: err}
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &annotation.AssetLoadError{Path: path, Err: err}
	}
	return img, nil
}

// Encode writes img to w in the format implied by the destination path's
// extension. WebP is decode-only and deliberately absent.
func Encode(w io.Writer, img image.Image, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}
