// Package fonts provides OpenType faces for raster text rendering. A Source
// owns the parsed regular and bold fonts and hands out cached faces per size,
// falling back to the embedded Go fonts when no font file is supplied.
package fonts

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

const faceDPI = 72

type faceKey struct {
	size float64
	bold bool
}

// Source loads and caches font faces. It is not safe for concurrent use; the
// compositor is single-threaded per invocation.
type Source struct {
	regular *sfnt.Font
	bold    *sfnt.Font
	faces   map[faceKey]font.Face
}

// NewSource returns a Source backed by the embedded Go Regular and Go Bold
// fonts.
func NewSource() *Source {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		// The embedded fonts are known-good; a parse failure here is a
		// build problem, not a runtime condition.
		panic(fmt.Sprintf("fonts: parse embedded goregular: %v", err))
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		panic(fmt.Sprintf("fonts: parse embedded gobold: %v", err))
	}
	return &Source{regular: regular, bold: bold, faces: make(map[faceKey]font.Face)}
}

// Load parses a TrueType/OpenType file and uses it for regular text. Bold
// text keeps the embedded Go Bold face, matching the original tool's
// regular/bold pairing when only one font file is available.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	s := NewSource()
	s.regular = parsed
	return s, nil
}

// Face returns a hinted face for the given size, caching per (size, bold).
// Sizes at or below zero fall back to 12.
func (s *Source) Face(size float64, bold bool) (font.Face, error) {
	if size <= 0 {
		size = 12
	}
	key := faceKey{size: size, bold: bold}
	if face, ok := s.faces[key]; ok {
		return face, nil
	}
	src := s.regular
	if bold {
		src = s.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     faceDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create %gpt face: %w", size, err)
	}
	s.faces[key] = face
	return face, nil
}
