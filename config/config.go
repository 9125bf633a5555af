// Package config loads declarative annotation files. A file lists text
// endorsements, an optional signature image and citation blocks; YAML and
// JSON are both accepted, selected by the file extension.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mrnam205/autotender/annotation"
)

const (
	defaultFontSize = 12
	defaultColor    = "black"
)

// Annotation is one text endorsement. Match switches the item to OCR-driven
// placement: the item anchors to the first occurrence of the target string
// plus the offsets, with X/Y as the fallback position.
type Annotation struct {
	Text    string  `yaml:"text" json:"text" validate:"required"`
	X       float64 `yaml:"x" json:"x" validate:"gte=0"`
	Y       float64 `yaml:"y" json:"y" validate:"gte=0"`
	Size    float64 `yaml:"size,omitempty" json:"size,omitempty" validate:"gte=0"`
	Color   string  `yaml:"color,omitempty" json:"color,omitempty"`
	Bold    bool    `yaml:"bold,omitempty" json:"bold,omitempty"`
	Match   string  `yaml:"match,omitempty" json:"match,omitempty"`
	OffsetX float64 `yaml:"offset_x,omitempty" json:"offset_x,omitempty"`
	OffsetY float64 `yaml:"offset_y,omitempty" json:"offset_y,omitempty"`
}

// Signature references the signature image asset.
type Signature struct {
	Path  string  `yaml:"path" json:"path" validate:"required"`
	X     float64 `yaml:"x" json:"x" validate:"gte=0"`
	Y     float64 `yaml:"y" json:"y" validate:"gte=0"`
	Scale float64 `yaml:"scale,omitempty" json:"scale,omitempty" validate:"gte=0"`
}

// Citation is a block of consecutive lines, typically legal citations.
type Citation struct {
	Lines       []string `yaml:"lines" json:"lines" validate:"required,min=1"`
	X           float64  `yaml:"x" json:"x" validate:"gte=0"`
	Y           float64  `yaml:"y" json:"y" validate:"gte=0"`
	Size        float64  `yaml:"size,omitempty" json:"size,omitempty" validate:"gte=0"`
	Color       string   `yaml:"color,omitempty" json:"color,omitempty"`
	LineSpacing float64  `yaml:"line_spacing,omitempty" json:"line_spacing,omitempty" validate:"gte=0"`
}

// File is the root of an annotation config document.
type File struct {
	Annotations []Annotation `yaml:"annotations" json:"annotations" validate:"dive"`
	Signature   *Signature   `yaml:"signature,omitempty" json:"signature,omitempty"`
	Citations   []Citation   `yaml:"citations,omitempty" json:"citations,omitempty" validate:"dive"`
}

// Load reads, decodes and validates an annotation config file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, filepath.Ext(path))
	}
	if len(f.Annotations) == 0 && f.Signature == nil && len(f.Citations) == 0 {
		return nil, fmt.Errorf("config %s: no annotations defined", path)
	}
	if err := validator.New().Struct(&f); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return &f, nil
}

// Spec converts the config into an ordered annotation spec: endorsements
// first, then the signature, then citation blocks, mirroring how the items
// appear in the file.
func (f *File) Spec() (*annotation.Spec, error) {
	spec := &annotation.Spec{}
	for i, a := range f.Annotations {
		col, err := parseColor(a.Color)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}
		spec.Add(&annotation.TextItem{
			Content:  a.Text,
			At:       annotation.Point{X: a.X, Y: a.Y},
			FontSize: sizeOrDefault(a.Size),
			Color:    col,
			Bold:     a.Bold,
			Match:    a.Match,
			OffsetX:  a.OffsetX,
			OffsetY:  a.OffsetY,
		})
	}
	if s := f.Signature; s != nil {
		spec.Add(&annotation.ImageItem{
			Path:  s.Path,
			At:    annotation.Point{X: s.X, Y: s.Y},
			Scale: s.Scale,
		})
	}
	for i, c := range f.Citations {
		col, err := parseColor(c.Color)
		if err != nil {
			return nil, fmt.Errorf("citation %d: %w", i, err)
		}
		spec.Add(&annotation.CitationBlock{
			Lines:       c.Lines,
			At:          annotation.Point{X: c.X, Y: c.Y},
			FontSize:    sizeOrDefault(c.Size),
			Color:       col,
			LineSpacing: c.LineSpacing,
		})
	}
	return spec, nil
}

func sizeOrDefault(size float64) float64 {
	if size <= 0 {
		return defaultFontSize
	}
	return size
}

func parseColor(s string) (annotation.Color, error) {
	if s == "" {
		s = defaultColor
	}
	return annotation.ParseColor(s)
}
