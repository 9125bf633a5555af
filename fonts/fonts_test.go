package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestNewSource_FaceCachesPerSizeAndWeight(t *testing.T) {
	s := NewSource()
	regular, err := s.Face(24, false)
	if err != nil {
		t.Fatalf("regular face: %v", err)
	}
	again, err := s.Face(24, false)
	if err != nil {
		t.Fatalf("regular face again: %v", err)
	}
	if regular != again {
		t.Fatalf("expected cached face to be reused")
	}
	bold, err := s.Face(24, true)
	if err != nil {
		t.Fatalf("bold face: %v", err)
	}
	if bold == regular {
		t.Fatalf("bold and regular should be distinct faces")
	}
	if regular.Metrics().Ascent <= 0 {
		t.Fatalf("face metrics missing ascent")
	}
}

func TestFace_DefaultsNonPositiveSize(t *testing.T) {
	s := NewSource()
	face, err := s.Face(0, false)
	if err != nil {
		t.Fatalf("zero-size face: %v", err)
	}
	twelve, err := s.Face(12, false)
	if err != nil {
		t.Fatalf("12pt face: %v", err)
	}
	if face != twelve {
		t.Fatalf("size 0 should fall back to the 12pt face")
	}
}

func TestLoad(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Fatalf("expected error for missing font file")
	}

	bad := filepath.Join(t.TempDir(), "bad.ttf")
	if err := os.WriteFile(bad, []byte("not a font"), 0o644); err != nil {
		t.Fatalf("write bad font: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected error for undecodable font file")
	}

	good := filepath.Join(t.TempDir(), "good.ttf")
	if err := os.WriteFile(good, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write good font: %v", err)
	}
	s, err := Load(good)
	if err != nil {
		t.Fatalf("load font: %v", err)
	}
	if _, err := s.Face(18, false); err != nil {
		t.Fatalf("face from loaded font: %v", err)
	}
}
