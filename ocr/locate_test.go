package ocr

import "testing"

func sampleResult() Result {
	return Result{
		PlainText: "ACCOUNT TOTAL $250.00 Total Due",
		Words: []Word{
			{Text: "ACCOUNT", Bounds: Region{X: 10, Y: 10, Width: 80, Height: 20}},
			{Text: "TOTAL", Bounds: Region{X: 100, Y: 10, Width: 50, Height: 20}},
			{Text: "$250.00", Bounds: Region{X: 160, Y: 10, Width: 70, Height: 20}},
			{Text: "Total", Bounds: Region{X: 10, Y: 40, Width: 40, Height: 20}},
			{Text: "Due", Bounds: Region{X: 60, Y: 40, Width: 30, Height: 20}},
		},
	}
}

func TestLocate_MatchesCaseInsensitively(t *testing.T) {
	regions := Locate(sampleResult(), "total")
	if len(regions) != 2 {
		t.Fatalf("got %d matches, want 2", len(regions))
	}
	if regions[0].X != 100 || regions[0].Y != 10 {
		t.Fatalf("first match at (%g,%g), want (100,10)", regions[0].X, regions[0].Y)
	}
	if regions[1].Y != 40 {
		t.Fatalf("matches should preserve recognition order")
	}
}

func TestLocate_SubstringMatch(t *testing.T) {
	regions := Locate(sampleResult(), "250")
	if len(regions) != 1 {
		t.Fatalf("got %d matches, want 1", len(regions))
	}
}

func TestLocate_NoMatchOrEmptyTarget(t *testing.T) {
	if got := Locate(sampleResult(), "balance"); got != nil {
		t.Fatalf("unexpected matches: %v", got)
	}
	if got := Locate(sampleResult(), "   "); got != nil {
		t.Fatalf("blank target should match nothing")
	}
}

func TestRegion_IsEmpty(t *testing.T) {
	if (Region{X: 1, Y: 1, Width: 10, Height: 10}).IsEmpty() {
		t.Fatalf("non-degenerate region reported empty")
	}
	if !(Region{Width: 0, Height: 5}).IsEmpty() {
		t.Fatalf("zero-width region should be empty")
	}
}

func TestNewInput_Options(t *testing.T) {
	in := NewInput([]byte{1, 2}, WithLanguages("eng", "deu"), WithDPI(300))
	if len(in.Languages) != 2 || in.Languages[0] != "eng" {
		t.Fatalf("languages not applied: %v", in.Languages)
	}
	if in.DPI != 300 {
		t.Fatalf("dpi not applied: %d", in.DPI)
	}
}
