package ocr

import "strings"

// Locate returns the regions of words whose text contains target,
// case-insensitively. Matches are returned in recognition order, which for
// Tesseract follows reading order, so the first region is the topmost
// occurrence on typical documents.
func Locate(res Result, target string) []Region {
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		return nil
	}
	var regions []Region
	for _, w := range res.Words {
		if strings.Contains(strings.ToLower(w.Text), target) {
			regions = append(regions, w.Bounds)
		}
	}
	return regions
}
