package compositor

import (
	"context"
	"fmt"
	"os"

	"github.com/mrnam205/autotender/annotation"
	"github.com/mrnam205/autotender/observability"
	"github.com/mrnam205/autotender/ocr"
)

// resolvePlacement returns a copy of the spec with match-driven text items
// re-anchored to the first OCR hit for their target string. Items without a
// match hint, and every item when OCR is unavailable, keep their explicit
// positions. The caller's spec is never mutated.
func (c *Compositor) resolvePlacement(ctx context.Context, srcPath string, spec *annotation.Spec, ocrCapable bool) (*annotation.Spec, error) {
	out := &annotation.Spec{Items: make([]annotation.Item, 0, len(spec.Items))}

	var result *ocr.Result
	recognize := func() (*ocr.Result, error) {
		if result != nil {
			return result, nil
		}
		data, err := os.ReadFile(srcPath)
		if err != nil {
			return nil, &annotation.DocumentLoadError{Path: srcPath, Err: err}
		}
		res, err := c.engine.Recognize(ctx, ocr.NewInput(data, ocr.WithLanguages(c.langs...)))
		if err != nil {
			return nil, fmt.Errorf("ocr %s: %w", srcPath, err)
		}
		result = &res
		return result, nil
	}

	for _, item := range spec.Items {
		it, ok := item.(*annotation.TextItem)
		if !ok || it.Match == "" {
			out.Items = append(out.Items, item)
			continue
		}
		resolved := *it
		switch {
		case c.engine == nil:
			c.log.Debug("no ocr engine configured, using explicit position",
				observability.String("match", it.Match))
		case !ocrCapable:
			c.log.Warn("match placement unavailable for this document type, using explicit position",
				observability.String("match", it.Match))
		default:
			res, err := recognize()
			if err != nil {
				return nil, err
			}
			regions := ocr.Locate(*res, it.Match)
			if len(regions) == 0 {
				c.log.Warn("match not found, using explicit position",
					observability.String("match", it.Match))
				break
			}
			resolved.At = annotation.Point{
				X: regions[0].X + it.OffsetX,
				Y: regions[0].Y + it.OffsetY,
			}
			c.log.Debug("resolved match placement",
				observability.String("match", it.Match),
				observability.Float64("x", resolved.At.X),
				observability.Float64("y", resolved.At.Y))
		}
		out.Items = append(out.Items, &resolved)
	}
	return out, nil
}
