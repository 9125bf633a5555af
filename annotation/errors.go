package annotation

import "fmt"

// DocumentLoadError reports a source document that could not be read or
// decoded.
type DocumentLoadError struct {
	Path string
	Err  error
}

func (e *DocumentLoadError) Error() string {
	return fmt.Sprintf("load document %s: %v", e.Path, e.Err)
}

func (e *DocumentLoadError) Unwrap() error { return e.Err }

// AssetLoadError reports a referenced asset, such as a signature image, that
// could not be read or decoded.
type AssetLoadError struct {
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("load asset %s: %v", e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error { return e.Err }

// OutOfBoundsError reports an item whose position falls outside the document.
type OutOfBoundsError struct {
	Item   string
	At     Point
	Bounds Bounds
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s at (%g, %g) outside document bounds %gx%g",
		e.Item, e.At.X, e.At.Y, e.Bounds.Width, e.Bounds.Height)
}

// WriteError reports a destination that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write output %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
