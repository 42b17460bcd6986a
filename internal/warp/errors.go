package warp

import (
	"fmt"
)

// ProjectionError indicates a malformed spatial reference or an invalid warp
// request (missing source reference, non-positive resolution, inconsistent
// bounding box).
type ProjectionError struct {
	Op     string
	Reason string
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("projection error (%s): %s", e.Op, e.Reason)
}

// FormatError indicates a raster whose pixel format is outside the supported
// set, or an input that could not be decoded at all.
type FormatError struct {
	Bands  int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Bands != 0 {
		return fmt.Sprintf("format error: %s (band count %d)", e.Reason, e.Bands)
	}
	return fmt.Sprintf("format error: %s", e.Reason)
}
