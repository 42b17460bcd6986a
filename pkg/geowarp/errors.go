package geowarp

import (
	"fmt"
)

// ConfigurationError indicates an unknown satellite identifier or chart
// source. The fixed-grid constants cannot be discovered from the image
// itself, so every satellite must have a hard-coded table entry.
type ConfigurationError struct {
	Kind string // "satellite" or "chart source"
	Name string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown %s %q: no projection constants on record", e.Kind, e.Name)
}

// AlignmentError indicates that the satellite frame and chart overlay
// disagree on pixel dimensions or bounding box at composite time. No
// implicit resampling is performed; any resampling must already have
// happened upstream.
type AlignmentError struct {
	BaseWidth, BaseHeight       int
	OverlayWidth, OverlayHeight int
	BaseBox, OverlayBox         BoundingBox
}

func (e *AlignmentError) Error() string {
	if e.BaseWidth != e.OverlayWidth || e.BaseHeight != e.OverlayHeight {
		return fmt.Sprintf("composite inputs disagree on dimensions: base %dx%d, overlay %dx%d",
			e.BaseWidth, e.BaseHeight, e.OverlayWidth, e.OverlayHeight)
	}
	return fmt.Sprintf("composite inputs disagree on bounding box: base %s, overlay %s",
		e.BaseBox, e.OverlayBox)
}
