package pattern

import (
	"fmt"
	"image"
)

// Filter selects the resampling kernel used when a pattern is rasterized.
// The names mirror cairo's pattern filters.
type Filter int

const (
	// FilterFast is nearest-neighbor sampling.
	FilterFast Filter = iota
	// FilterGood is bilinear interpolation.
	FilterGood
	// FilterBest is Catmull-Rom interpolation.
	FilterBest
)

// Source is a decoded pixel source a pattern can paint from.
type Source interface {
	Width() int
	Height() int
	Image() *image.NRGBA
}

// Pattern is a paintable object: a pixel source plus the affine transform
// mapping device coordinates back into the source. Consumers must treat it
// as read-only.
type Pattern struct {
	src          Source
	matrix       Matrix
	filter       Filter
	targetW      int
	targetH      int
	thetaDegrees float64
}

// Build constructs a pattern painting src stretched to targetW x targetH and
// rotated thetaDegrees counter-clockwise about the resized image's center.
func Build(src Source, targetW, targetH int, thetaDegrees float64) (*Pattern, error) {
	if src == nil {
		return nil, fmt.Errorf("pattern: nil source")
	}
	if src.Image() == nil {
		return nil, fmt.Errorf("pattern: source surface has been released")
	}
	if targetW < 1 || targetH < 1 {
		return nil, fmt.Errorf("pattern: invalid target size %dx%d", targetW, targetH)
	}

	m := Compose(
		float64(src.Width()), float64(src.Height()),
		float64(targetW), float64(targetH),
		thetaDegrees,
	)
	return &Pattern{
		src:          src,
		matrix:       m,
		filter:       FilterBest,
		targetW:      targetW,
		targetH:      targetH,
		thetaDegrees: thetaDegrees,
	}, nil
}

// Source returns the pattern's pixel source.
func (p *Pattern) Source() Source { return p.src }

// Matrix returns the device-to-source transform.
func (p *Pattern) Matrix() Matrix { return p.matrix }

// Theta returns the rotation in degrees the pattern was built with.
func (p *Pattern) Theta() float64 { return p.thetaDegrees }

// TargetSize returns the device-space size the pattern paints into.
func (p *Pattern) TargetSize() (int, int) { return p.targetW, p.targetH }

// Filter returns the resampling filter.
func (p *Pattern) Filter() Filter { return p.filter }

// SetFilter changes the resampling filter used by Rasterize.
func (p *Pattern) SetFilter(f Filter) { p.filter = f }
