package pattern

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Rasterize resamples the source through the pattern's transform into a new
// target-sized image. It is a software stand-in for an external paint
// backend; the backend and Rasterize consume the same matrix.
func (p *Pattern) Rasterize() (*image.NRGBA, error) {
	src := p.src.Image()
	if src == nil {
		return nil, fmt.Errorf("pattern: source surface has been released")
	}

	// The pattern matrix maps device points into the source; x/image/draw
	// wants the source-to-device direction.
	fwd, err := p.matrix.Invert()
	if err != nil {
		return nil, fmt.Errorf("pattern: degenerate transform: %w", err)
	}

	var scaler draw.Transformer
	switch p.filter {
	case FilterFast:
		scaler = draw.NearestNeighbor
	case FilterGood:
		scaler = draw.ApproxBiLinear
	default:
		scaler = draw.CatmullRom
	}

	dst := image.NewNRGBA(image.Rect(0, 0, p.targetW, p.targetH))
	aff := f64.Aff3{fwd.XX, fwd.XY, fwd.X0, fwd.YX, fwd.YY, fwd.Y0}
	scaler.Transform(dst, aff, src, src.Bounds(), draw.Over, nil)
	return dst, nil
}
