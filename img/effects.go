package img

import (
	"fmt"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Tinted returns a new surface with every pixel recolored to the given hex
// color ("#rrggbb"), keeping the original alpha channel. This is how
// symbolic shell icons pick up the active theme color.
func (s *Surface) Tinted(hex string) (*Surface, error) {
	src := s.Image()
	if src == nil {
		return nil, fmt.Errorf("cannot tint a released surface")
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid tint color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()

	out := imaging.Clone(src)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = r
		out.Pix[i+1] = g
		out.Pix[i+2] = b
		// out.Pix[i+3] keeps the source alpha
	}
	return NewSurface(out, s.format), nil
}

// Desaturated returns a grayscale copy of the surface, the conventional
// rendering for a disabled icon.
func (s *Surface) Desaturated() (*Surface, error) {
	src := s.Image()
	if src == nil {
		return nil, fmt.Errorf("cannot desaturate a released surface")
	}
	gray := effect.Grayscale(src)
	return NewSurface(imaging.Clone(gray), s.format), nil
}
