package img

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Surface is a decoded bitmap owned by exactly one handle at a time. It must
// be released once it is no longer needed; using a released surface is an
// error at the point of use.
type Surface struct {
	nrgba    *image.NRGBA
	format   string
	released bool
}

// NewSurface wraps a decoded image. The surface takes ownership of pix.
func NewSurface(pix *image.NRGBA, format string) *Surface {
	return &Surface{nrgba: pix, format: format}
}

// Width returns the surface width in pixels, or 0 if released.
func (s *Surface) Width() int {
	if s.nrgba == nil {
		return 0
	}
	return s.nrgba.Bounds().Dx()
}

// Height returns the surface height in pixels, or 0 if released.
func (s *Surface) Height() int {
	if s.nrgba == nil {
		return 0
	}
	return s.nrgba.Bounds().Dy()
}

// Format is the detected encoding of the bytes this surface was decoded
// from, e.g. "png".
func (s *Surface) Format() string { return s.format }

// Image returns the decoded pixels, or nil if the surface has been released.
func (s *Surface) Image() *image.NRGBA { return s.nrgba }

// Release frees the decoded pixels. Safe to call more than once.
func (s *Surface) Release() {
	s.nrgba = nil
	s.released = true
}

// Released reports whether Release has been called.
func (s *Surface) Released() bool { return s.released }

// DecodeFunc is the decoder boundary: it turns encoded bytes into a decoded
// surface. A width or height of 0 requests the natural size; when only one
// dimension is 0 the decoder preserves the aspect ratio. A decoder may
// reject a sized request with an error; callers fall back to an unsized
// decode.
type DecodeFunc func(data []byte, width, height int) (*Surface, error)

// Decode is the default decoder. It understands PNG, JPEG, GIF, BMP, TIFF
// and WebP, and resamples to the requested size with a Lanczos kernel.
func Decode(data []byte, width, height int) (*Surface, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var pix *image.NRGBA
	if width > 0 || height > 0 {
		pix = imaging.Resize(src, width, height, imaging.Lanczos)
	} else {
		pix = imaging.Clone(src)
	}
	return NewSurface(pix, format), nil
}
