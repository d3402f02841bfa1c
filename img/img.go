package img

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/barshell/iconkit/pattern"
)

// Size is an image size in pixels.
type Size struct {
	Width  int
	Height int
}

// Img is a handle over one encoded image. It lazily derives a decoded
// surface and a paintable pattern from its current width, height and theta,
// re-deriving only what a mutation invalidates.
//
// The pattern is first stretched to width x height, then rotated theta
// degrees counter-clockwise about its own center.
type Img struct {
	// Name is a display name, typically the file stem the handle was loaded
	// from. It does not participate in equality.
	Name string

	// Path is the origin file path, if any. It does not participate in
	// equality.
	Path string

	data   []byte
	decode DecodeFunc

	// 0 means unset; the natural dimension applies.
	width  int
	height int
	theta  float64

	naturalSurface *Surface
	naturalSize    *Size

	surface *Surface
	pat     *pattern.Pattern
}

// Option configures a handle at construction time.
type Option func(*Img)

// WithName sets the handle's display name.
func WithName(name string) Option {
	return func(im *Img) { im.Name = name }
}

// WithPath records the handle's origin path.
func WithPath(path string) Option {
	return func(im *Img) { im.Path = path }
}

// WithDecoder replaces the default decoder.
func WithDecoder(fn DecodeFunc) Option {
	return func(im *Img) { im.decode = fn }
}

// New creates a handle over encoded image bytes. The bytes are not decoded
// until a derived value is first read.
func New(data []byte, opts ...Option) *Img {
	im := &Img{data: data, decode: Decode}
	for _, opt := range opts {
		opt(im)
	}
	if im.decode == nil {
		im.decode = Decode
	}
	return im
}

// FromPath creates a handle by reading the whole file at path. The handle's
// Name is the file name minus its final extension.
func FromPath(path string, opts ...Option) (*Img, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return New(data, append([]Option{WithName(name), WithPath(path)}, opts...)...), nil
}

// Bytes returns the encoded payload. Callers must not modify it.
func (im *Img) Bytes() []byte { return im.data }

// NaturalSize returns the intrinsic size from decoding without a target
// size. It is computed at most once per handle and never invalidated.
func (im *Img) NaturalSize() (Size, error) {
	if im.naturalSize != nil {
		return *im.naturalSize, nil
	}
	surf, err := im.naturalSurfaceOnce()
	if err != nil {
		return Size{}, err
	}
	sz := Size{Width: surf.Width(), Height: surf.Height()}
	im.naturalSize = &sz
	return sz, nil
}

// naturalSurfaceOnce decodes the bytes at their natural size exactly once.
func (im *Img) naturalSurfaceOnce() (*Surface, error) {
	if im.naturalSurface != nil {
		return im.naturalSurface, nil
	}
	surf, err := im.decode(im.data, 0, 0)
	if err != nil {
		return nil, err
	}
	im.naturalSurface = surf
	return surf, nil
}

// Width returns the handle's width, defaulting to the natural width when it
// has never been set.
func (im *Img) Width() (int, error) {
	if im.width != 0 {
		return im.width, nil
	}
	sz, err := im.NaturalSize()
	if err != nil {
		return 0, err
	}
	return sz.Width, nil
}

// Height returns the handle's height, defaulting to the natural height when
// it has never been set.
func (im *Img) Height() (int, error) {
	if im.height != 0 {
		return im.height, nil
	}
	sz, err := im.NaturalSize()
	if err != nil {
		return 0, err
	}
	return sz.Height, nil
}

// Theta returns the rotation in degrees counter-clockwise.
func (im *Img) Theta() float64 { return im.theta }

// SetWidth sets the width in pixels, rounding to the nearest integer with a
// floor of 1, and invalidates the cached surface and pattern.
func (im *Img) SetWidth(w float64) {
	im.width = clampPixel(w)
	im.invalidate(invalidateSurface | invalidatePattern)
}

// SetHeight sets the height in pixels, rounding to the nearest integer with
// a floor of 1, and invalidates the cached surface and pattern.
func (im *Img) SetHeight(h float64) {
	im.height = clampPixel(h)
	im.invalidate(invalidateSurface | invalidatePattern)
}

// SetTheta sets the rotation in degrees counter-clockwise and invalidates
// the cached pattern. The cached surface survives.
func (im *Img) SetTheta(theta float64) {
	im.theta = theta
	im.invalidate(invalidatePattern)
}

func clampPixel(v float64) int {
	px := int(math.Round(v))
	if px < 1 {
		px = 1
	}
	return px
}

// Cache invalidation edges: width and height reach both derived caches,
// theta reaches only the pattern.
const (
	invalidateSurface = 1 << iota
	invalidatePattern
)

func (im *Img) invalidate(fields int) {
	if fields&invalidateSurface != 0 && im.surface != nil {
		im.surface.Release()
		im.surface = nil
	}
	if fields&invalidatePattern != 0 {
		// Patterns hold no external resource; dropping the reference is
		// enough.
		im.pat = nil
	}
}

// DropSurface releases and forgets the cached surface without touching the
// handle's attributes. The dependent pattern is dropped with it.
func (im *Img) DropSurface() {
	im.invalidate(invalidateSurface | invalidatePattern)
}

// DropPattern forgets the cached pattern. The surface survives.
func (im *Img) DropPattern() {
	im.invalidate(invalidatePattern)
}

// Resize sets the handle's size to the given absolute pixel values. Exactly
// one of width, height selects an aspect-locked resize; both select an
// independent resize; a zero value means unset. Supplying neither is an
// error.
func (im *Img) Resize(width, height float64) error {
	if width == 0 && height == 0 {
		return fmt.Errorf("resize requires a width or a height")
	}
	sz, err := im.NaturalSize()
	if err != nil {
		return err
	}
	var widthFactor, heightFactor float64
	if width != 0 {
		widthFactor = width / float64(sz.Width)
	}
	if height != 0 {
		heightFactor = height / float64(sz.Height)
	}
	if width != 0 && height != 0 {
		return im.Scale(widthFactor, heightFactor, false)
	}
	return im.Scale(widthFactor, heightFactor, true)
}

// Scale multiplies the natural size by the given factors and stores the
// result through SetWidth and SetHeight. A zero factor means unset.
//
// With lockAspect, exactly one factor must be given; the other dimension is
// derived from the natural aspect ratio. Without it, unset factors default
// to 1 and the dimensions scale independently. Supplying neither factor is
// an error.
func (im *Img) Scale(widthFactor, heightFactor float64, lockAspect bool) error {
	if widthFactor == 0 && heightFactor == 0 {
		return fmt.Errorf("scale requires a width factor or a height factor")
	}
	sz, err := im.NaturalSize()
	if err != nil {
		return err
	}
	w0, h0 := float64(sz.Width), float64(sz.Height)

	var w, h float64
	if lockAspect {
		if widthFactor != 0 && heightFactor != 0 {
			return fmt.Errorf("cannot scale with a locked aspect ratio and both factors (%v, %v)", widthFactor, heightFactor)
		}
		if widthFactor != 0 {
			w = w0 * widthFactor
			h = h0 / w0 * w
		} else {
			h = h0 * heightFactor
			w = w0 / h0 * h
		}
	} else {
		if widthFactor == 0 {
			widthFactor = 1
		}
		if heightFactor == 0 {
			heightFactor = 1
		}
		w = w0 * widthFactor
		h = h0 * heightFactor
	}

	im.SetWidth(w)
	im.SetHeight(h)
	return nil
}

// Surface returns the decoded surface at the handle's current size, decoding
// on first read and caching until the size changes.
//
// The decoder is asked for the target size so it can resample at native
// resolution. If it rejects the sized request, Surface logs a warning,
// retries once at the natural size and uses that result; the pattern's
// transform absorbs the scaling instead.
func (im *Img) Surface() (*Surface, error) {
	if im.surface != nil {
		return im.surface, nil
	}
	w, err := im.Width()
	if err != nil {
		return nil, err
	}
	h, err := im.Height()
	if err != nil {
		return nil, err
	}

	surf, err := im.decode(im.data, w, h)
	if err != nil {
		log.Warn().Err(err).Str("name", im.Name).Int("width", w).Int("height", h).
			Msg("decoder rejected sized request, falling back to natural size")
		surf, err = im.decode(im.data, 0, 0)
		if err != nil {
			return nil, err
		}
	}
	im.surface = surf
	return surf, nil
}

// Pattern returns the paintable pattern for the handle's current width,
// height and theta, building it on first read and caching until
// invalidated.
func (im *Img) Pattern() (*pattern.Pattern, error) {
	if im.pat != nil {
		return im.pat, nil
	}
	surf, err := im.Surface()
	if err != nil {
		return nil, err
	}
	w, err := im.Width()
	if err != nil {
		return nil, err
	}
	h, err := im.Height()
	if err != nil {
		return nil, err
	}
	pat, err := pattern.Build(surf, w, h, im.theta)
	if err != nil {
		return nil, err
	}
	im.pat = pat
	return pat, nil
}

// Equal reports whether two handles render identically: same bytes, theta
// and effective width and height. Name and Path are ignored.
func (im *Img) Equal(other *Img) bool {
	if other == nil {
		return false
	}
	if im.theta != other.theta {
		return false
	}
	if !bytes.Equal(im.data, other.data) {
		return false
	}
	w1, err1 := im.Width()
	w2, err2 := other.Width()
	h1, err3 := im.Height()
	h2, err4 := other.Height()
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		// Undecodable payloads compare on the explicitly set values.
		return im.width == other.width && im.height == other.height
	}
	return w1 == w2 && h1 == h2
}

// Close releases every decoded surface the handle holds and drops the cached
// pattern. The handle must not be used afterwards.
func (im *Img) Close() {
	im.invalidate(invalidateSurface | invalidatePattern)
	if im.naturalSurface != nil {
		im.naturalSurface.Release()
		im.naturalSurface = nil
	}
}

// String describes the handle for logs.
func (im *Img) String() string {
	return fmt.Sprintf("<Img: %q, %dx%d@%.1fdeg, %q>", im.Name, im.width, im.height, im.theta, im.Path)
}
