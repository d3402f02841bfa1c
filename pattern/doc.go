// Package pattern builds paintable patterns from decoded image surfaces.
//
// A Pattern pairs a pixel source with an affine Matrix that maps device
// (target) coordinates back into the source's coordinate space, the same
// convention cairo uses for surface patterns. The matrix is composed from a
// target size and a rotation angle: the source is first stretched to the
// target size, then rotated counter-clockwise about the resized image's own
// center. That order is fixed; swapping it changes the result whenever the
// two scale factors differ.
//
// # Coordinate System
//
// (0,0) is the top-left corner, X increases rightward, Y increases downward.
// Angles are in degrees, counter-clockwise on screen. Rotations below 1e-6
// degrees are treated as zero so that an unrotated pattern's matrix is the
// pure scale matrix.
//
// # Rendering
//
// Consumers normally hand the matrix to an external paint backend and treat
// the Pattern as read-only. Rasterize provides a software fallback that
// resamples the source through the composed transform using
// golang.org/x/image/draw; the Filter setting selects the resampling kernel.
package pattern
