// Package img creates and manipulates paintable renderings of encoded
// images.
//
// The central type is Img, a handle over one immutable encoded payload with
// three mutable attributes: width and height in pixels and theta, a
// counter-clockwise rotation in degrees. The decoded surface and the
// paintable pattern are derived lazily and cached; mutating an attribute
// invalidates exactly the caches that depend on it:
//
//   - width or height: surface and pattern
//   - theta: pattern only (the surface identity survives)
//
// Each cache is a two-state machine, absent or cached. A failed build leaves
// the cache absent and returns the error; there is no error state.
//
// The natural (intrinsic) size is memoized forever once computed and costs
// exactly one decode no matter how often it is read.
//
// # Resource Management
//
// A decoded Surface is released deterministically: replacing a cached
// surface releases the old one first, and Close releases everything the
// handle still holds. There is no finalizer; callers that bypass the handle
// must call Release themselves.
//
// # Concurrency
//
// Handles are not safe for concurrent mutation. Callers sharing a handle
// across goroutines must serialize access.
package img
