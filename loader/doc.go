// Package loader resolves symbolic image names to files across a
// priority-ordered list of directories and creates img handles for them.
//
// A name with an extension must match a file verbatim; a bare name matches
// any extension. The first directory, in priority order, holding any
// candidate for a name wins, and its lexically first candidate is loaded;
// later directories are never consulted for that name. A batch either
// resolves completely or fails with a *ResolutionError listing every
// unmatched query.
package loader
