package loader

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/barshell/iconkit/img"
)

// ResolutionError reports the queries a Load call could not resolve in any
// directory. Wildcard queries keep their ".*" suffix so the message shows
// what was actually searched for.
type ResolutionError struct {
	Names []string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no images found matching the names: %s", strings.Join(e.Names, ", "))
}

// Loader creates img handles from image names, searching an ordered list of
// directories. The first directory has priority.
//
//	ldr, err := loader.New([]string{
//	    "/usr/share/icons/Adwaita/24x24",
//	    "/usr/share/icons/Adwaita",
//	})
//	icons, err := ldr.Load("audio-volume-muted", "audio-volume-low")
type Loader struct {
	dirs    []string
	exts    []string
	scanner Scanner
	cache   *FileCache
}

// Option configures a Loader. Options form the closed set of recognized
// configuration; invalid values fail New.
type Option func(*Loader) error

// WithScanner replaces the default directory scanner.
func WithScanner(s Scanner) Option {
	return func(l *Loader) error {
		if s == nil {
			return fmt.Errorf("loader: nil scanner")
		}
		l.scanner = s
		return nil
	}
}

// WithExtensions restricts wildcard matches to the given extensions, each
// with a leading dot, e.g. ".png". Exact-name queries are unaffected.
func WithExtensions(exts ...string) Option {
	return func(l *Loader) error {
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
				return fmt.Errorf("loader: extension %q must start with a dot", ext)
			}
		}
		l.exts = append(l.exts, exts...)
		return nil
	}
}

// WithCache reuses file bytes across Load calls, so repeated loads of the
// same icon skip disk I/O. Every resolved name still gets a fresh,
// independently mutable handle.
func WithCache() Option {
	return func(l *Loader) error {
		l.cache = NewFileCache()
		return nil
	}
}

// New creates a Loader over the given directories, first directory first.
func New(directories []string, opts ...Option) (*Loader, error) {
	l := &Loader{dirs: append([]string(nil), directories...)}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	if l.scanner == nil {
		l.scanner = dirScanner{exts: l.exts}
	}
	return l, nil
}

// Load resolves each requested name to a file and returns a handle per
// name. A name carrying an extension must match a file verbatim; a bare
// name matches any extension. The highest-priority directory with any
// candidate for a name wins and its first candidate in scan order is
// loaded.
//
// The result maps the names as requested. If any name stays unresolved
// after all directories are scanned, Load returns a *ResolutionError naming
// every unmatched query and no partial result.
func (l *Loader) Load(names ...string) (map[string]*img.Img, error) {
	// Synthesize one query per distinct name, remembering the requested
	// name each query answers for.
	queries := make([]string, 0, len(names))
	keys := make(map[string]string, len(names))
	for _, name := range names {
		query := name
		if filepath.Ext(name) == "" {
			query = name + ".*"
		}
		if _, dup := keys[query]; !dup {
			queries = append(queries, query)
		}
		keys[query] = name
	}

	resolved := make(map[string]*img.Img, len(queries))
	seen := make(map[string]bool, len(queries))

	for _, dir := range l.dirs {
		pending := make([]string, 0, len(queries))
		for _, q := range queries {
			if !seen[q] {
				pending = append(pending, q)
			}
		}
		if len(pending) == 0 {
			break
		}

		matches, err := l.scanner.Scan(dir, pending)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
		}
		for _, q := range pending {
			paths := matches[q]
			if len(paths) == 0 {
				continue
			}
			handle, err := l.fromPath(paths[0])
			if err != nil {
				return nil, err
			}
			resolved[keys[q]] = handle
			seen[q] = true
		}
	}

	if len(seen) != len(queries) {
		missing := make([]string, 0, len(queries))
		for _, q := range queries {
			if !seen[q] {
				missing = append(missing, q)
			}
		}
		sort.Strings(missing)
		return nil, &ResolutionError{Names: missing}
	}
	return resolved, nil
}

// fromPath loads a file into a fresh handle, through the byte cache when one
// is configured.
func (l *Loader) fromPath(path string) (*img.Img, error) {
	if l.cache == nil {
		return img.FromPath(path)
	}
	data, err := l.cache.Load(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return img.New(data, img.WithName(name), img.WithPath(path)), nil
}
