package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Scanner finds candidate files for a set of queries inside one directory.
// A query is either an exact file name or a wildcard of the form "stem.*"
// matching any extension. Implementations return, per query, candidate
// paths in a stable order; queries without candidates may be omitted.
type Scanner interface {
	Scan(dir string, queries []string) (map[string][]string, error)
}

// dirScanner scans one directory per call using os.ReadDir, which sorts
// entries by file name, so candidate order is lexical. A missing directory
// yields no matches; search paths routinely list directories that do not
// exist on a given machine.
type dirScanner struct {
	// exts, when non-empty, restricts wildcard matches to these extensions
	// (each with a leading dot).
	exts []string
}

func (s dirScanner) Scan(dir string, queries []string) (map[string][]string, error) {
	matches := make(map[string][]string, len(queries))

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			log.Debug().Str("dir", dir).Msg("skipping unscannable directory")
			return matches, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		for _, q := range queries {
			if s.match(q, name) {
				matches[q] = append(matches[q], filepath.Join(dir, name))
			}
		}
	}
	return matches, nil
}

// match reports whether a directory entry satisfies a query.
func (s dirScanner) match(query, filename string) bool {
	stem, wildcard := strings.CutSuffix(query, ".*")
	if !wildcard {
		return filename == query
	}
	rest, ok := strings.CutPrefix(filename, stem+".")
	if !ok || rest == "" {
		return false
	}
	if len(s.exts) == 0 {
		return true
	}
	ext := filepath.Ext(filename)
	for _, allowed := range s.exts {
		if ext == allowed {
			return true
		}
	}
	return false
}
