package loader

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/barshell/iconkit/img"
)

// writeFile drops a small file into dir. Resolution never decodes, so the
// contents do not need to be a real image.
func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("icon bytes"), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_FirstDirectoryWins(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	wantPath := writeFile(t, dirA, "icon.png")
	writeFile(t, dirB, "icon.svg")

	ldr, err := New([]string{dirA, dirB})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	resolved, err := ldr.Load("icon")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	handle, ok := resolved["icon"]
	if !ok {
		t.Fatalf("result has no entry for %q; keys: %v", "icon", keysOf(resolved))
	}
	if handle.Path != wantPath {
		t.Errorf("resolved path: got %q, want the higher-priority %q", handle.Path, wantPath)
	}
}

func TestLoad_MissingName(t *testing.T) {
	dirA := t.TempDir()
	writeFile(t, dirA, "present.png")

	ldr, err := New([]string{dirA})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = ldr.Load("missing")
	if err == nil {
		t.Fatal("Load should fail for an unmatched name")
	}

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("error type: got %T, want *ResolutionError", err)
	}
	if diff := cmp.Diff([]string{"missing.*"}, resErr.Names); diff != "" {
		t.Errorf("unmatched queries (-want +got):\n%s", diff)
	}
}

func TestLoad_NoPartialResult(t *testing.T) {
	dirA := t.TempDir()
	writeFile(t, dirA, "present.png")

	ldr, err := New([]string{dirA})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	resolved, err := ldr.Load("present", "missing")
	if err == nil {
		t.Fatal("Load should fail when any name stays unmatched")
	}
	if resolved != nil {
		t.Errorf("a failed batch must not return partial results, got %v", keysOf(resolved))
	}
}

func TestLoad_ExactExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "icon.png")
	wantPath := writeFile(t, dir, "icon.svg")

	ldr, err := New([]string{dir})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	resolved, err := ldr.Load("icon.svg")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	handle := resolved["icon.svg"]
	if handle == nil {
		t.Fatalf("result keyed by %v, want the requested name", keysOf(resolved))
	}
	if handle.Path != wantPath {
		t.Errorf("resolved path: got %q, want the verbatim match %q", handle.Path, wantPath)
	}
}

func TestLoad_ExactExtensionMustMatchVerbatim(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "icon.png")

	ldr, err := New([]string{dir})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = ldr.Load("icon.svg")
	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("Load should fail with a resolution error, got %v", err)
	}
	if diff := cmp.Diff([]string{"icon.svg"}, resErr.Names); diff != "" {
		t.Errorf("unmatched queries (-want +got):\n%s", diff)
	}
}

func TestLoad_WildcardPicksLexicallyFirst(t *testing.T) {
	dir := t.TempDir()
	wantPath := writeFile(t, dir, "icon.jpg")
	writeFile(t, dir, "icon.png")

	ldr, err := New([]string{dir})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	resolved, err := ldr.Load("icon")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := resolved["icon"].Path; got != wantPath {
		t.Errorf("resolved path: got %q, want the lexically first %q", got, wantPath)
	}
}

func TestLoad_LowerPriorityFillsGaps(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	pathA := writeFile(t, dirA, "volume.png")
	pathB := writeFile(t, dirB, "battery.png")
	writeFile(t, dirB, "volume.png") // shadowed by dirA

	ldr, err := New([]string{dirA, dirB})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	resolved, err := ldr.Load("volume", "battery")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := resolved["volume"].Path; got != pathA {
		t.Errorf("volume: got %q, want %q from the first directory", got, pathA)
	}
	if got := resolved["battery"].Path; got != pathB {
		t.Errorf("battery: got %q, want %q from the second directory", got, pathB)
	}
}

func TestLoad_NonexistentDirectorySkipped(t *testing.T) {
	dir := t.TempDir()
	wantPath := writeFile(t, dir, "icon.png")

	ldr, err := New([]string{filepath.Join(dir, "does-not-exist"), dir})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	resolved, err := ldr.Load("icon")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := resolved["icon"].Path; got != wantPath {
		t.Errorf("resolved path: got %q, want %q", got, wantPath)
	}
}

func TestLoad_HandleName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "audio-volume-low.png")

	ldr, err := New([]string{dir})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	resolved, err := ldr.Load("audio-volume-low")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := resolved["audio-volume-low"].Name; got != "audio-volume-low" {
		t.Errorf("handle name: got %q, want the file stem", got)
	}
}

func TestWithExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "icon.svg")
	wantPath := writeFile(t, dir, "icon.png")

	ldr, err := New([]string{dir}, WithExtensions(".png"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	resolved, err := ldr.Load("icon")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := resolved["icon"].Path; got != wantPath {
		t.Errorf("resolved path: got %q, want the allowed extension %q", got, wantPath)
	}
}

func TestWithExtensions_NothingAllowed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "icon.svg")

	ldr, err := New([]string{dir}, WithExtensions(".png"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var resErr *ResolutionError
	if _, err := ldr.Load("icon"); !errors.As(err, &resErr) {
		t.Fatalf("Load should fail with a resolution error, got %v", err)
	}
}

func TestWithExtensions_Invalid(t *testing.T) {
	for _, ext := range []string{"png", "", "."} {
		if _, err := New(nil, WithExtensions(ext)); err == nil {
			t.Errorf("New should reject extension %q", ext)
		}
	}
}

func TestWithScanner(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "icon.png")

	called := false
	stub := scannerFunc(func(scanDir string, queries []string) (map[string][]string, error) {
		called = true
		if scanDir != dir {
			t.Errorf("scanner got dir %q, want %q", scanDir, dir)
		}
		return map[string][]string{"icon.*": {path}}, nil
	})

	ldr, err := New([]string{dir}, WithScanner(stub))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := ldr.Load("icon"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !called {
		t.Error("custom scanner was never consulted")
	}
}

func TestWithScanner_Nil(t *testing.T) {
	if _, err := New(nil, WithScanner(nil)); err == nil {
		t.Error("New should reject a nil scanner")
	}
}

func TestWithCache_SkipsDisk(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "icon.png")

	ldr, err := New([]string{dir}, WithCache())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first, err := ldr.Load("icon")
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}

	// Rewrite the backing file; a cache hit serves the original bytes.
	if err := os.WriteFile(path, []byte("different"), 0o644); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}

	second, err := ldr.Load("icon")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}

	if string(second["icon"].Bytes()) != string(first["icon"].Bytes()) {
		t.Error("cached loader re-read the file from disk")
	}
	if first["icon"] == second["icon"] {
		t.Error("each Load must return a fresh handle even on a cache hit")
	}
}

// scannerFunc adapts a function to the Scanner interface.
type scannerFunc func(dir string, queries []string) (map[string][]string, error)

func (f scannerFunc) Scan(dir string, queries []string) (map[string][]string, error) {
	return f(dir, queries)
}

func keysOf(m map[string]*img.Img) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
