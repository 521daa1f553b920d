// Package reference turns compiled library files into reference tokens that
// a later compilation stage hands to the compiler.
package reference

import (
	"fmt"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Reference is an opaque handle to a compiled library on disk.
type Reference struct {
	path string
}

// Path returns the absolute path of the library file.
func (r *Reference) Path() string {
	return r.path
}

// AssemblyName returns the file name without its extension.
func (r *Reference) AssemblyName() string {
	base := filepath.Base(r.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Equal reports whether both tokens refer to the same file.
func (r *Reference) Equal(other *Reference) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.path == other.path
}

func (r *Reference) String() string {
	return r.path
}

// Loader creates reference tokens. It is unvalidated: the file is not opened.
type Loader interface {
	CreateFromFile(absolutePath string) *Reference
}

// DefaultCacheSize bounds the number of memoised tokens.
const DefaultCacheSize = 4096

// CachingLoader hands out one token per cleaned path for the lifetime of
// the loader, so a library reached through several dependent projects is
// represented by the same handle.
type CachingLoader struct {
	cache *lru.Cache[string, *Reference]
}

// NewCachingLoader creates a loader memoising up to size tokens.
func NewCachingLoader(size int) (*CachingLoader, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *Reference](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create reference cache: %w", err)
	}
	return &CachingLoader{cache: cache}, nil
}

func (l *CachingLoader) CreateFromFile(absolutePath string) *Reference {
	key := filepath.Clean(strings.TrimSpace(absolutePath))
	if ref, ok := l.cache.Get(key); ok {
		return ref
	}
	ref := &Reference{path: key}
	l.cache.Add(key, ref)
	return ref
}

// Paths returns the path of every token, in order.
func Paths(refs []*Reference) []string {
	paths := make([]string, 0, len(refs))
	for _, r := range refs {
		paths = append(paths, r.Path())
	}
	return paths
}

// Distinct drops tokens whose path was already seen, keeping first occurrences.
func Distinct(refs []*Reference) []*Reference {
	seen := make(map[string]struct{}, len(refs))
	out := make([]*Reference, 0, len(refs))
	for _, r := range refs {
		if _, dup := seen[r.Path()]; dup {
			continue
		}
		seen[r.Path()] = struct{}{}
		out = append(out, r)
	}
	return out
}
