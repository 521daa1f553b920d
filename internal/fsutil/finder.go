// Package fsutil provides file system utility functions on top of afs, so
// build output can be enumerated the same way whatever the storage scheme.
package fsutil

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/option"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// Finder enumerates files through an afs.Service.
type Finder struct {
	fs afs.Service
}

// New creates a Finder backed by the default afs service.
func New() *Finder {
	return &Finder{fs: afs.New()}
}

// NewWithService creates a Finder backed by fs.
func NewWithService(fs afs.Service) *Finder {
	return &Finder{fs: fs}
}

// Exists reports whether location exists.
func (f *Finder) Exists(ctx context.Context, location string) (bool, error) {
	return f.fs.Exists(ctx, location)
}

// FindFilesByExtension returns the paths of all files under rootPath whose
// extension equals extension. Only the top level is listed unless recursive
// is set. Paths are returned in listing order.
func (f *Finder) FindFilesByExtension(ctx context.Context, rootPath, extension string, recursive bool) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	objects, err := f.list(ctx, rootPath, recursive)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		if filepath.Ext(object.Name()) == extension {
			files = append(files, localPath(object))
		}
	}
	return files, nil
}

// FindSingle searches rootPath recursively for files named name and
// returns the only match. Zero or several matches are an error.
func (f *Finder) FindSingle(ctx context.Context, rootPath, name string) (string, error) {
	objects, err := f.list(ctx, rootPath, true)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, object := range objects {
		if !object.IsDir() && object.Name() == name {
			matches = append(matches, localPath(object))
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no file named %s under %s", name, rootPath)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("expected exactly one file named %s under %s, found %d: %s",
			name, rootPath, len(matches), strings.Join(matches, ", "))
	}
}

func (f *Finder) list(ctx context.Context, rootPath string, recursive bool) ([]storage.Object, error) {
	var opts []storage.Option
	if recursive {
		opts = append(opts, option.NewRecursive(true))
	}
	objects, err := f.fs.List(ctx, rootPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", rootPath, err)
	}
	return objects, nil
}

// localPath converts an afs object URL back into a host path.
func localPath(object storage.Object) string {
	return filepath.FromSlash(url.Path(object.URL()))
}
