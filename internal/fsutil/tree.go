package fsutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/buildprep/internal/model"
)

// DefaultSkipDirs are build output folders never part of the source tree.
var DefaultSkipDirs = []string{"bin", "obj"}

// ScanTree builds the folder/file tree of all files with extension under
// rootPath, skipping any path that passes through a folder in skipDirs.
// Children are ordered by name.
func (f *Finder) ScanTree(ctx context.Context, rootPath, extension string, skipDirs []string) (*model.FolderComposite, error) {
	root, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", rootPath, err)
	}

	files, err := f.FindFilesByExtension(ctx, root, extension, true)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	skip := make(map[string]struct{}, len(skipDirs))
	for _, d := range skipDirs {
		skip[d] = struct{}{}
	}

	tree := model.NewFolder(filepath.Base(root), root)
next:
	for _, file := range files {
		rel, err := filepath.Rel(root, file)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		dir := filepath.Dir(rel)
		var segments []string
		if dir != "." {
			segments = strings.Split(dir, string(filepath.Separator))
		}
		for _, s := range segments {
			if _, ok := skip[s]; ok {
				continue next
			}
		}

		folder := tree
		current := root
		for _, s := range segments {
			current = filepath.Join(current, s)
			folder = folder.Folder(s, current)
		}
		folder.Add(model.NewFile(filepath.Base(file), file))
	}
	return tree, nil
}
