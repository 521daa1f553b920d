package fsutil

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func writeFiles(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		p := filepath.Join(root, filepath.FromSlash(r))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.dll", "b.pdb", "c.dll", "nested/d.dll")
	ctx := context.Background()
	finder := New()

	t.Run("top level only", func(t *testing.T) {
		files, err := finder.FindFilesByExtension(ctx, root, ".dll", false)
		require.NoError(t, err)
		sort.Strings(files)
		assert.Equal(t, []string{filepath.Join(root, "a.dll"), filepath.Join(root, "c.dll")}, files)
	})

	t.Run("recursive", func(t *testing.T) {
		files, err := finder.FindFilesByExtension(ctx, root, ".dll", true)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			filepath.Join(root, "a.dll"),
			filepath.Join(root, "c.dll"),
			filepath.Join(root, "nested", "d.dll"),
		}, files)
	})

	t.Run("empty extension panics", func(t *testing.T) {
		assert.Panics(t, func() { _, _ = finder.FindFilesByExtension(ctx, root, "", false) })
	})
}

func TestFindSingle(t *testing.T) {
	ctx := context.Background()
	finder := New()

	t.Run("exactly one", func(t *testing.T) {
		root := t.TempDir()
		writeFiles(t, root, "mscorlib/v4.0/mscorlib.dll", "System/v4.0/System.dll")
		got, err := finder.FindSingle(ctx, root, "mscorlib.dll")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "mscorlib", "v4.0", "mscorlib.dll"), got)
	})

	t.Run("none", func(t *testing.T) {
		root := t.TempDir()
		writeFiles(t, root, "System.dll")
		_, err := finder.FindSingle(ctx, root, "mscorlib.dll")
		assert.ErrorContains(t, err, "no file named mscorlib.dll")
	})

	t.Run("ambiguous", func(t *testing.T) {
		root := t.TempDir()
		writeFiles(t, root, "v2/mscorlib.dll", "v4/mscorlib.dll")
		_, err := finder.FindSingle(ctx, root, "mscorlib.dll")
		assert.ErrorContains(t, err, "found 2")
	})
}

func TestScanTree(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"Program.cs",
		"Models/User.cs",
		"Models/Orders/Order.cs",
		"bin/Debug/Generated.cs",
		"obj/AssemblyInfo.cs",
		"README.md",
	)

	tree, err := New().ScanTree(context.Background(), root, ".cs", DefaultSkipDirs)
	require.NoError(t, err)

	var rel []string
	for _, f := range tree.Files() {
		r, err := filepath.Rel(root, f.FullPath())
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.ElementsMatch(t, []string{"Program.cs", "Models/User.cs", "Models/Orders/Order.cs"}, rel)
	assert.Equal(t, filepath.Base(root), tree.Name())
}

func TestFinder_MemoryService(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	base := "mem://localhost/" + strings.ReplaceAll(t.Name(), "/", "_")
	for _, rel := range []string{"gac/v4/mscorlib.dll", "gac/v4/System.dll", "out/Lib.dll", "out/Lib.pdb"} {
		require.NoError(t, fs.Upload(ctx, base+"/"+rel, 0o644, strings.NewReader("x")))
	}
	finder := NewWithService(fs)
	root := strings.TrimPrefix(base, "mem://localhost")

	t.Run("exists", func(t *testing.T) {
		ok, err := finder.Exists(ctx, base+"/out")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = finder.Exists(ctx, base+"/bin/Debug")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("find single", func(t *testing.T) {
		got, err := finder.FindSingle(ctx, base+"/gac", "mscorlib.dll")
		require.NoError(t, err)
		assert.Equal(t, filepath.FromSlash(root+"/gac/v4/mscorlib.dll"), got)
	})

	t.Run("find by extension", func(t *testing.T) {
		got, err := finder.FindFilesByExtension(ctx, base+"/out", ".dll", false)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.FromSlash(root + "/out/Lib.dll")}, got)
	})
}
