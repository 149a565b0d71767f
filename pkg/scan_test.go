package dupdigest

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func relPaths(files []ScannedPath) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.RelPath
	}
	sort.Strings(paths)
	return paths
}

func TestScanner_Walk_Nested(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt":           "a",
		"sub/b.txt":       "b",
		"sub/deep/c.txt":  "c",
		"other/d.txt":     "d",
		"other/empty.txt": "",
	})
	require.NoError(t, os.Mkdir(filepath.Join(root, "emptydir"), 0755))

	files := NewScanner("", nil).Walk(root)
	assert.Equal(t, []string{"a.txt", "other/d.txt", "other/empty.txt", "sub/b.txt", "sub/deep/c.txt"}, relPaths(files))

	for _, f := range files {
		assert.Equal(t, root+"/"+f.RelPath, f.Path)
	}
}

func TestScanner_Walk_KeepsRootSpelling(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"x": "1"})

	files := NewScanner("", nil).Walk(root + "/")
	require.Len(t, files, 1)
	assert.Equal(t, root+"/x", files[0].Path)

	files = NewScanner("", nil).Walk(root + "/./")
	require.Len(t, files, 1)
	assert.Equal(t, root+"/./x", files[0].Path)
}

func TestScanner_Walk_InvalidRoots(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"file.txt": "x"})

	scanner := NewScanner("", nil)
	assert.Empty(t, scanner.Walk(filepath.Join(dir, "does-not-exist")))
	assert.Empty(t, scanner.Walk(filepath.Join(dir, "file.txt")))
	assert.Empty(t, scanner.Walk(t.TempDir()))
}

func TestScanner_Walk_UnreadableSubdirectory(t *testing.T) {
	skipIfRoot(t)

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"visible.txt":        "v",
		"locked/hidden.txt":  "h",
		"open/reachable.txt": "r",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	files := NewScanner("", nil).Walk(root)
	assert.Equal(t, []string{"open/reachable.txt", "visible.txt"}, relPaths(files))
}

func TestScanner_Walk_SkipsSpecialFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"regular": "r"})
	require.NoError(t, unix.Mkfifo(filepath.Join(root, "fifo"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "broken")))

	files := NewScanner("", nil).Walk(root)
	assert.Equal(t, []string{"regular"}, relPaths(files))
}

func TestScanner_Walk_FileSymlinksFollowed(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"target.txt": "t"})
	require.NoError(t, os.Symlink("target.txt", filepath.Join(root, "link.txt")))

	for _, mode := range []string{SymlinkModeAll, SymlinkModeContained, SymlinkModeNone} {
		files := NewScanner(mode, nil).Walk(root)
		assert.Equal(t, []string{"link.txt", "target.txt"}, relPaths(files), "mode %s", mode)
	}
}

func TestScanner_Walk_SymlinkModes(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "root")
	outside := filepath.Join(base, "outside")
	writeTree(t, root, map[string]string{"inner/in.txt": "i"})
	writeTree(t, outside, map[string]string{"out.txt": "o"})
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "to-outside")))
	require.NoError(t, os.Symlink(filepath.Join(root, "inner"), filepath.Join(root, "to-inner")))

	tests := []struct {
		mode     string
		expected []string
	}{
		{SymlinkModeAll, []string{"inner/in.txt", "to-inner/in.txt", "to-outside/out.txt"}},
		{SymlinkModeContained, []string{"inner/in.txt", "to-inner/in.txt"}},
		{SymlinkModeNone, []string{"inner/in.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			files := NewScanner(tt.mode, nil).Walk(root)
			assert.Equal(t, tt.expected, relPaths(files))
		})
	}
}

func TestScanner_Walk_SymlinkCycleTerminates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a/file.txt": "f"})
	require.NoError(t, os.Symlink("..", filepath.Join(root, "a", "up")))
	require.NoError(t, os.Symlink(".", filepath.Join(root, "a", "self")))

	files := NewScanner(SymlinkModeAll, nil).Walk(root)
	assert.Equal(t, []string{"a/file.txt"}, relPaths(files))
}

func TestScanner_Walk_SharedTargetVisitedPerRoute(t *testing.T) {
	// Two acyclic routes to one directory: both are reported
	root := t.TempDir()
	writeTree(t, root, map[string]string{"shared/s.txt": "s"})
	require.NoError(t, os.Symlink("shared", filepath.Join(root, "alias1")))
	require.NoError(t, os.Symlink("shared", filepath.Join(root, "alias2")))

	files := NewScanner(SymlinkModeAll, nil).Walk(root)
	assert.Equal(t, []string{"alias1/s.txt", "alias2/s.txt", "shared/s.txt"}, relPaths(files))
}

func TestScanner_Walk_IgnorePatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"keep.txt":        "k",
		"skip.tmp":        "s",
		".git/objects/aa": "g",
		"src/main.go":     "m",
	})

	im := NewIgnoreManager()
	require.NoError(t, im.AddPattern(`\.tmp$`))
	require.NoError(t, im.AddPattern(`^\.git$`))

	files := NewScanner("", im).Walk(root)
	assert.Equal(t, []string{"keep.txt", "src/main.go"}, relPaths(files))
}

func TestValidateSymlinkMode(t *testing.T) {
	for _, mode := range []string{"all", "contained", "none"} {
		assert.NoError(t, ValidateSymlinkMode(mode))
	}
	assert.Error(t, ValidateSymlinkMode("sometimes"))
}
