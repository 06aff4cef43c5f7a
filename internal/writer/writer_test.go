package writer

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/scaffold/internal/fs"
	"github.com/sokinpui/scaffold/model"
)

func newWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	root := t.TempDir()
	resolver, err := fs.NewPathResolver(root)
	require.NoError(t, err)
	return New(resolver), root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMaterialize_CreatesFilesAndDirectories(t *testing.T) {
	w, root := newWriter(t)
	blocks := []model.FileBlock{
		{Path: "src/a.txt", Content: "hello"},
		{Path: "src/b/c.txt", Content: "world\n\n"},
	}

	results := w.Materialize(blocks, nil)

	require.Len(t, results, 2)
	for _, res := range results {
		assert.NoError(t, res.Err)
		assert.Equal(t, model.ActionCreate, res.Action)
	}
	assert.Equal(t, "hello", readFile(t, filepath.Join(root, "src", "a.txt")))
	assert.Equal(t, "world", readFile(t, filepath.Join(root, "src", "b", "c.txt")))
	assert.DirExists(t, filepath.Join(root, "src", "b"))
}

func TestMaterialize_LaterBlockWins(t *testing.T) {
	w, root := newWriter(t)
	blocks := []model.FileBlock{
		{Path: "x.txt", Content: "first"},
		{Path: "./x.txt", Content: "second"},
	}

	results := w.Materialize(blocks, nil)

	require.Len(t, results, 2)
	assert.Equal(t, model.ActionCreate, results[0].Action)
	assert.Equal(t, model.ActionOverwrite, results[1].Action)
	assert.Equal(t, "second", readFile(t, filepath.Join(root, "x.txt")))
}

func TestMaterialize_Idempotent(t *testing.T) {
	w, root := newWriter(t)
	blocks := []model.FileBlock{
		{Path: "a/b.txt", Content: "same\n"},
		{Path: "c.txt", Content: "  indented"},
	}

	w.Materialize(blocks, nil)
	first := readFile(t, filepath.Join(root, "a", "b.txt")) + readFile(t, filepath.Join(root, "c.txt"))
	results := w.Materialize(blocks, nil)
	second := readFile(t, filepath.Join(root, "a", "b.txt")) + readFile(t, filepath.Join(root, "c.txt"))

	assert.Equal(t, first, second)
	for _, res := range results {
		assert.NoError(t, res.Err)
		assert.Equal(t, model.ActionOverwrite, res.Action)
	}
}

func TestMaterialize_SkipsEmptyPaths(t *testing.T) {
	w, root := newWriter(t)
	var progressed []string
	blocks := []model.FileBlock{
		{Path: "   ", Content: "ignored"},
		{Path: "kept.txt", Content: "kept"},
	}

	results := w.Materialize(blocks, func(current, total int, path string) {
		progressed = append(progressed, path)
		assert.Equal(t, 2, total)
		assert.Equal(t, 2, current)
	})

	require.Len(t, results, 1)
	assert.Equal(t, []string{"kept.txt"}, progressed)
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMaterialize_FailureDoesNotAbortBatch(t *testing.T) {
	w, root := newWriter(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "blocker"), []byte("file"), 0644))
	blocks := []model.FileBlock{
		{Path: "one.txt", Content: "1"},
		{Path: "blocker/two.txt", Content: "2"},
		{Path: "three.txt", Content: "3"},
	}

	results := w.Materialize(blocks, nil)

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Equal(t, filepath.Join(root, "blocker", "two.txt"), results[1].Path)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "3", readFile(t, filepath.Join(root, "three.txt")))
}

func TestMaterialize_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for this user")
	}
	w, root := newWriter(t)
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(locked, 0500))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	results := w.Materialize([]model.FileBlock{
		{Path: "locked/sub/x.txt", Content: "x"},
		{Path: "free.txt", Content: "y"},
	}, nil)

	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, os.ErrPermission)
	assert.NoError(t, results[1].Err)
}
