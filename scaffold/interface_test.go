package scaffold_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/scaffold/model"
	"github.com/sokinpui/scaffold/scaffold"
)

func TestLibraryInterface(t *testing.T) {
	chdir(t, t.TempDir())

	t.Run("Parse", func(t *testing.T) {
		blocks := scaffold.Parse(fileBlock("x.txt", "x") + fileBlock("y.txt", "y"))
		require.Len(t, blocks, 2)
		assert.Equal(t, "x.txt", blocks[0].Path)
	})

	t.Run("WriteBlocks", func(t *testing.T) {
		report, err := scaffold.WriteBlocks([]model.FileBlock{
			{Path: "lib/a.txt", Content: "a\r\n"},
			{Path: "", Content: "skipped"},
		}, "generated")

		require.NoError(t, err)
		assert.Equal(t, 2, report.Found)
		assert.Equal(t, []string{filepath.Join("generated", "lib", "a.txt")}, report.Created)
		assert.Equal(t, "a", read(t, "generated/lib/a.txt"))
	})

	t.Run("Materialize", func(t *testing.T) {
		report, err := scaffold.Materialize(fileBlock("src/main.py", "print('hi')")+fileBlock("README.md", "# hi"),
			scaffold.Config{Dir: "proj", Extensions: []string{"py"}})

		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join("proj", "src", "main.py")}, report.Created)
		assert.NoFileExists(t, filepath.Join("proj", "README.md"))
	})

	t.Run("Materialize with unknown format", func(t *testing.T) {
		_, err := scaffold.Materialize("", scaffold.Config{Format: "html"})
		assert.ErrorContains(t, err, "unknown format")
	})
}
