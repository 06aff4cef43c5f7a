package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/sokinpui/scaffold/model"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// PathResolver maps block paths onto a target root.
type PathResolver struct {
	root string
}

// NewPathResolver creates a PathResolver rooted at root. An empty root means
// the current working directory.
func NewPathResolver(root string) (*PathResolver, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid target root '%s': %w", root, err)
	}
	return &PathResolver{root: abs}, nil
}

// Root returns the absolute target root.
func (r *PathResolver) Root() string {
	return r.root
}

// Resolve joins a normalized relative path to the root. Absolute paths are
// returned unchanged, and ".." segments may escape the root.
func (r *PathResolver) Resolve(normalizedPath string) string {
	if filepath.IsAbs(normalizedPath) {
		return normalizedPath
	}
	return filepath.Join(r.root, normalizedPath)
}

// Relative returns path relative to the root for display, falling back to
// the path itself.
func (r *PathResolver) Relative(path string) string {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return path
	}
	return rel
}

// Normalize trims a block path and cleans it for the host filesystem.
// It returns "" when nothing addressable remains.
func Normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == "." {
		return ""
	}
	return cleaned
}

// FileAction reports whether writing path creates a new file or overwrites
// an existing one.
func FileAction(path string) string {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return model.ActionCreate
	}
	return model.ActionOverwrite
}

// EnsureParentDir creates the directory containing path and all missing
// ancestors. Existing directories are not an error.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("could not create directory: %w", err)
	}
	return nil
}

// NormalizeText converts line endings to "\n" and strips trailing whitespace.
func NormalizeText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.TrimRightFunc(content, unicode.IsSpace)
}

// WriteText writes content to path as UTF-8 with "\n" line endings,
// truncating any existing file.
func WriteText(path, content string) error {
	if err := os.WriteFile(path, []byte(NormalizeText(content)), filePerm); err != nil {
		return fmt.Errorf("could not write file: %w", err)
	}
	return nil
}
