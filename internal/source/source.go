package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sokinpui/scaffold/internal/logger"
)

const (
	// DefaultInput is read when no input path is given.
	DefaultInput = "01code.md"
	// StdinPath selects standard input.
	StdinPath = "-"
)

// ErrInputUnavailable wraps every failure to obtain the source document.
var ErrInputUnavailable = errors.New("input unavailable")

// SourceProvider determines and retrieves the source content.
type SourceProvider struct {
	path         string
	useClipboard bool
	stdin        io.Reader
}

// New creates a SourceProvider reading from path, standard input ("-"),
// or the clipboard when useClipboard is set.
func New(path string, useClipboard bool) *SourceProvider {
	if path == "" {
		path = DefaultInput
	}
	return &SourceProvider{path: path, useClipboard: useClipboard, stdin: os.Stdin}
}

// Name describes where content is read from.
func (sp *SourceProvider) Name() string {
	switch {
	case sp.useClipboard:
		return "clipboard"
	case sp.path == StdinPath:
		return "stdin"
	default:
		return sp.path
	}
}

// GetContent reads the whole document and returns it as UTF-8 text with
// "\n" line endings.
func (sp *SourceProvider) GetContent() (string, error) {
	if sp.useClipboard {
		logger.Debug("Reading from clipboard")
		content, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("%w: failed to read from clipboard: %w", ErrInputUnavailable, err)
		}
		return Decode(strings.NewReader(content))
	}

	if sp.path == StdinPath {
		logger.Debug("Reading from stdin")
		content, err := Decode(sp.stdin)
		if err != nil {
			return "", fmt.Errorf("%w: failed to read from stdin: %w", ErrInputUnavailable, err)
		}
		return content, nil
	}

	logger.Debug("Reading from file %s", sp.path)
	f, err := os.Open(sp.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: input file '%s' not found: %w", ErrInputUnavailable, sp.path, err)
		}
		return "", fmt.Errorf("%w: could not read file '%s': %w", ErrInputUnavailable, sp.path, err)
	}
	defer f.Close()

	content, err := Decode(f)
	if err != nil {
		return "", fmt.Errorf("%w: could not read file '%s': %w", ErrInputUnavailable, sp.path, err)
	}
	return content, nil
}

// Decode reads r as UTF-8, or as UTF-16 when a UTF-16 byte order mark is
// present. A UTF-8 BOM is dropped and "\r\n" and "\r" become "\n".
func Decode(r io.Reader) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return "", err
	}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n"), nil
}
