package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello\nworld", "hello\nworld"},
		{"utf8 bom", "\xef\xbb\xbfhello", "hello"},
		{"utf16le bom", "\xff\xfeh\x00i\x00", "hi"},
		{"crlf", "a\r\nb\r\n", "a\nb\n"},
		{"lone cr", "a\rb", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetContent_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.md")
	require.NoError(t, os.WriteFile(path, []byte("line one\r\nline two\r\n"), 0644))

	sp := New(path, false)
	content, err := sp.GetContent()

	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", content)
	assert.Equal(t, path, sp.Name())
}

func TestGetContent_MissingFile(t *testing.T) {
	sp := New(filepath.Join(t.TempDir(), "missing.md"), false)

	_, err := sp.GetContent()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputUnavailable))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "not found")
}

func TestGetContent_Directory(t *testing.T) {
	sp := New(t.TempDir(), false)

	_, err := sp.GetContent()

	assert.ErrorIs(t, err, ErrInputUnavailable)
}

func TestGetContent_Stdin(t *testing.T) {
	sp := New(StdinPath, false)
	sp.stdin = strings.NewReader("piped\r\n")

	content, err := sp.GetContent()

	require.NoError(t, err)
	assert.Equal(t, "piped\n", content)
	assert.Equal(t, "stdin", sp.Name())
}

func TestNew_DefaultInput(t *testing.T) {
	sp := New("", false)
	assert.Equal(t, DefaultInput, sp.Name())
	assert.Equal(t, "clipboard", New("", true).Name())
}
