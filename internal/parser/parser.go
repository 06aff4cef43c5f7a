package parser

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/sokinpui/scaffold/internal/logger"
	"github.com/sokinpui/scaffold/model"
)

const (
	// StartMarker opens a block header: "--- START OF FILE <path> ---".
	StartMarker = "--- START OF FILE"
	// EndMarker terminates a block. It, not a closing fence, ends the content.
	EndMarker = "--- END OF FILE"

	headerClose = "---"
	fence       = "```"
)

// Document is the result of scanning a marker-format document.
type Document struct {
	Blocks []model.FileBlock
	// Unterminated holds the paths of well-formed headers that have no
	// end marker after them. Their content is not materialized.
	Unterminated []string
}

type header struct {
	path         string
	lang         string
	contentStart int
}

var pathInHintRegex = regexp.MustCompile("`([^`\n]+)`")

// Parse returns the file blocks of a marker-format document in order of
// appearance. Zero matches yields an empty slice.
func Parse(document string) []model.FileBlock {
	return ParseDocument(document).Blocks
}

// ParseDocument scans document for blocks of the form
//
//	--- START OF FILE path/to/file.ext ---
//	```lang
//	content
//	--- END OF FILE path/to/file.ext ---
//
// Content runs up to the next end marker, so unbalanced or missing closing
// fences inside it do not break extraction. A literal end marker inside
// content ends the block early.
func ParseDocument(document string) Document {
	var doc Document
	pos := 0
	for pos < len(document) {
		idx := strings.Index(document[pos:], StartMarker)
		if idx < 0 {
			break
		}
		markerAt := pos + idx

		h, ok := scanHeader(document, markerAt+len(StartMarker))
		if !ok {
			logger.Debug("Ignoring malformed header at offset %d", markerAt)
			pos = markerAt + 1
			continue
		}

		end := strings.Index(document[h.contentStart:], EndMarker)
		if end < 0 {
			doc.Unterminated = append(doc.Unterminated, strings.TrimSpace(h.path))
			pos = h.contentStart
			continue
		}
		endAt := h.contentStart + end

		doc.Blocks = append(doc.Blocks, model.FileBlock{
			Path:    strings.TrimSpace(h.path),
			Content: strings.TrimRightFunc(document[h.contentStart:endAt], unicode.IsSpace),
			Lang:    h.lang,
		})
		pos = endAt
	}
	return doc
}

// scanHeader matches `<ws><path><ws>---` on the marker's line followed by an
// opening fence. The shortest path that completes a header wins.
func scanHeader(document string, at int) (header, bool) {
	line := document[at:]
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	if line == "" || !isSpace(line[0]) {
		return header{}, false
	}

	search := 0
	for {
		i := strings.Index(line[search:], headerClose)
		if i < 0 {
			return header{}, false
		}
		closeAt := search + i
		seg := line[:closeAt]
		if len(seg) >= 3 && isSpace(seg[len(seg)-1]) {
			if contentStart, lang, ok := scanFence(document, at+closeAt+len(headerClose)); ok {
				return header{path: seg, lang: lang, contentStart: contentStart}, true
			}
		}
		search = closeAt + 1
	}
}

// scanFence skips whitespace, then expects "```" plus an optional info
// string terminated by a newline.
func scanFence(document string, at int) (contentStart int, lang string, ok bool) {
	for at < len(document) && isSpace(document[at]) {
		at++
	}
	if !strings.HasPrefix(document[at:], fence) {
		return 0, "", false
	}
	at += len(fence)
	nl := strings.IndexByte(document[at:], '\n')
	if nl < 0 {
		return 0, "", false
	}
	return at + nl + 1, strings.TrimSpace(document[at : at+nl]), true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// ParseMarkdown returns file blocks from markdown where a paragraph holding
// a backticked path precedes a fenced code block, e.g.
//
//	`src/main.go`
//	```go
//	package main
//	```
//
// Diff blocks and blocks without a path hint are ignored.
func ParseMarkdown(document string) ([]model.FileBlock, error) {
	codeBlocks, err := ExtractCodeBlocks([]byte(document))
	if err != nil {
		return nil, err
	}

	var blocks []model.FileBlock
	for _, cb := range codeBlocks {
		if cb.Lang == "diff" {
			continue
		}
		filePath := extractPathFromHint(cb.Hint)
		if filePath == "" {
			continue
		}
		blocks = append(blocks, model.FileBlock{
			Path:    filePath,
			Content: strings.TrimRightFunc(cb.Content, unicode.IsSpace),
			Lang:    cb.Lang,
		})
	}
	return blocks, nil
}

func extractPathFromHint(hint string) string {
	hint = strings.TrimSpace(hint)

	// A path hint must be enclosed in backticks, e.g., `path/to/file.go`
	if match := pathInHintRegex.FindStringSubmatch(hint); len(match) > 1 {
		path := strings.TrimSpace(match[1])
		// Disallow spaces to avoid capturing commands like `go run main.go` as a path.
		if !strings.Contains(path, " ") {
			return path
		}
	}

	return ""
}

// FilterByExtension keeps blocks whose path has one of the given extensions.
// An empty list means no filter.
func FilterByExtension(blocks []model.FileBlock, extensions []string) []model.FileBlock {
	if len(extensions) == 0 {
		return blocks
	}
	kept := make([]model.FileBlock, 0, len(blocks))
	for _, b := range blocks {
		if hasAllowedExtension(b.Path, extensions) {
			kept = append(kept, b)
			continue
		}
		logger.Debug("Filtered out %s by extension", b.Path)
	}
	return kept
}

func hasAllowedExtension(path string, extensions []string) bool {
	ext := filepath.Ext(strings.TrimSpace(path))
	for _, allowedExt := range extensions {
		if ext == allowedExt {
			return true
		}
	}
	return false
}
