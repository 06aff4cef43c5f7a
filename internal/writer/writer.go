package writer

import (
	"github.com/sokinpui/scaffold/internal/fs"
	"github.com/sokinpui/scaffold/internal/logger"
	"github.com/sokinpui/scaffold/model"
)

// ProgressFunc is called as each block starts processing. current is
// 1-based; path is the normalized block path.
type ProgressFunc func(current, total int, path string)

// Writer materializes file blocks on disk.
type Writer struct {
	resolver *fs.PathResolver
}

// New creates a Writer that places relative paths under the resolver's root.
func New(resolver *fs.PathResolver) *Writer {
	return &Writer{resolver: resolver}
}

// Materialize writes blocks in document order, one at a time. Blocks whose
// path normalizes to empty are skipped without a result. A failing block
// yields a result with Err set and does not stop the batch.
func (w *Writer) Materialize(blocks []model.FileBlock, progressCb ProgressFunc) []model.WriteResult {
	results := make([]model.WriteResult, 0, len(blocks))
	for i, block := range blocks {
		normalized := fs.Normalize(block.Path)
		if normalized == "" {
			logger.Debug("Skipping block %d: empty path", i+1)
			continue
		}
		if progressCb != nil {
			progressCb(i+1, len(blocks), normalized)
		}
		results = append(results, w.write(w.resolver.Resolve(normalized), block.Content))
	}
	return results
}

func (w *Writer) write(path, content string) model.WriteResult {
	result := model.WriteResult{Path: path, Action: fs.FileAction(path)}
	if err := fs.EnsureParentDir(path); err != nil {
		result.Err = err
		logger.Debug("Failed %s: %v", path, err)
		return result
	}
	if err := fs.WriteText(path, content); err != nil {
		result.Err = err
		logger.Debug("Failed %s: %v", path, err)
		return result
	}
	logger.Debug("Wrote %s (%s)", path, result.Action)
	return result
}
