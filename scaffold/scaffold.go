package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/sokinpui/scaffold/cli"
	"github.com/sokinpui/scaffold/internal/fs"
	"github.com/sokinpui/scaffold/internal/logger"
	"github.com/sokinpui/scaffold/internal/nvim"
	"github.com/sokinpui/scaffold/internal/parser"
	"github.com/sokinpui/scaffold/internal/source"
	"github.com/sokinpui/scaffold/internal/writer"
	"github.com/sokinpui/scaffold/model"
)

// ProgressUpdate is called as each block starts processing.
type ProgressUpdate func(current, total int, path string)

// App orchestrates the entire application logic.
type App struct {
	cfg              *cli.Config
	pathResolver     *fs.PathResolver
	sourceProvider   *source.SourceProvider
	writer           *writer.Writer
	progressCallback ProgressUpdate
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	pathResolver, err := fs.NewPathResolver(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize path resolver: %w", err)
	}

	return &App{
		cfg:            cfg,
		pathResolver:   pathResolver,
		sourceProvider: source.New(cfg.Input, cfg.Clipboard),
		writer:         writer.New(pathResolver),
	}, nil
}

// SetProgressCallback sets a function to be called for progress updates.
func (a *App) SetProgressCallback(cb ProgressUpdate) {
	a.progressCallback = cb
}

// SourceName describes where the document is read from.
func (a *App) SourceName() string {
	return a.sourceProvider.Name()
}

// Parse extracts file blocks from content in the configured format, keeping
// only the configured extensions.
func (a *App) Parse(content string) (parser.Document, error) {
	var doc parser.Document
	switch a.cfg.Format {
	case cli.FormatMarkdown:
		blocks, err := parser.ParseMarkdown(content)
		if err != nil {
			return parser.Document{}, fmt.Errorf("failed to parse markdown: %w", err)
		}
		doc.Blocks = blocks
	default:
		doc = parser.ParseDocument(content)
	}
	doc.Blocks = parser.FilterByExtension(doc.Blocks, a.cfg.Extensions)
	logger.Debug("Parsed %d block(s), %d unterminated", len(doc.Blocks), len(doc.Unterminated))
	return doc, nil
}

// Apply writes blocks in order and returns a report with absolute paths.
func (a *App) Apply(blocks []model.FileBlock) model.Report {
	var progressCb writer.ProgressFunc
	if a.progressCallback != nil {
		progressCb = func(current, total int, path string) {
			a.progressCallback(current, total, path)
		}
	}
	results := a.writer.Materialize(blocks, progressCb)
	return model.NewReport(len(blocks), results)
}

// Execute reads the configured source and materializes its blocks.
func (a *App) Execute() (report model.Report, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	return a.processContent()
}

// processContent handles reading the source, then parsing and writing it.
func (a *App) processContent() (model.Report, error) {
	content, err := a.sourceProvider.GetContent()
	if err != nil {
		if errors.Is(err, source.ErrInputUnavailable) {
			return model.Report{Message: fmt.Sprintf("Could not read input: %v", err)}, nil
		}
		return model.Report{}, err
	}
	return a.processAndApply(content)
}

func (a *App) processAndApply(content string) (model.Report, error) {
	doc, err := a.Parse(content)
	if err != nil {
		return model.Report{}, err
	}
	if len(doc.Blocks) == 0 {
		return model.Report{
			Message:      fmt.Sprintf("No file blocks were found in %s. Check the document format.", a.SourceName()),
			Unterminated: doc.Unterminated,
		}, nil
	}

	report := a.Apply(doc.Blocks)
	report.Unterminated = doc.Unterminated
	if a.cfg.Nvim {
		report.Reloaded = a.reloadEditorBuffers(report)
	}
	a.relativizeReportPaths(&report)
	return report, nil
}

// reloadEditorBuffers asks a running Neovim to re-read written files.
func (a *App) reloadEditorBuffers(report model.Report) []string {
	manager, err := nvim.New(nvim.Address())
	if err != nil {
		logger.Warn("Skipping Neovim reload: %v", err)
		return nil
	}
	defer manager.Close()

	written := append(append([]string{}, report.Created...), report.Overwritten...)
	reloaded, skipped, failed := manager.ReloadBuffers(written)
	for _, p := range skipped {
		logger.Warn("Buffer for %s has unsaved changes, not reloaded", p)
	}
	for _, p := range failed {
		logger.Warn("Failed to reload buffer for %s", p)
	}
	return reloaded
}

// relativizeReportPaths converts absolute file paths in a report to be
// relative to the current working directory for cleaner display.
func (a *App) relativizeReportPaths(report *model.Report) {
	wd, err := os.Getwd()
	if err != nil {
		return
	}

	makeRelative := func(absPaths []string) []string {
		if len(absPaths) == 0 {
			return absPaths
		}
		relPaths := make([]string, len(absPaths))
		for i, p := range absPaths {
			rel, err := filepath.Rel(wd, p)
			if err != nil {
				relPaths[i] = p // Fallback to absolute path
			} else {
				relPaths[i] = rel
			}
		}
		return relPaths
	}

	report.Created = makeRelative(report.Created)
	report.Overwritten = makeRelative(report.Overwritten)
	report.Reloaded = makeRelative(report.Reloaded)
	for i, f := range report.Failed {
		if rel, err := filepath.Rel(wd, f.Path); err == nil {
			report.Failed[i].Path = rel
		}
	}
}
