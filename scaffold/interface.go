package scaffold

import (
	"fmt"

	"github.com/sokinpui/scaffold/cli"
	"github.com/sokinpui/scaffold/internal/parser"
	"github.com/sokinpui/scaffold/model"
)

// Config for using scaffold as a library.
type Config struct {
	// Dir is the target root for relative paths. Defaults to the working directory.
	Dir string
	// Format is "markers" (default) or "markdown".
	Format string
	// Only write files with these extensions (e.g., 'py', '.js').
	Extensions []string
}

func (c Config) toCLI() *cli.Config {
	cfg := cli.Default()
	if c.Dir != "" {
		cfg.Dir = c.Dir
	}
	if c.Format != "" {
		cfg.Format = c.Format
	}
	cfg.Extensions = cli.NormalizeExtensions(append([]string(nil), c.Extensions...))
	return cfg
}

// Parse returns the file blocks of a marker-format document in order.
func Parse(document string) []model.FileBlock {
	return parser.Parse(document)
}

// WriteBlocks materializes blocks under root and reports the outcome.
// Paths in the report are relative to the working directory.
func WriteBlocks(blocks []model.FileBlock, root string) (model.Report, error) {
	app, err := New(Config{Dir: root}.toCLI())
	if err != nil {
		return model.Report{}, fmt.Errorf("failed to initialize scaffold app: %w", err)
	}
	report := app.Apply(blocks)
	app.relativizeReportPaths(&report)
	return report, nil
}

// Materialize parses content and writes its file blocks.
func Materialize(content string, config Config) (model.Report, error) {
	if f := config.Format; f != "" && f != cli.FormatMarkers && f != cli.FormatMarkdown {
		return model.Report{}, fmt.Errorf("unknown format '%s'", f)
	}
	app, err := New(config.toCLI())
	if err != nil {
		return model.Report{}, fmt.Errorf("failed to initialize scaffold app: %w", err)
	}
	return app.processAndApply(content)
}
