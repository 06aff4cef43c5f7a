package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/sokinpui/scaffold/cli"
	"github.com/sokinpui/scaffold/internal/logger"
	"github.com/sokinpui/scaffold/internal/tui"
	"github.com/sokinpui/scaffold/internal/ui"
	"github.com/sokinpui/scaffold/scaffold"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	logger.SetVerbose(cfg.Verbose)

	app, err := scaffold.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// The spinner only makes sense when a person is watching.
	if cfg.NoAnimation || !term.IsTerminal(int(os.Stdout.Fd())) {
		runPlain(app)
		return
	}

	p := tea.NewProgram(tui.New(app))
	app.SetProgressCallback(func(current, total int, path string) {
		p.Send(tui.Progress(current, total, path))
	})
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		os.Exit(1)
	}
}

func runPlain(app *scaffold.App) {
	ui.Header("--- Starting Project Generator ---")
	ui.Info("Reading from: '%s'", app.SourceName())

	started := false
	app.SetProgressCallback(func(_, total int, path string) {
		if !started {
			started = true
			ui.Info("Found %d file block(s). Starting project generation...", total)
		}
		ui.Progress(path)
	})

	report, err := app.Execute()
	if err != nil {
		var detailed *scaffold.DetailedError
		if errors.As(err, &detailed) {
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
		}
		ui.Error("Error: %v", err)
		os.Exit(1)
	}
	ui.PrintReport(report)
}
