package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/scaffold/model"
)

var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	PathStyle    = lipgloss.NewStyle()
	FaintStyle   = lipgloss.NewStyle().Faint(true)
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects report output and diagnostics. Used by tests.
func SetOutput(out, errOut io.Writer) {
	stdout = out
	stderr = errOut
}

func Header(format string, a ...any) {
	fmt.Fprintln(stderr, HeaderStyle.Render(fmt.Sprintf(format, a...)))
}

func Info(format string, a ...any) {
	fmt.Fprintln(stderr, InfoStyle.Render(fmt.Sprintf(format, a...)))
}

func Success(format string, a ...any) {
	fmt.Fprintln(stderr, SuccessStyle.Render(fmt.Sprintf(format, a...)))
}

func Warning(format string, a ...any) {
	fmt.Fprintln(stderr, WarningStyle.Render(fmt.Sprintf(format, a...)))
}

func Error(format string, a ...any) {
	fmt.Fprintln(stderr, ErrorStyle.Render(fmt.Sprintf(format, a...)))
}

func Path(format string, a ...any) {
	fmt.Fprintln(stderr, "  "+PathStyle.Render(fmt.Sprintf(format, a...)))
}

// ProgressLine is the line shown as a block starts processing.
func ProgressLine(path string) string {
	return "-> Processing: " + path
}

// Progress prints the per-block progress line.
func Progress(path string) {
	fmt.Fprintln(stderr, ProgressLine(path))
}

// --- Report ---

// RenderReport formats a run's report for display.
func RenderReport(r model.Report) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
	}

	if r.Message != "" {
		line(WarningStyle.Render(r.Message))
	}
	for _, p := range r.Unterminated {
		line(WarningStyle.Render(fmt.Sprintf("Skipped unterminated block '%s': no end marker found.", p)))
	}
	if r.Found == 0 && r.Message != "" {
		return b.String()
	}

	line("")
	line(HeaderStyle.Render("--- Generation Report ---"))
	line(SuccessStyle.Render(fmt.Sprintf("Successfully created %d files.", r.Succeeded())))
	if len(r.Overwritten) > 0 {
		line(FaintStyle.Render(fmt.Sprintf("%d of them overwrote existing files:", len(r.Overwritten))))
		for _, p := range r.Overwritten {
			line("  - " + PathStyle.Render(p))
		}
	}

	if len(r.Failed) > 0 {
		line(ErrorStyle.Render(fmt.Sprintf("Failed to create %d files:", len(r.Failed))))
		for _, f := range r.Failed {
			line("  - " + PathStyle.Render(f.Path))
			line("    Reason: " + f.Reason)
		}
	} else {
		line("All files generated without errors.")
	}
	if len(r.Reloaded) > 0 {
		line(InfoStyle.Render(fmt.Sprintf("Reloaded %d buffer(s) in Neovim.", len(r.Reloaded))))
	}
	return b.String()
}

// PrintReport writes the report to stdout.
func PrintReport(r model.Report) {
	fmt.Fprint(stdout, RenderReport(r))
}
