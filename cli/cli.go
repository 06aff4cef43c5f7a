package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

const (
	DefaultInput      = "01code.md"
	DefaultConfigFile = ".scaffold.yaml"

	FormatMarkers  = "markers"
	FormatMarkdown = "markdown"
)

// Config holds all the command-line flag values.
type Config struct {
	Input       string
	Clipboard   bool
	Dir         string
	Format      string
	Extensions  []string
	Nvim        bool
	NoAnimation bool
	Verbose     bool
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Input:  DefaultInput,
		Dir:    ".",
		Format: FormatMarkers,
	}
}

// ParseFlags parses os.Args.
func ParseFlags() (*Config, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs builds a Config from defaults, the YAML config file (if any) and
// args, in increasing order of precedence.
func ParseArgs(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("scaffold", pflag.ContinueOnError)
	set := Default()
	var configPath string

	flags.StringVar(&configPath, "config", DefaultConfigFile, "Path to a YAML config file.")
	flags.BoolVarP(&set.Clipboard, "clipboard", "c", false, "Read the document from the clipboard instead of a file.")
	flags.StringVarP(&set.Dir, "dir", "d", set.Dir, "Target directory for relative file paths.")
	flags.StringVarP(&set.Format, "format", "f", set.Format, "Document format: 'markers' (--- START OF FILE ---) or 'markdown' (backticked path + code fence).")
	flags.StringSliceVarP(&set.Extensions, "extension", "e", []string{}, "Only write files with these extensions (e.g., 'py', 'js').")
	flags.BoolVarP(&set.Nvim, "nvim", "n", false, "Reload changed buffers in a running Neovim ($NVIM or $NVIM_LISTEN_ADDRESS).")
	flags.BoolVar(&set.NoAnimation, "no-animation", false, "Disable the spinner and print plain progress lines.")
	flags.BoolVarP(&set.Verbose, "verbose", "v", false, "Print debug logs to stderr.")

	flags.Usage = func() {
		fmt.Println("Usage: scaffold [flags] [input]")
		fmt.Println("\nCreate a project tree from a document of '--- START OF FILE <path> ---' blocks.")
		fmt.Printf("Reads '%s' when no input is given; use '-' for stdin.\n", DefaultInput)
		fmt.Println("\nExample: scaffold -d my-app answer.md")
		fmt.Println("\nFlags:")
		fmt.Print(flags.FlagUsages())
	}
	// Errors are returned to the caller, which prints them once.
	flags.SetOutput(io.Discard)

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 1 {
		return nil, fmt.Errorf("error: expected at most one input, got %d", flags.NArg())
	}

	cfg := Default()
	fileCfg, err := LoadFile(configPath, flags.Changed("config"))
	if err != nil {
		return nil, err
	}
	fileCfg.applyTo(cfg)

	// Explicitly set flags win over the config file.
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "clipboard":
			cfg.Clipboard = set.Clipboard
		case "dir":
			cfg.Dir = set.Dir
		case "format":
			cfg.Format = set.Format
		case "extension":
			cfg.Extensions = set.Extensions
		case "nvim":
			cfg.Nvim = set.Nvim
		case "no-animation":
			cfg.NoAnimation = set.NoAnimation
		case "verbose":
			cfg.Verbose = set.Verbose
		}
	})
	if flags.NArg() == 1 {
		cfg.Input = flags.Arg(0)
	}

	if cfg.Format != FormatMarkers && cfg.Format != FormatMarkdown {
		return nil, fmt.Errorf("error: unknown format '%s' (want '%s' or '%s')", cfg.Format, FormatMarkers, FormatMarkdown)
	}

	cfg.Extensions = NormalizeExtensions(cfg.Extensions)
	return cfg, nil
}

// NormalizeExtensions prefixes each extension with a dot if missing.
func NormalizeExtensions(extensions []string) []string {
	for i, ext := range extensions {
		if len(ext) > 0 && ext[0] != '.' {
			extensions[i] = "." + ext
		}
	}
	return extensions
}
