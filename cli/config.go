package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sokinpui/scaffold/internal/logger"
)

// FileConfig mirrors Config for the YAML config file. Unset fields keep
// their defaults.
type FileConfig struct {
	Input       string   `yaml:"input"`
	Dir         string   `yaml:"dir"`
	Format      string   `yaml:"format"`
	Extensions  []string `yaml:"extensions"`
	Nvim        bool     `yaml:"nvim"`
	NoAnimation bool     `yaml:"no_animation"`
	Verbose     bool     `yaml:"verbose"`
}

// LoadFile reads a YAML config file. A missing file yields an empty
// FileConfig unless required is set.
func LoadFile(path string, required bool) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			logger.Debug("No config file found at %s, using defaults", path)
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse yaml %s: %w", path, err)
	}
	logger.Debug("Config file found: %s", path)
	return &fc, nil
}

func (fc *FileConfig) applyTo(cfg *Config) {
	if fc.Input != "" {
		cfg.Input = fc.Input
	}
	if fc.Dir != "" {
		cfg.Dir = fc.Dir
	}
	if fc.Format != "" {
		cfg.Format = fc.Format
	}
	if len(fc.Extensions) > 0 {
		cfg.Extensions = append([]string(nil), fc.Extensions...)
	}
	cfg.Nvim = cfg.Nvim || fc.Nvim
	cfg.NoAnimation = cfg.NoAnimation || fc.NoAnimation
	cfg.Verbose = cfg.Verbose || fc.Verbose
}
