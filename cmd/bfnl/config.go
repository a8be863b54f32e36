package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
)

const configFileName = "bfnl.toml"

// projectConfig mirrors bfnl.toml. Command-line flags override it.
type projectConfig struct {
	Interpreter interpreterConfig `toml:"interpreter"`
	Log         logConfig         `toml:"log"`
	Source      sourceConfig      `toml:"source"`
	REPL        replConfig        `toml:"repl"`

	// Dir is the directory holding bfnl.toml, or the start directory when
	// no file was found.
	Dir string `toml:"-"`
	// Path is empty when defaults are in use.
	Path string `toml:"-"`
}

type interpreterConfig struct {
	StepQuota int `toml:"step-quota"`
	MaxCells  int `toml:"max-cells"`
}

type logConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

type sourceConfig struct {
	Dirs []string `toml:"dirs"`
}

type replConfig struct {
	Prompt    string `toml:"prompt"`
	StepQuota int    `toml:"step-quota"`
}

const (
	defaultREPLPrompt    = "bfnl> "
	defaultREPLStepQuota = 1_000_000
)

func defaultConfig(dir string) *projectConfig {
	cfg := &projectConfig{Dir: dir}
	cfg.applyDefaults()
	return cfg
}

func (c *projectConfig) applyDefaults() {
	if len(c.Source.Dirs) == 0 {
		c.Source.Dirs = []string{"examples"}
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = defaultREPLPrompt
	}
	if c.REPL.StepQuota == 0 {
		c.REPL.StepQuota = defaultREPLStepQuota
	}
}

// loadConfig parses a bfnl.toml file.
func loadConfig(path string) (*projectConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", abs, err)
	}
	var cfg projectConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", abs, err)
	}
	if cfg.Interpreter.StepQuota < 0 || cfg.Interpreter.MaxCells < 0 || cfg.REPL.StepQuota < 0 {
		return nil, fmt.Errorf("%s: limits must not be negative", abs)
	}
	cfg.Dir = filepath.Dir(abs)
	cfg.Path = abs
	cfg.applyDefaults()
	return &cfg, nil
}

// findConfig walks up from startDir looking for bfnl.toml and falls back to
// defaults rooted at startDir.
func findConfig(startDir string) (*projectConfig, error) {
	start, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	dir := start
	for {
		path := filepath.Join(dir, configFileName)
		if _, err := os.Stat(path); err == nil {
			return loadConfig(path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("access %s: %w", path, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return defaultConfig(start), nil
		}
		dir = parent
	}
}

// resolveConfig loads an explicit config path or searches from startDir.
func resolveConfig(explicit, startDir string) (*projectConfig, error) {
	if explicit != "" {
		return loadConfig(explicit)
	}
	return findConfig(startDir)
}

// sourceDirs returns the configured script directories as absolute paths.
func (c *projectConfig) sourceDirs() []string {
	dirs := make([]string, 0, len(c.Source.Dirs))
	for _, d := range c.Source.Dirs {
		if filepath.IsAbs(d) {
			dirs = append(dirs, d)
			continue
		}
		dirs = append(dirs, filepath.Join(c.Dir, d))
	}
	return dirs
}

// resolveScript returns name when it exists, otherwise the first match in
// the configured source directories, trying the .bfnl extension too.
func resolveScript(name string, cfg *projectConfig) (string, error) {
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, name+scriptExt)
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return filepath.Abs(c)
		}
	}
	if !filepath.IsAbs(name) {
		for _, dir := range cfg.sourceDirs() {
			for _, c := range candidates {
				path := filepath.Join(dir, c)
				if info, err := os.Stat(path); err == nil && !info.IsDir() {
					return path, nil
				}
			}
		}
	}
	return "", fmt.Errorf("script %q not found (searched current directory and %v)", name, cfg.Source.Dirs)
}

func (c *projectConfig) logFile() *string {
	if c.Log.File == "" {
		return nil
	}
	path := c.Log.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.Dir, path)
	}
	return &path
}

func configureLogging(cfg *projectConfig) {
	commonlog.Configure(cfg.Log.Verbosity, cfg.logFile())
}
