package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load builds the configuration by layering sources, lowest priority
// first: defaults, the user config file (~/.todos/todos.toml or the OS
// config dir), a project config file (todos.toml or .todos.toml in the
// current directory), environment variables, and finally CLI flags.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	files := []struct {
		scope string
		path  string
	}{
		{"user", findUserConfigFile()},
		{"project", findProjectConfigFile()},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if err := loadConfigFile(cfg, f.path); err != nil {
			return nil, fmt.Errorf("loading %s config file %s: %w", f.scope, f.path, err)
		}
	}

	loadFromEnv(cfg)

	// Flags override everything that came before.
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

// loadConfigFile merges TOML config from the given file into cfg.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// finalizeConfig expands and absolutizes paths once all sources are merged.
func finalizeConfig(cfg *Config) error {
	cfg.StoreFile = expandPath(cfg.StoreFile)
	cfg.SchemaFile = expandPath(cfg.SchemaFile)
	cfg.JournalFile = expandPath(cfg.JournalFile)

	if cfg.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.WorkDir = wd
	}

	// Relative paths are anchored at the working directory so commands
	// resolve the same files no matter where the binary was started.
	cfg.StoreFile = absolutize(cfg.StoreFile, cfg.WorkDir)
	cfg.SchemaFile = absolutize(cfg.SchemaFile, cfg.WorkDir)
	cfg.JournalFile = absolutize(cfg.JournalFile, cfg.WorkDir)

	return nil
}

// absolutize joins p onto base unless p is already absolute or unset.
func absolutize(p, base string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
