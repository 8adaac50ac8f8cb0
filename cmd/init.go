package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"todos/internal/config"
	"todos/internal/todo"
)

// initCommand creates a starter store file, an example config, and the
// schema file when one is configured.
func initCommand(cfg *config.Config, args []string) error {
	// Parse init-specific flags
	fs := flag.NewFlagSet("todos init", flag.ContinueOnError)
	force := fs.Bool("force", false, "Overwrite files that already exist")
	skipConfig := fs.Bool("skip-config", false, "Do not write todos.toml")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	store := storeFor(cfg)
	empty, err := store.Codec.Encode(nil)
	if err != nil {
		return fmt.Errorf("encode empty store: %w", err)
	}
	if err := initFile(store.Path, empty, *force); err != nil {
		return err
	}

	if cfg.SchemaFile != "" {
		schema, err := todo.BundledSchema()
		if err != nil {
			return fmt.Errorf("bundled schema: %w", err)
		}
		if err := initFile(cfg.SchemaFile, schema, *force); err != nil {
			return err
		}
	}

	if !*skipConfig {
		configPath := filepath.Join(cfg.WorkDir, "todos.toml")
		if err := initFile(configPath, []byte(config.ExampleConfig()), *force); err != nil {
			return err
		}
	}

	return nil
}

// initFile writes data to path unless the file already exists.
func initFile(path string, data []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Exists  %s (use -force to overwrite)\n", path)
			return nil
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("Created %s\n", path)
	return nil
}
