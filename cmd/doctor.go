package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"todos/internal/config"
	"todos/internal/todo"
)

// knownLogLevels and knownLogFormats mirror what the logging package
// accepts; anything else silently falls back to defaults, so doctor
// flags it.
var knownLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
	"fatal":   true,
}

var knownLogFormats = map[string]bool{
	"text":   true,
	"logfmt": true,
	"json":   true,
}

// doctorCommand checks config, store, schema, and journal health.
func doctorCommand(cfg *config.Config, args []string) error {
	// Parse doctor-specific flags
	fs := flag.NewFlagSet("todos doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	store := storeFor(cfg)
	if len(remaining) == 1 {
		store = todo.NewStore(remaining[0])
	}

	fmt.Println("Todos Doctor")
	fmt.Println("============")
	fmt.Println()

	allOK := true

	// Check working directory
	fmt.Printf("Working directory: %s\n", cfg.WorkDir)
	if _, err := os.Stat(cfg.WorkDir); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Check config
	configOK := true
	fmt.Println("Config:")
	if knownLogLevels[strings.ToLower(cfg.LogLevel)] {
		fmt.Printf("  ✅ Log level: %s\n", cfg.LogLevel)
	} else {
		fmt.Printf("  ❌ Log level: %s (expected debug|info|warn|error|fatal)\n", cfg.LogLevel)
		configOK = false
	}
	if knownLogFormats[strings.ToLower(cfg.LogFormat)] {
		fmt.Printf("  ✅ Log format: %s\n", cfg.LogFormat)
	} else {
		fmt.Printf("  ❌ Log format: %s (expected text|logfmt|json)\n", cfg.LogFormat)
		configOK = false
	}
	fmt.Printf("  ✅ Store format: %s\n", store.Codec.Name())
	if !configOK {
		allOK = false
	}
	fmt.Println()

	// Check store file
	fmt.Printf("Store file: %s\n", store.Path)
	info, err := os.Stat(store.Path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (created on first add)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if info.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
		list, loadErr := store.Load()
		if loadErr != nil {
			fmt.Printf("  ❌ Load error: %v\n", loadErr)
			allOK = false
		} else {
			result := store.Validate(todo.ValidationOptions{SchemaPath: cfg.SchemaFile})
			for _, w := range result.Warnings {
				fmt.Printf("  ⚠️  %s\n", w)
			}
			if result.Valid {
				fmt.Println("  ✅ Valid")
			} else {
				fmt.Println("  ❌ Validation failed:")
				for _, e := range result.Errors {
					fmt.Printf("     - %v\n", e)
				}
				allOK = false
			}
			if *verbose {
				fmt.Printf("  Items: %d\n", list.Len())
				for i, item := range list.Items {
					mark := " "
					if item.Done {
						mark = "x"
					}
					fmt.Printf("    - %d [%s] %s\n", i, mark, item.Text)
				}
			}
		}
	}
	fmt.Println()

	// Check schema file
	if cfg.SchemaFile == "" {
		fmt.Println("Schema file: (bundled)")
		fmt.Println("  ✅ OK")
	} else {
		fmt.Printf("Schema file: %s\n", cfg.SchemaFile)
		if info, err := os.Stat(cfg.SchemaFile); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("  ⚠️  Not found (bundled schema is used)")
			} else {
				fmt.Printf("  ❌ Error: %v\n", err)
				allOK = false
			}
		} else if info.IsDir() {
			fmt.Println("  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Println("  ✅ OK")
		}
	}
	fmt.Println()

	// Check journal file
	if cfg.JournalFile == "" {
		fmt.Println("Journal file: (disabled)")
		fmt.Println("  ✅ OK")
	} else {
		fmt.Printf("Journal file: %s\n", cfg.JournalFile)
		if info, err := os.Stat(cfg.JournalFile); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("  ⚠️  Not found (created on first change)")
			} else {
				fmt.Printf("  ❌ Error: %v\n", err)
				allOK = false
			}
		} else if info.IsDir() {
			fmt.Println("  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Println("  ✅ OK")
		}
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Todos may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// validateCommand validates the store file and reports the result.
func validateCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todos validate", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	store := storeFor(cfg)
	if len(remaining) == 1 {
		store = todo.NewStore(remaining[0])
	}

	result := store.Validate(todo.ValidationOptions{SchemaPath: cfg.SchemaFile})
	for _, w := range result.Warnings {
		fmt.Printf("⚠️  %s\n", w)
	}
	if !result.Valid {
		fmt.Printf("❌ %s is invalid:\n", store.Path)
		for _, e := range result.Errors {
			fmt.Printf("  - %v\n", e)
		}
		return fmt.Errorf("validation failed")
	}
	fmt.Printf("✅ %s is valid\n", store.Path)
	return nil
}

// fmtCommand re-encodes the store in canonical form. By default the
// canonical document goes to stdout; -write rewrites the file and
// -check only reports.
func fmtCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todos fmt", flag.ContinueOnError)
	check := fs.Bool("check", false, "Exit non-zero when the store is not canonically formatted")
	write := fs.Bool("write", false, "Rewrite the store file in place")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	store := storeFor(cfg)
	if len(remaining) == 1 {
		store = todo.NewStore(remaining[0])
	}

	raw, err := os.ReadFile(store.Path)
	if err != nil {
		return fmt.Errorf("read todos file: %w", err)
	}

	// Whitespace-only files load as an empty list, so they format to one.
	var items []todo.Item
	if len(bytes.TrimSpace(raw)) > 0 {
		items, err = store.Codec.Decode(raw)
		if err != nil {
			return fmt.Errorf("parse todos file: %w", err)
		}
	}
	canonical, err := store.Codec.Encode(items)
	if err != nil {
		return fmt.Errorf("marshal todos file: %w", err)
	}

	switch {
	case *check:
		if !bytes.Equal(raw, canonical) {
			return fmt.Errorf("%s is not canonically formatted (run 'todos fmt -write')", store.Path)
		}
		fmt.Printf("✅ %s is canonically formatted\n", store.Path)
		return nil
	case *write:
		if bytes.Equal(raw, canonical) {
			fmt.Printf("%s already canonical\n", store.Path)
			return nil
		}
		if err := os.WriteFile(store.Path, canonical, 0644); err != nil {
			return fmt.Errorf("write todos file: %w", err)
		}
		fmt.Printf("Rewrote %s\n", store.Path)
		return nil
	default:
		_, err := os.Stdout.Write(canonical)
		return err
	}
}
