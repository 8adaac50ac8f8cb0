// Package cmd implements the CLI command structure for todos.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"todos/internal/config"
	"todos/internal/logging"
	"todos/internal/todo"
	"todos/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the todos CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todos", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := newLogger(cfg)

	// Determine the subcommand
	// If no args or first arg is a flag, use "show" as default
	subcommand := "show"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		// Check if it looks like a subcommand (doesn't start with -)
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "show", "ls":
		return showCommand(cfg, remainingArgs)
	case "add":
		return addCommand(logger, cfg, remainingArgs)
	case "remove", "rm":
		return removeCommand(logger, cfg, remainingArgs)
	case "update":
		return updateCommand(logger, cfg, remainingArgs)
	case "done", "toggle":
		return doneCommand(logger, cfg, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "validate":
		return validateCommand(cfg, remainingArgs)
	case "fmt":
		return fmtCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "history":
		return historyCommand(ctx, cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newLogger builds the console logger for this invocation. Quiet keeps
// errors only so listings on stdout stay scriptable.
func newLogger(cfg *config.Config) *log.Logger {
	level := cfg.LogLevel
	if cfg.Quiet {
		level = "error"
	}
	return logging.NewConsoleLoggerFromConfig(level, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

// storeFor returns the item store configured for this invocation.
func storeFor(cfg *config.Config) *todo.Store {
	return todo.NewStore(cfg.StoreFile)
}

// recordChange appends a journal entry for a successful mutation.
// Journal failures are warnings: the store save already happened.
func recordChange(logger *log.Logger, cfg *config.Config, e logging.Entry) {
	j := logging.NewJournal(cfg.JournalFile)
	if !j.Enabled() {
		return
	}
	if err := j.Append(e); err != nil {
		logger.Warn("journal append failed", "path", cfg.JournalFile, "error", err)
	}
}

// showCommand lists items, one line per item with its index.
func showCommand(cfg *config.Config, args []string) error {
	// Parse show-specific flags
	fs := flag.NewFlagSet("todos show", flag.ContinueOnError)
	pendingOnly := fs.Bool("pending", false, "Show only pending items")
	doneOnly := fs.Bool("done", false, "Show only completed items")
	asJSON := fs.Bool("json", false, "Print the store as canonical JSON")
	verbose := fs.Bool("v", false, "Show timestamps")

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

	list, err := store.Load()
	if err != nil {
		return err
	}

	if *asJSON {
		// Filters do not apply here: the output is the whole store,
		// so indexes in the document stay positional.
		data, err := todo.JSON.Encode(list.Items)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	// An empty store prints nothing.
	if list.Len() == 0 {
		return nil
	}

	printed := 0
	for i, item := range list.Items {
		if *pendingOnly && item.Done {
			continue
		}
		if *doneOnly && !item.Done {
			continue
		}
		printItem(i, item, *verbose)
		printed++
	}

	if printed == 0 {
		if *pendingOnly {
			fmt.Println("No pending items.")
		} else {
			fmt.Println("No completed items.")
		}
		return nil
	}

	pending, done := list.Counts()
	fmt.Println()
	fmt.Printf("%d items: %d pending, %d done\n", list.Len(), pending, done)
	return nil
}

// printItem prints a single item line, optionally with timestamps.
func printItem(index int, item todo.Item, verbose bool) {
	mark := " "
	if item.Done {
		mark = "x"
	}
	fmt.Printf("%4d  [%s] %s\n", index, mark, item.Text)
	if verbose {
		if item.CreatedAt != nil {
			fmt.Printf("      created %s\n", item.CreatedAt.Format(time.RFC3339))
		}
		if item.UpdatedAt != nil {
			fmt.Printf("      updated %s\n", item.UpdatedAt.Format(time.RFC3339))
		}
	}
}

// addCommand appends a new item to the store.
func addCommand(logger *log.Logger, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todos add", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		return fmt.Errorf("add requires item text")
	}

	store := storeFor(cfg)
	list, err := store.Load()
	if err != nil {
		return err
	}

	index := list.Add(text)
	if err := store.Save(list); err != nil {
		return err
	}
	logger.Debug("item added", "index", index, "path", store.Path)
	recordChange(logger, cfg, logging.Entry{Op: logging.OpAdd, Index: index, Text: text})

	fmt.Printf("Added [%d]: %s\n", index, text)
	return nil
}

// removeCommand deletes the first item matching the selector.
func removeCommand(logger *log.Logger, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todos remove", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if raw == "" {
		return fmt.Errorf("remove requires an index or item text")
	}

	store := storeFor(cfg)
	list, err := store.Load()
	if err != nil {
		return err
	}

	item, index, err := list.Remove(todo.ParseSelector(raw))
	if err != nil {
		return err
	}
	if err := store.Save(list); err != nil {
		return err
	}
	logger.Debug("item removed", "index", index, "path", store.Path)
	recordChange(logger, cfg, logging.Entry{Op: logging.OpRemove, Index: index, Text: item.Text})

	fmt.Printf("Removed [%d]: %s\n", index, item.Text)
	return nil
}

// updateCommand replaces the text of the first item matching the selector.
func updateCommand(logger *log.Logger, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todos update", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) < 2 {
		return fmt.Errorf("update requires a selector and the new text")
	}
	raw := remaining[0]
	text := strings.TrimSpace(strings.Join(remaining[1:], " "))
	if text == "" {
		return fmt.Errorf("update requires non-empty text")
	}

	store := storeFor(cfg)
	list, err := store.Load()
	if err != nil {
		return err
	}

	item, index, err := list.SetText(todo.ParseSelector(raw), text)
	if err != nil {
		return err
	}
	if err := store.Save(list); err != nil {
		return err
	}
	logger.Debug("item updated", "index", index, "path", store.Path)
	recordChange(logger, cfg, logging.Entry{Op: logging.OpUpdate, Index: index, Text: item.Text})

	fmt.Printf("Updated [%d]: %s\n", index, item.Text)
	return nil
}

// doneCommand toggles the done flag of the first item matching the selector.
func doneCommand(logger *log.Logger, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todos done", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if raw == "" {
		return fmt.Errorf("done requires an index or item text")
	}

	store := storeFor(cfg)
	list, err := store.Load()
	if err != nil {
		return err
	}

	item, index, err := list.Toggle(todo.ParseSelector(raw))
	if err != nil {
		return err
	}
	if err := store.Save(list); err != nil {
		return err
	}
	logger.Debug("item toggled", "index", index, "done", item.Done, "path", store.Path)
	done := item.Done
	recordChange(logger, cfg, logging.Entry{Op: logging.OpToggle, Index: index, Text: item.Text, Done: &done})

	if item.Done {
		fmt.Printf("Done [%d]: %s\n", index, item.Text)
	} else {
		fmt.Printf("Reopened [%d]: %s\n", index, item.Text)
	}
	return nil
}

// historyCommand tails the mutation journal.
func historyCommand(ctx context.Context, cfg *config.Config, args []string) error {
	// Parse history-specific flags
	fs := flag.NewFlagSet("todos history", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the journal (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the journal (like tail -f)")
	n := fs.Int("n", 0, "Number of entries to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.JournalFile == "" {
		return fmt.Errorf("journaling is disabled, set journal_file to enable it")
	}
	if _, err := os.Stat(cfg.JournalFile); os.IsNotExist(err) {
		fmt.Println("No history yet.")
		return nil
	}

	fmt.Printf("Journal: %s\n", cfg.JournalFile)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.TailJournal(ctx, os.Stdout, cfg.JournalFile, *n, *follow)
}

// tuiCommand launches the TUI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todos tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		cfg.StoreFile = remaining[0]
	}

	return ui.RunTUI(ctx, cfg)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("todos version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Todos - A minimal command line to-do list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todos [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  show [file]     List items (default command)")
	fmt.Fprintln(w, "  add <text>      Add a new item")
	fmt.Fprintln(w, "  done <sel>      Toggle an item between pending and done")
	fmt.Fprintln(w, "  update <sel> <text>  Replace an item's text")
	fmt.Fprintln(w, "  remove <sel>    Remove an item")
	fmt.Fprintln(w, "  init            Create a starter store and config file")
	fmt.Fprintln(w, "  validate [file] Validate the store against its schema")
	fmt.Fprintln(w, "  fmt [file]      Print or rewrite the store in canonical form")
	fmt.Fprintln(w, "  doctor          Check config, store, schema, and journal")
	fmt.Fprintln(w, "  history         Show the mutation journal")
	fmt.Fprintln(w, "  tui [file]      Launch terminal UI")
	fmt.Fprintln(w, "  version         Show version information")
	fmt.Fprintln(w, "  help            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Selectors are a zero-based index or the exact item text")
	fmt.Fprintln(w, "(case-insensitive). All-digit selectors always match by index.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show Options (use with 'show' command):")
	fmt.Fprintln(w, "  -pending")
	fmt.Fprintln(w, "        Show only pending items")
	fmt.Fprintln(w, "  -done")
	fmt.Fprintln(w, "        Show only completed items")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print the store as canonical JSON")
	fmt.Fprintln(w, "  -v    Show timestamps")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Init Options (use with 'init' command):")
	fmt.Fprintln(w, "  -force")
	fmt.Fprintln(w, "        Overwrite files that already exist")
	fmt.Fprintln(w, "  -skip-config")
	fmt.Fprintln(w, "        Do not write todos.toml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fmt Options (use with 'fmt' command):")
	fmt.Fprintln(w, "  -check")
	fmt.Fprintln(w, "        Exit non-zero when the store is not canonically formatted")
	fmt.Fprintln(w, "  -write")
	fmt.Fprintln(w, "        Rewrite the store file in place")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "History Options (use with 'history' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the journal (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of entries to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options (use with 'doctor' command):")
	fmt.Fprintln(w, "  -v    Verbose output")
}
