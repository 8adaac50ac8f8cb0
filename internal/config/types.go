package config

// Default values.
const (
	DefaultStoreFile   = "todos.json"
	DefaultJournalFile = "~/.todos/history.jsonl"
)

// Config holds the full configuration for todos.
type Config struct {
	// Paths
	StoreFile   string `toml:"store_file"`
	SchemaFile  string `toml:"schema_file"`
	JournalFile string `toml:"journal_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Quiet suppresses console output below errors (flag only)
	Quiet bool `toml:"-"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.StoreFile = DefaultStoreFile
	cfg.JournalFile = DefaultJournalFile

	// SchemaFile stays empty: the bundled schema is used unless a
	// file is configured.
	cfg.SchemaFile = ""

	// Logging defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
}
