package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Todos configuration file
# Paths can be overridden by environment variables or CLI flags

# Item store file (relative to the working directory)
# The extension picks the format: .csv is CSV, anything else is JSON
store_file = "todos.json"

# JSON Schema used by validate and doctor (empty uses the bundled schema)
# schema_file = "todos.schema.json"

# Mutation journal (supports ~ expansion and %VAR% on Windows)
# Set to "" to disable journaling
journal_file = "~/.todos/history.jsonl"

# Logging
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
