package todo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStoreFile(t *testing.T, name, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return NewStore(path)
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name: "valid store",
			content: `{
  "schema_version": 1,
  "items": [
    {"index": 0, "text": "buy milk", "done": false},
    {"index": 1, "text": "water plants", "done": true, "created_at": "2026-08-25T10:00:00Z"}
  ]
}`,
			wantErr: false,
		},
		{
			name:    "valid empty items",
			content: `{"schema_version": 1, "items": []}`,
			wantErr: false,
		},
		{
			name:    "wrong schema_version",
			content: `{"schema_version": 2, "items": []}`,
			wantErr: true,
		},
		{
			name:    "missing items",
			content: `{"schema_version": 1}`,
			wantErr: true,
		},
		{
			name:    "empty text",
			content: `{"schema_version": 1, "items": [{"index": 0, "text": ""}]}`,
			wantErr: true,
		},
		{
			name:    "negative index",
			content: `{"schema_version": 1, "items": [{"index": -1, "text": "x"}]}`,
			wantErr: true,
		},
		{
			name:    "done not boolean",
			content: `{"schema_version": 1, "items": [{"index": 0, "text": "x", "done": "yes"}]}`,
			wantErr: true,
		},
		{
			name:    "unknown top-level field",
			content: `{"schema_version": 1, "items": [], "next_id": 4}`,
			wantErr: true,
		},
		{
			name:    "not json at all",
			content: `{broken`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := writeStoreFile(t, "todos.json", tt.content)
			result := s.Validate(ValidationOptions{})
			if result.Valid == tt.wantErr {
				t.Errorf("Validate() valid = %v, want error %v", result.Valid, tt.wantErr)
				for _, e := range result.Errors {
					t.Logf("error: %v", e)
				}
			}
			if !result.UsedSchema {
				t.Error("Expected UsedSchema to be true")
			}
		})
	}
}

func TestValidateIndexMismatchWarning(t *testing.T) {
	s := writeStoreFile(t, "todos.json", `{
  "schema_version": 1,
  "items": [
    {"index": 3, "text": "buy milk"}
  ]
}`)

	result := s.Validate(ValidationOptions{})
	if !result.Valid {
		t.Fatalf("Valid should be true, errors: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("Expected a warning for the index mismatch")
	}
	if !strings.Contains(result.Warnings[0], "does not match position") {
		t.Errorf("warning: got %q", result.Warnings[0])
	}
}

func TestValidateWithSchemaFile(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := filepath.Join(tmpDir, "schema.json")

	// A stricter schema that caps the list at one item
	schema := `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["schema_version", "items"],
  "properties": {
    "schema_version": {"type": "integer", "const": 1},
    "items": {"type": "array", "maxItems": 1}
  }
}`
	if err := os.WriteFile(schemaPath, []byte(schema), 0644); err != nil {
		t.Fatalf("Failed to write schema: %v", err)
	}

	storePath := filepath.Join(tmpDir, "todos.json")
	content := `{
  "schema_version": 1,
  "items": [
    {"index": 0, "text": "one"},
    {"index": 1, "text": "two"}
  ]
}`
	if err := os.WriteFile(storePath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write store: %v", err)
	}

	result := NewStore(storePath).Validate(ValidationOptions{SchemaPath: schemaPath})
	if !result.UsedSchema {
		t.Error("Expected UsedSchema to be true")
	}
	if result.Valid {
		t.Error("Valid should be false under the stricter schema")
	}

	// The bundled schema accepts the same document
	result = NewStore(storePath).Validate(ValidationOptions{})
	if !result.Valid {
		t.Errorf("Valid should be true, errors: %v", result.Errors)
	}
}

func TestValidateWithSchemaMissingFile(t *testing.T) {
	s := writeStoreFile(t, "todos.json",
		`{"schema_version": 1, "items": [{"index": 0, "text": "x"}]}`)

	// Non-existent schema path should fall back to minimal validation
	result := s.Validate(ValidationOptions{SchemaPath: "/non/existent/schema.json"})
	if !result.Valid {
		t.Errorf("Valid should be true, got false")
	}
	if result.UsedSchema {
		t.Error("UsedSchema should be false when schema file not found")
	}
	if len(result.Warnings) == 0 {
		t.Error("Expected warnings when schema file not found")
	}
}

func TestValidateMinimalFallback(t *testing.T) {
	s := writeStoreFile(t, "todos.json",
		`{"schema_version": 2, "items": [{"index": 0, "text": ""}]}`)

	result := s.Validate(ValidationOptions{SchemaPath: "/non/existent/schema.json"})
	if result.UsedSchema {
		t.Error("UsedSchema should be false")
	}
	if result.Valid {
		t.Error("Valid should be false")
	}
	// Wrong schema_version plus empty text
	if len(result.Errors) != 2 {
		t.Errorf("errors: got %d, want 2", len(result.Errors))
	}
}

func TestValidateCSV(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "valid",
			content: "index,text,done,created_at,updated_at\n0,buy milk,false,,\n",
			wantErr: false,
		},
		{
			name:    "missing header",
			content: "0,buy milk,false,,\n",
			wantErr: true,
		},
		{
			name:    "bad done flag",
			content: "index,text,done,created_at,updated_at\n0,buy milk,maybe,,\n",
			wantErr: true,
		},
		{
			name:    "empty text",
			content: "index,text,done,created_at,updated_at\n0,,false,,\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := writeStoreFile(t, "todos.csv", tt.content)
			result := s.Validate(ValidationOptions{})
			if result.Valid == tt.wantErr {
				t.Errorf("Validate() valid = %v, want error %v", result.Valid, tt.wantErr)
			}
			if result.UsedSchema {
				t.Error("UsedSchema should be false for CSV stores")
			}
		})
	}
}

func TestValidateMissingStoreFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "todos.json"))

	result := s.Validate(ValidationOptions{})
	if result.Valid {
		t.Error("Valid should be false for a missing store file")
	}
	if len(result.Errors) == 0 {
		t.Error("Expected an error for a missing store file")
	}
}

func TestValidateEmptyStoreFile(t *testing.T) {
	s := writeStoreFile(t, "todos.json", "")

	result := s.Validate(ValidationOptions{})
	if !result.Valid {
		t.Error("Valid should be true for an empty store file")
	}
	if len(result.Warnings) == 0 {
		t.Error("Expected a warning for an empty store file")
	}
}

func TestBundledSchema(t *testing.T) {
	data, err := BundledSchema()
	if err != nil {
		t.Fatalf("BundledSchema failed: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("bundled schema is not valid JSON: %v", err)
	}
	if doc["title"] != "Todos Store" {
		t.Errorf("title: got %v, want Todos Store", doc["title"])
	}
}

func TestValidationErrorFormat(t *testing.T) {
	s := writeStoreFile(t, "todos.json",
		`{"schema_version": 1, "items": [{"index": 0, "text": ""}]}`)

	result := s.Validate(ValidationOptions{})
	if result.Valid {
		t.Fatal("Valid should be false")
	}

	// Errors carry a dotted path into the document
	found := false
	for _, err := range result.Errors {
		if strings.Contains(err.Error(), "items[0].text") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error mentioning items[0].text, got %v", result.Errors)
	}
}
