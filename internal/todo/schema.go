package todo

// bundledStoreSchema is the embedded JSON Schema for the JSON store
// document.
const bundledStoreSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Todos Store",
  "type": "object",
  "additionalProperties": false,
  "required": ["schema_version", "items"],
  "properties": {
    "schema_version": { "type": "integer", "const": 1 },
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["index", "text"],
        "properties": {
          "index": { "type": "integer", "minimum": 0 },
          "text": { "type": "string", "minLength": 1 },
          "done": { "type": "boolean" },
          "created_at": { "type": "string", "format": "date-time" },
          "updated_at": { "type": "string", "format": "date-time" }
        }
      }
    }
  }
}`

// BundledSchema returns the embedded store schema JSON content.
func BundledSchema() ([]byte, error) {
	return []byte(bundledStoreSchema), nil
}
