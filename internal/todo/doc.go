// Package todo loads, edits, and saves flat-file to-do lists.
//
// The JSON store format (todos.json):
//
//	{
//	  "schema_version": 1,
//	  "items": [
//	    {
//	      "index": 0,
//	      "text": "buy milk",
//	      "done": false,
//	      "created_at": "2026-01-01T00:00:00Z",
//	      "updated_at": "2026-01-01T00:00:00Z"
//	    }
//	  ]
//	}
//
// The CSV store format carries the same records under a header row:
//
//	index,text,done,created_at,updated_at
//	0,buy milk,false,2026-01-01T00:00:00Z,2026-01-01T00:00:00Z
//
// Both formats sit behind the Codec interface and are chosen per file
// by extension, so swapping one for the other touches no store logic.
//
// The index field in either format is advisory: an item's real index is
// its position in the list, reconstructed on load and renumbered
// implicitly when an item before it is removed.
//
// # Selectors
//
// Items are addressed by selector. A selector made entirely of ASCII
// digits is a zero-based index; anything else matches the first item
// whose text equals it ignoring case. An item whose text is all digits
// can therefore only be reached by index.
//
// # Validation
//
// The package supports two validation modes for JSON stores:
//
// 1. JSON Schema validation (the bundled schema, or a file provided by
// the caller): full validation against JSON Schema draft-2020-12.
//
// 2. Minimal fallback validation (when no schema can be compiled):
// structural checks on schema_version, the items array, and per-record
// text and index fields.
//
// CSV stores are validated structurally by decoding.
//
// # File Format
//
// When writing JSON stores, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Stable key ordering (via JSON marshaling)
package todo
