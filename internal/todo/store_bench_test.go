package todo

import (
	"fmt"
	"os"
	"testing"
	"time"
)

// BenchmarkLoad benchmarks store loading and parsing.
func BenchmarkLoad(b *testing.B) {
	content := `{
  "schema_version": 1,
  "items": [
    {"index": 0, "text": "buy milk", "done": false},
    {"index": 1, "text": "water plants", "done": true},
    {"index": 2, "text": "file taxes", "done": false}
  ]
}`
	tmpDir := b.TempDir()
	path := tmpDir + "/todos.json"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		b.Fatalf("Failed to create test file: %v", err)
	}
	s := NewStore(path)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Load(); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

// BenchmarkLoadLarge benchmarks store loading and parsing with 100 items.
func BenchmarkLoadLarge(b *testing.B) {
	// Create a large store file with 100 items
	var itemsJSON string
	for i := 0; i < 100; i++ {
		itemsJSON += fmt.Sprintf(`{"index": %d, "text": "item %d", "done": %t}`,
			i, i, i%3 == 0)
		if i < 99 {
			itemsJSON += ","
		}
	}

	content := fmt.Sprintf(`{
  "schema_version": 1,
  "items": [%s]
}`, itemsJSON)

	tmpDir := b.TempDir()
	path := tmpDir + "/todos.json"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		b.Fatalf("Failed to create test file: %v", err)
	}
	s := NewStore(path)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Load(); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

// BenchmarkLoadCSV benchmarks store loading from the CSV format.
func BenchmarkLoadCSV(b *testing.B) {
	content := "index,text,done,created_at,updated_at\n" +
		"0,buy milk,false,,\n" +
		"1,water plants,true,,\n" +
		"2,file taxes,false,,\n"
	tmpDir := b.TempDir()
	path := tmpDir + "/todos.csv"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		b.Fatalf("Failed to create test file: %v", err)
	}
	s := NewStore(path)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Load(); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

// BenchmarkSave benchmarks store saving with 2-space indentation.
func BenchmarkSave(b *testing.B) {
	l := &List{Items: createTestItems(3)}
	tmpDir := b.TempDir()
	s := NewStore(tmpDir + "/todos.json")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Save(l); err != nil {
			b.Fatalf("Save failed: %v", err)
		}
	}
}

// BenchmarkFind benchmarks text selector resolution over 100 items.
func BenchmarkFind(b *testing.B) {
	l := &List{Items: createTestItems(100)}
	sel := ParseSelector("item 50")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := l.Find(sel); err != nil {
			b.Fatalf("Find failed: %v", err)
		}
	}
}

// BenchmarkValidate benchmarks schema validation of a 50-item store.
func BenchmarkValidate(b *testing.B) {
	l := &List{Items: createTestItems(50)}
	tmpDir := b.TempDir()
	s := NewStore(tmpDir + "/todos.json")
	if err := s.Save(l); err != nil {
		b.Fatalf("Save failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := s.Validate(ValidationOptions{})
		if !result.Valid {
			b.Fatal("Validation failed")
		}
	}
}

// Helper function to create test items
func createTestItems(n int) []Item {
	items := make([]Item, n)
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		items[i] = Item{
			Text: fmt.Sprintf("item %d", i),
			Done: i%3 == 0,
		}
		if i%2 == 0 {
			items[i].CreatedAt = &now
			items[i].UpdatedAt = &now
		}
	}
	return items
}
