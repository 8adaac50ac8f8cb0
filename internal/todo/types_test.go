package todo

import (
	"errors"
	"testing"
)

func TestAdd(t *testing.T) {
	l := &List{}

	idx := l.Add("buy milk")
	if idx != 0 {
		t.Errorf("Add index: got %d, want 0", idx)
	}
	idx = l.Add("water plants")
	if idx != 1 {
		t.Errorf("Add index: got %d, want 1", idx)
	}

	if l.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", l.Len())
	}
	if l.Items[0].Text != "buy milk" {
		t.Errorf("Text: got %q, want %q", l.Items[0].Text, "buy milk")
	}
	if l.Items[1].Done {
		t.Error("new items should start pending")
	}
	if l.Items[1].CreatedAt == nil {
		t.Error("CreatedAt should be set")
	}
	if l.Items[1].UpdatedAt == nil {
		t.Error("UpdatedAt should be set")
	}
}

func TestAddAllowsDuplicateTexts(t *testing.T) {
	l := &List{}
	l.Add("buy milk")

	idx := l.Add("buy milk")
	if idx != 1 {
		t.Errorf("Add index: got %d, want 1", idx)
	}
	if l.Len() != 2 {
		t.Errorf("Len: got %d, want 2", l.Len())
	}
}

func TestFind(t *testing.T) {
	l := &List{Items: []Item{
		{Text: "buy milk"},
		{Text: "water plants"},
		{Text: "Buy Milk"},
	}}

	tests := []struct {
		name     string
		selector string
		want     int
		wantErr  bool
	}{
		{name: "by index", selector: "1", want: 1},
		{name: "by text", selector: "water plants", want: 1},
		{name: "case-insensitive text", selector: "BUY MILK", want: 0},
		{name: "first match wins", selector: "buy milk", want: 0},
		{name: "index out of range", selector: "3", wantErr: true},
		{name: "unknown text", selector: "walk dog", wantErr: true},
		{name: "partial text does not match", selector: "milk", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Find(ParseSelector(tt.selector))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Find(%q) should return error", tt.selector)
				}
				if !errors.Is(err, ErrNoMatch) {
					t.Errorf("error should wrap ErrNoMatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Find(%q) failed: %v", tt.selector, err)
			}
			if got != tt.want {
				t.Errorf("Find(%q): got %d, want %d", tt.selector, got, tt.want)
			}
		})
	}
}

func TestFindErrorMessage(t *testing.T) {
	l := &List{}

	_, err := l.Find(ParseSelector("walk dog"))
	if err == nil {
		t.Fatal("Find on empty list should return error")
	}
	if got, want := err.Error(), `item "walk dog" not found`; got != want {
		t.Errorf("error: got %q, want %q", got, want)
	}
}

func TestRemove(t *testing.T) {
	l := &List{Items: []Item{
		{Text: "first"},
		{Text: "second"},
		{Text: "third"},
	}}

	removed, idx, err := l.Remove(ParseSelector("1"))
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed.Text != "second" {
		t.Errorf("removed text: got %q, want %q", removed.Text, "second")
	}
	if idx != 1 {
		t.Errorf("removed index: got %d, want 1", idx)
	}

	// Later items shift down by one
	if l.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", l.Len())
	}
	if l.Items[1].Text != "third" {
		t.Errorf("Items[1]: got %q, want %q", l.Items[1].Text, "third")
	}

	// Remove by text, case-insensitive
	if _, _, err := l.Remove(ParseSelector("FIRST")); err != nil {
		t.Fatalf("Remove by text failed: %v", err)
	}
	if l.Len() != 1 || l.Items[0].Text != "third" {
		t.Errorf("remaining items: got %+v, want [third]", l.Items)
	}

	// A failed remove leaves the list unchanged
	if _, _, err := l.Remove(ParseSelector("9")); !errors.Is(err, ErrNoMatch) {
		t.Errorf("Remove(9) error: got %v, want ErrNoMatch", err)
	}
	if l.Len() != 1 {
		t.Errorf("Len after failed remove: got %d, want 1", l.Len())
	}
}

func TestSetText(t *testing.T) {
	l := &List{Items: []Item{
		{Text: "first"},
		{Text: "second", Done: true},
	}}

	item, idx, err := l.SetText(ParseSelector("second"), "second, revised")
	if err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("index: got %d, want 1", idx)
	}
	if item.Text != "second, revised" {
		t.Errorf("Text: got %q, want %q", item.Text, "second, revised")
	}
	if !l.Items[1].Done {
		t.Error("Done flag should survive a text update")
	}
	if l.Items[1].UpdatedAt == nil {
		t.Error("UpdatedAt should be set")
	}
	if l.Items[0].Text != "first" {
		t.Errorf("Items[0]: got %q, want %q", l.Items[0].Text, "first")
	}

	// Non-existing item
	if _, _, err := l.SetText(ParseSelector("missing"), "x"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("SetText error: got %v, want ErrNoMatch", err)
	}
}

func TestToggle(t *testing.T) {
	l := &List{Items: []Item{{Text: "first"}}}

	item, _, err := l.Toggle(ParseSelector("0"))
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !item.Done {
		t.Error("Done: got false, want true")
	}
	if l.Items[0].UpdatedAt == nil {
		t.Error("UpdatedAt should be set")
	}

	// Toggling again reopens the item
	item, _, err = l.Toggle(ParseSelector("first"))
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if item.Done {
		t.Error("Done: got true, want false")
	}

	// Non-existing item
	if _, _, err := l.Toggle(ParseSelector("5")); !errors.Is(err, ErrNoMatch) {
		t.Errorf("Toggle error: got %v, want ErrNoMatch", err)
	}
}

func TestCounts(t *testing.T) {
	l := &List{Items: []Item{
		{Text: "a"},
		{Text: "b", Done: true},
		{Text: "c", Done: true},
	}}

	pending, done := l.Counts()
	if pending != 1 {
		t.Errorf("pending: got %d, want 1", pending)
	}
	if done != 2 {
		t.Errorf("done: got %d, want 2", done)
	}
}
