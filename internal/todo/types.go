// Package todo loads, edits, and saves flat-file to-do lists.
package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoMatch is the sentinel wrapped by selector resolution failures.
// Callers can test for it with errors.Is.
var ErrNoMatch = errors.New("not found")

// Item represents a single entry in the list.
type Item struct {
	Text      string
	Done      bool
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// List is an ordered collection of items. An item's index is its
// position in the list: indexes are zero-based, never stored in memory,
// and renumber implicitly when an earlier item is removed.
type List struct {
	Items []Item
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.Items)
}

// Counts returns how many items are pending and done.
func (l *List) Counts() (pending, done int) {
	for i := range l.Items {
		if l.Items[i].Done {
			done++
		} else {
			pending++
		}
	}
	return pending, done
}

// Find resolves sel to an item index. Index selectors must be in range;
// text selectors match the first item whose text equals the selector
// ignoring case. Duplicate texts are allowed, so a text selector always
// picks the earliest match.
func (l *List) Find(sel Selector) (int, error) {
	if sel.numeric {
		if sel.index < len(l.Items) {
			return sel.index, nil
		}
		return -1, fmt.Errorf("item %q %w", sel.raw, ErrNoMatch)
	}
	for i := range l.Items {
		if strings.EqualFold(l.Items[i].Text, sel.raw) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("item %q %w", sel.raw, ErrNoMatch)
}

// Add appends a new item and returns its index. Texts are not required
// to be unique.
func (l *List) Add(text string) int {
	now := time.Now().UTC()
	l.Items = append(l.Items, Item{
		Text:      text,
		CreatedAt: &now,
		UpdatedAt: &now,
	})
	return len(l.Items) - 1
}

// Remove deletes the item matched by sel and returns the removed item
// along with the index it occupied. Items after it shift down by one.
// On ErrNoMatch the list is unchanged.
func (l *List) Remove(sel Selector) (Item, int, error) {
	i, err := l.Find(sel)
	if err != nil {
		return Item{}, -1, err
	}
	removed := l.Items[i]
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
	return removed, i, nil
}

// SetText replaces the text of the item matched by sel and sets
// updated_at. The item keeps its position and its done flag.
func (l *List) SetText(sel Selector, text string) (Item, int, error) {
	i, err := l.Find(sel)
	if err != nil {
		return Item{}, -1, err
	}
	now := time.Now().UTC()
	l.Items[i].Text = text
	l.Items[i].UpdatedAt = &now
	return l.Items[i], i, nil
}

// Toggle flips the done flag of the item matched by sel and sets
// updated_at.
func (l *List) Toggle(sel Selector) (Item, int, error) {
	i, err := l.Find(sel)
	if err != nil {
		return Item{}, -1, err
	}
	now := time.Now().UTC()
	l.Items[i].Done = !l.Items[i].Done
	l.Items[i].UpdatedAt = &now
	return l.Items[i], i, nil
}
