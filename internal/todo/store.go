package todo

import (
	"bytes"
	"fmt"
	"os"
)

// Store binds an item file to the codec implied by its path.
type Store struct {
	Path  string
	Codec Codec
}

// NewStore returns a store for path, selecting the codec from the file
// extension.
func NewStore(path string) *Store {
	return &Store{Path: path, Codec: CodecForPath(path)}
}

// Load reads and decodes the item file. A missing or empty file yields
// an empty list, so the first add works without an init step.
func (s *Store) Load() (*List, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return &List{}, nil
		}
		return nil, fmt.Errorf("read todos file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &List{}, nil
	}
	items, err := s.Codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse todos file: %w", err)
	}
	return &List{Items: items}, nil
}

// Save encodes and writes the item list.
func (s *Store) Save(l *List) error {
	data, err := s.Codec.Encode(l.Items)
	if err != nil {
		return fmt.Errorf("marshal todos file: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write todos file: %w", err)
	}
	return nil
}
