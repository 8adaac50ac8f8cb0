package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Journal operation names.
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpUpdate = "update"
	OpToggle = "toggle"
)

// Entry is one journal line describing a store mutation.
type Entry struct {
	Time  time.Time `json:"time"`
	Op    string    `json:"op"`
	Index int       `json:"index"`
	Text  string    `json:"text"`
	Done  *bool     `json:"done,omitempty"`
}

// Journal appends mutation entries to a JSONL file.
type Journal struct {
	Path string
}

// NewJournal returns a journal writing to path. An empty path produces
// a disabled journal whose Append is a no-op.
func NewJournal(path string) *Journal {
	return &Journal{Path: path}
}

// Enabled reports whether the journal writes anywhere.
func (j *Journal) Enabled() bool {
	return j != nil && j.Path != ""
}

// Append writes one entry as a JSON line, creating the journal file and
// its directory as needed. A nil or disabled journal is a no-op.
func (j *Journal) Append(e Entry) error {
	if !j.Enabled() {
		return nil
	}
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	if dir := filepath.Dir(j.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create journal dir: %w", err)
		}
	}
	file, err := os.OpenFile(j.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open journal file: %w", err)
	}
	defer file.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}
	data = append(data, '\n')
	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("write journal entry: %w", err)
	}
	return nil
}

// TailJournal writes journal lines to w, the last n when n > 0, and in
// follow mode keeps streaming appended entries until ctx is canceled.
func TailJournal(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open journal file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := tailSeek(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}

	if follow {
		return tailFollow(ctx, w, file)
	}
	_, err = io.Copy(w, file)
	return err
}

// tailSeek positions the file roughly n lines before the end, assuming
// journal lines average around 100 bytes. Short files rewind to the start.
func tailSeek(file *os.File, n int) error {
	const bytesPerLine = 100

	info, err := file.Stat()
	if err != nil {
		return err
	}
	back := int64(n) * bytesPerLine
	if info.Size() <= back {
		_, err = file.Seek(0, io.SeekStart)
		return err
	}
	if _, err := file.Seek(-back, io.SeekEnd); err != nil {
		return err
	}
	// The offset lands mid-line; skip ahead to the next line boundary.
	return skipPartialLine(file)
}

func skipPartialLine(file *os.File) error {
	var b [1]byte
	for {
		if _, err := file.Read(b[:]); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if b[0] == '\n' {
			return nil
		}
	}
}

// tailFollow streams appended data like tail -f, polling the file until
// the context is canceled.
func tailFollow(ctx context.Context, w io.Writer, file *os.File) error {
	for {
		if _, err := io.Copy(w, file); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}
