package todo

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// SchemaVersion is the store document version emitted by the JSON codec.
const SchemaVersion = 1

// Codec serializes an item list to bytes and back. Store logic never
// looks at the bytes, so swapping CSV for JSON is a codec choice only.
type Codec interface {
	// Name identifies the codec ("json" or "csv").
	Name() string
	Encode(items []Item) ([]byte, error)
	Decode(data []byte) ([]Item, error)
}

// JSON and CSV are the built-in codecs.
var (
	JSON Codec = jsonCodec{}
	CSV  Codec = csvCodec{}
)

// CodecForPath picks a codec from the file extension. Anything that is
// not .csv is treated as JSON.
func CodecForPath(path string) Codec {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return CSV
	}
	return JSON
}

// jsonFile is the JSON store document.
type jsonFile struct {
	SchemaVersion int        `json:"schema_version"`
	Items         []jsonItem `json:"items"`
}

// jsonItem is one serialized record. The index field is written for
// display and interop but ignored on decode, because an item's index is
// its position in the list.
type jsonItem struct {
	Index     int        `json:"index"`
	Text      string     `json:"text"`
	Done      bool       `json:"done"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

// Encode writes the document with 2-space indentation and a trailing
// newline.
func (jsonCodec) Encode(items []Item) ([]byte, error) {
	doc := jsonFile{
		SchemaVersion: SchemaVersion,
		Items:         make([]jsonItem, 0, len(items)),
	}
	for i, it := range items {
		doc.Items = append(doc.Items, jsonItem{
			Index:     i,
			Text:      it.Text,
			Done:      it.Done,
			CreatedAt: it.CreatedAt,
			UpdatedAt: it.UpdatedAt,
		})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jsonCodec) Decode(data []byte) ([]Item, error) {
	var doc jsonFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(doc.Items))
	for _, rec := range doc.Items {
		items = append(items, Item{
			Text:      rec.Text,
			Done:      rec.Done,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}
	return items, nil
}

// csvHeader is the column layout of the CSV store format.
var csvHeader = []string{"index", "text", "done", "created_at", "updated_at"}

type csvCodec struct{}

func (csvCodec) Name() string { return "csv" }

// Encode writes a header row followed by one row per item. Timestamps
// are RFC 3339 or empty. Texts containing commas, quotes, or newlines
// survive via standard CSV quoting.
func (csvCodec) Encode(items []Item) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i, it := range items {
		row := []string{
			strconv.Itoa(i),
			it.Text,
			strconv.FormatBool(it.Done),
			formatTime(it.CreatedAt),
			formatTime(it.UpdatedAt),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (csvCodec) Decode(data []byte) ([]Item, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(csvHeader)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []Item{}, nil
	}
	if !isCSVHeader(rows[0]) {
		return nil, fmt.Errorf("missing header row, expected %s", strings.Join(csvHeader, ","))
	}
	items := make([]Item, 0, len(rows)-1)
	for n, row := range rows[1:] {
		// The index column is advisory, but a non-integer value means
		// the file was mangled.
		if _, err := strconv.Atoi(row[0]); err != nil {
			return nil, fmt.Errorf("row %d: bad index %q", n+1, row[0])
		}
		done, err := strconv.ParseBool(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad done flag %q", n+1, row[2])
		}
		created, err := parseTime(row[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad created_at: %v", n+1, err)
		}
		updated, err := parseTime(row[4])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad updated_at: %v", n+1, err)
		}
		items = append(items, Item{
			Text:      row[1],
			Done:      done,
			CreatedAt: created,
			UpdatedAt: updated,
		})
	}
	return items, nil
}

func isCSVHeader(row []string) bool {
	if len(row) != len(csvHeader) {
		return false
	}
	for i := range row {
		if !strings.EqualFold(strings.TrimSpace(row[i]), csvHeader[i]) {
			return false
		}
	}
	return true
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
