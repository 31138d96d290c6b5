// Package export writes snapshots of dashboard pages as JSONL and ships them
// to files, a git repo, S3 or Postgres, once or on a schedule.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alfredjeanlab/cafedash/internal/tableview"
)

// FormatVersion is written into every header line.
const FormatVersion = "1"

// Snapshot is the filtered, sorted content of one page at a point in time.
type Snapshot struct {
	ID      string
	Page    string
	Query   string // canonical query string the records were produced with
	Records []tableview.Record
	TakenAt time.Time
}

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version    string    `json:"version"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	SnapshotID string    `json:"snapshot_id,omitempty"`
	Page       string    `json:"page"`
	Query      string    `json:"query,omitempty"`
	ItemCount  int       `json:"item_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string           `json:"type"`
	Data tableview.Record `json:"data"`
}

// ExportJSONL writes snap to w: one header line, then one line per record
// in snapshot order.
func ExportJSONL(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	ts := snap.TakenAt
	if ts.IsZero() {
		ts = time.Now()
	}
	if err := enc.Encode(header{
		Version:    FormatVersion,
		Type:       "header",
		Timestamp:  ts.UTC(),
		SnapshotID: snap.ID,
		Page:       snap.Page,
		Query:      snap.Query,
		ItemCount:  len(snap.Records),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for i, r := range snap.Records {
		if err := enc.Encode(record{Type: "record", Data: r}); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return nil
}

// Encode renders snap as JSONL bytes.
func Encode(snap *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := ExportJSONL(&buf, snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// objectName is the file or object key used for a page.
func objectName(page string) string {
	return page + ".jsonl"
}
