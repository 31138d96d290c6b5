// Package model defines the pet-cafe records returned by the remote API and
// normalises them into tableview records.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/alfredjeanlab/cafedash/internal/tableview"
)

// ID is a remote identifier. The API is inconsistent about sending ids as
// numbers or strings, so both decode to the same string form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: expected string or number, got %s", data)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier as a string.
func (id ID) String() string { return string(id) }

// Recordable is implemented by every record type shown in a list page.
type Recordable interface {
	Record() tableview.Record
}

// Records converts typed records into generic view records.
func Records[T Recordable](items []T) []tableview.Record {
	out := make([]tableview.Record, len(items))
	for i, it := range items {
		out[i] = it.Record()
	}
	return out
}

// toRecord round-trips v through JSON so the record keys match the API's
// field names exactly.
func toRecord(v any) tableview.Record {
	data, err := json.Marshal(v)
	if err != nil {
		return tableview.Record{}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return tableview.Record{}
	}
	return tableview.Record(m)
}
