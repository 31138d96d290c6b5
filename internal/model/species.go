package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Species is a pet species (dog, cat, ...). Pets, breeds and vaccine types
// embed it as a full object, as a bare name, or as a bare id depending on the
// endpoint; UnmarshalJSON accepts all three.
type Species struct {
	ID          ID     `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (s *Species) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = Species{}
		return nil
	case data[0] == '{':
		type plain Species
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("species: %w", err)
		}
		*s = Species(p)
		return nil
	case data[0] == '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("species: %w", err)
		}
		*s = Species{Name: name}
		return nil
	default:
		var id ID
		if err := id.UnmarshalJSON(data); err != nil {
			return fmt.Errorf("species: %w", err)
		}
		*s = Species{ID: id}
		return nil
	}
}

// Label returns the species name, falling back to its id.
func (s Species) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return string(s.ID)
}

// IsZero reports whether no species information is present.
func (s Species) IsZero() bool { return s.ID == "" && s.Name == "" }
