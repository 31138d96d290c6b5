package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Profiles holds all named server profiles and tracks which one is active.
type Profiles struct {
	Active   string             `toml:"active"`
	Profiles map[string]Profile `toml:"profiles"`
}

// Profile is a named API endpoint plus the token obtained by logging in to it.
type Profile struct {
	URL         string `toml:"url"`
	Token       string `toml:"token,omitempty"`
	NATSURL     string `toml:"nats_url,omitempty"`
	Description string `toml:"description,omitempty"`
}

// Store reads and writes the profiles file.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store { return &Store{path: path} }

// DefaultPath returns ~/.local/state/cafedash/profiles.toml, creating the
// directory if needed.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "cafedash")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles.toml"), nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the profiles file. A missing file yields an empty set.
func (s *Store) Load() (Profiles, error) {
	var p Profiles
	if _, err := toml.DecodeFile(s.path, &p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Profiles{Profiles: map[string]Profile{}}, nil
		}
		return Profiles{}, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if p.Profiles == nil {
		p.Profiles = map[string]Profile{}
	}
	return p, nil
}

// Save writes p to the profiles file with owner-only permissions, since it
// holds bearer tokens.
func (s *Store) Save(p Profiles) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(p)
}

// ActiveProfile returns the active profile, if any.
func (p Profiles) ActiveProfile() (Profile, bool) {
	if p.Active == "" {
		return Profile{}, false
	}
	prof, ok := p.Profiles[p.Active]
	return prof, ok
}

// Update applies fn to the named profile and saves the result.
func (s *Store) Update(name string, fn func(*Profile)) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	prof, ok := p.Profiles[name]
	if !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	fn(&prof)
	p.Profiles[name] = prof
	return s.Save(p)
}

// SetToken stores token on the active profile. With no active profile, a
// "default" profile pointing at url is created and activated.
func (s *Store) SetToken(url, token string) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	name := p.Active
	if name == "" {
		name = "default"
		p.Active = name
	}
	prof := p.Profiles[name]
	if prof.URL == "" {
		prof.URL = url
	}
	prof.Token = token
	p.Profiles[name] = prof
	return s.Save(p)
}
