package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileDestination writes each page to <dir>/<page>.jsonl, replacing the
// previous export atomically.
type FileDestination struct {
	dir string
}

func NewFileDestination(dir string) *FileDestination {
	return &FileDestination{dir: dir}
}

func (d *FileDestination) Name() string { return "file:" + d.dir }

func (d *FileDestination) Write(_ context.Context, snap *Snapshot, data []byte) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(d.dir, "."+snap.Page+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(d.dir, objectName(snap.Page))); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
