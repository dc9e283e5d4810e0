package scraper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SnapshotWriter keeps the raw HTML of rendered pages for debugging.
type SnapshotWriter struct {
	dir string
	now func() time.Time
}

// NewSnapshotWriter returns nil when dir is empty, which disables snapshots.
func NewSnapshotWriter(dir string) *SnapshotWriter {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil
	}
	return &SnapshotWriter{dir: dir, now: time.Now}
}

// Save writes p to <dir>/page-<timestamp>.html and returns the file path.
func (w *SnapshotWriter) Save(p *Page) (string, error) {
	if w == nil || p == nil {
		return "", nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot dir: %w", err)
	}
	name := fmt.Sprintf("page-%s.html", w.now().UTC().Format("20060102T150405.000000000"))
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(p.HTML), 0o644); err != nil {
		return "", fmt.Errorf("snapshot write: %w", err)
	}
	return path, nil
}
