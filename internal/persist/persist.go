// Package persist binds a store to a concrete file on disk. Each process
// (app or widget) opens its own persister against the same path; there is no
// cross-process locking, so the file is last-writer-wins by design.
package persist

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/IlyaKukarkin/bee-bloom/internal/logger"
)

// Persister loads and saves a store's full content. Load is called once at
// startup; Save snapshots the whole store after each mutation batch.
type Persister interface {
	// Init prepares the backing file (creating directories as needed).
	Init() error
	// Load replaces the store's content from disk.
	Load() error
	// Save writes the store's content to disk as one snapshot.
	Save() error
	// StartAutoSave subscribes to store commits and saves after each one.
	// The returned function stops auto-saving.
	StartAutoSave() func()
	// Close releases the backing file.
	Close() error
	// Path returns the backing file path.
	Path() string
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0700)
}

// autoSave wires a persister's Save into the store commit hook. Save failures
// are logged and swallowed: persistence is fire-and-forget from the core's
// perspective.
func autoSave(p Persister, subscribe func(func()) func()) func() {
	return subscribe(func() {
		if err := p.Save(); err != nil {
			logger.Warn("auto-save failed", "path", p.Path(), "error", err)
		}
	})
}
