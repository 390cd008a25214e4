package persist

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/IlyaKukarkin/bee-bloom/internal/store"
)

type jsonFile struct {
	Version int                             `json:"version"`
	Tables  map[string]map[string]store.Row `json:"tables"`
}

// JSONPersister stores the table content as one pretty-printed JSON file.
// Used where SQLite is unavailable and as the lightweight test backend.
type JSONPersister struct {
	store *store.Store
	path  string
}

// NewJSON creates a JSON-file persister for the given store and path.
func NewJSON(s *store.Store, path string) *JSONPersister {
	return &JSONPersister{store: s, path: ExpandPath(path)}
}

func (p *JSONPersister) Init() error {
	if err := ensureDir(p.path); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(p.path); err == nil {
		return nil
	}
	return p.Save()
}

func (p *JSONPersister) Load() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			p.store.SetContent(nil)
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	var file jsonFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	p.store.SetContent(file.Tables)
	return nil
}

func (p *JSONPersister) Save() error {
	file := jsonFile{
		Version: 1,
		Tables:  p.store.Content(),
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(p.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (p *JSONPersister) StartAutoSave() func() {
	return autoSave(p, p.store.OnCommit)
}

func (p *JSONPersister) Close() error {
	return nil
}

func (p *JSONPersister) Path() string {
	return p.path
}
