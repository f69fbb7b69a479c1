package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/outbox/pkg/logger"
)

// ErrSaveFailed indicates a record could not be serialized or written.
var ErrSaveFailed = errors.New("failed to save record")

// Collection persists records of one kind as individual JSON files under a
// dedicated directory, named "<prefix><id>.json". Records are independent:
// concurrent saves to different ids never conflict, and a corrupt file only
// costs that one record on load.
type Collection[T any] struct {
	dir    string
	prefix string
	log    *slog.Logger
}

// NewCollection creates a collection rooted at dir, creating the directory
// if needed.
func NewCollection[T any](dir, prefix string, log *slog.Logger) (*Collection[T], error) {
	if log == nil {
		log = logger.NewNope()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create record directory %s: %w", dir, err)
	}
	return &Collection[T]{dir: dir, prefix: prefix, log: log}, nil
}

// Dir returns the backing directory.
func (c *Collection[T]) Dir() string { return c.dir }

func (c *Collection[T]) filename(id string) string {
	return filepath.Join(c.dir, c.prefix+id+".json")
}

// Save serializes the record to its file, overwriting an existing record
// with the same id. Overwrite is how updates work.
func (c *Collection[T]) Save(id string, rec T) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	if err := os.WriteFile(c.filename(id), data, 0o600); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}

// LoadAll reads every record in the collection, in directory-listing order.
// Unreadable or corrupt files are skipped and logged; they never abort the
// whole load.
func (c *Collection[T]) LoadAll() ([]T, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list record directory %s: %w", c.dir, err)
	}

	records := make([]T, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, c.prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		path := filepath.Join(c.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			c.log.Error("failed to read record", slog.String("path", path), slog.Any("error", err))
			continue
		}
		var rec T
		if err := json.Unmarshal(data, &rec); err != nil {
			c.log.Error("skipping corrupt record", slog.String("path", path), slog.Any("error", err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes the record file. A missing record is not an error.
func (c *Collection[T]) Delete(id string) error {
	if err := os.Remove(c.filename(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	return nil
}

// Clear deletes every record in the collection. Per-file failures are
// logged and skipped so one undeletable file does not block the rest.
func (c *Collection[T]) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to list record directory %s: %w", c.dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, c.prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		path := filepath.Join(c.dir, name)
		if err := os.Remove(path); err != nil {
			c.log.Error("failed to delete record", slog.String("path", path), slog.Any("error", err))
		}
	}
	return nil
}
