package config

import (
	"errors"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/outbox/pkg/logger"
)

// Settings keys used by the application.
const (
	KeyAPIKey           = "api.key"
	KeySenderName       = "sender.name"
	KeySenderEmail      = "sender.email"
	KeyDefaultRecipient = "default.recipient"
)

// ErrFlushFailed indicates the settings file could not be written.
// The in-memory value stays applied for the rest of the session.
var ErrFlushFailed = errors.New("failed to flush settings to disk")

// Store is a flat string-to-string settings store backed by a single YAML
// file. Values are cached in memory; every write flushes the whole mapping
// to disk. A missing or unreadable file degrades to defaults rather than
// failing: the application must stay usable with an empty API key.
type Store struct {
	path   string
	values map[string]string
	log    *slog.Logger
	mu     sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open loads the settings file at path, creating it with default keys when
// it does not exist. Read failures are logged and treated as "no
// configuration": all Get calls return the empty string.
func Open(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		values: defaults(),
		log:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		loaded := make(map[string]string)
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			s.log.Error("settings file is corrupt, using defaults",
				slog.String("path", path),
				slog.Any("error", err))
			return s
		}
		maps.Copy(s.values, loaded)
	case os.IsNotExist(err):
		if err := s.flush(); err != nil {
			s.log.Error("failed to create settings file", slog.Any("error", err))
		}
	default:
		s.log.Error("failed to read settings file",
			slog.String("path", path),
			slog.Any("error", err))
	}

	return s
}

func defaults() map[string]string {
	return map[string]string{
		KeyAPIKey:           "",
		KeySenderName:       "",
		KeySenderEmail:      "",
		KeyDefaultRecipient: "",
	}
}

// Get returns the value for key, or the empty string if unset.
func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set stores the value and flushes the whole mapping to disk. On flush
// failure the in-memory value stays applied and ErrFlushFailed is returned.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flushLogged()
}

// Remove deletes the key and flushes.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return s.flushLogged()
}

// Clear resets the store to the default key set and flushes.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = defaults()
	return s.flushLogged()
}

func (s *Store) flushLogged() error {
	if err := s.flush(); err != nil {
		s.log.Error("failed to persist settings",
			slog.String("path", s.path),
			slog.Any("error", err))
		return errors.Join(ErrFlushFailed, err)
	}
	return nil
}

// flush writes the full mapping. Callers hold at least a read lock.
func (s *Store) flush() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
