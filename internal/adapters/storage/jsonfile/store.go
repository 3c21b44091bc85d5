package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"dollhouse-lurker/internal/adapters/metrics"
	"dollhouse-lurker/internal/core/domain"

	"github.com/keshon/datastore"
)

const (
	backendName = "file"

	// Every Save flushes explicitly; the background flush only catches
	// writes that raced a failed save.
	autoSaveInterval = time.Minute
)

// Store keeps each document as <dir>/<name>.json, one top-level key per
// guild, backed by a datastore per file.
type Store struct {
	dir string

	mu   sync.Mutex
	docs map[string]*document
}

type document struct {
	ds   *datastore.DataStore
	keys map[string]struct{}
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, docs: map[string]*document{}}, nil
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load fills dst from <name>.json. A missing file is created as {} and dst
// keeps its default.
func (s *Store) Load(_ context.Context, name string, dst any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, statErr := os.Stat(s.Path(name))
	existed := statErr == nil

	doc, err := s.open(name)
	if err != nil {
		if existed {
			return fmt.Errorf("%w: %s: %v", domain.ErrDataCorruption, s.Path(name), err)
		}
		return fmt.Errorf("create %s: %w", name, err)
	}

	if !existed {
		return s.saveLocked(name, doc, dst)
	}

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDataCorruption, s.Path(name), err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDataCorruption, s.Path(name), err)
	}

	for key := range entries {
		doc.keys[key] = struct{}{}
	}
	return nil
}

// Save replaces the whole document and flushes it to disk before returning.
func (s *Store) Save(_ context.Context, name string, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	err := s.save(name, doc)
	metrics.StorageSaveDuration.WithLabelValues(name, backendName).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func (s *Store) save(name string, value any) error {
	doc, err := s.open(name)
	if err != nil {
		return err
	}
	return s.saveLocked(name, doc, value)
}

func (s *Store) saveLocked(name string, doc *document, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("encode: document %s is not a JSON object", name)
	}

	for key := range doc.keys {
		if _, ok := entries[key]; !ok {
			doc.ds.Delete(key)
			delete(doc.keys, key)
		}
	}
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		doc.ds.Add(key, entries[key])
		doc.keys[key] = struct{}{}
	}

	return doc.ds.SaveToFile()
}

func (s *Store) open(name string) (*document, error) {
	if doc, ok := s.docs[name]; ok {
		return doc, nil
	}

	ds, err := datastore.NewWithConfig(&datastore.Config{
		FilePath:         s.Path(name),
		AutoSaveInterval: autoSaveInterval,
		BackupCount:      0,
		Logger:           slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
	})
	if err != nil {
		return nil, err
	}

	doc := &document{ds: ds, keys: map[string]struct{}{}}
	s.docs[name] = doc
	return doc, nil
}

func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for name, doc := range s.docs {
		if err := doc.ds.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
		delete(s.docs, name)
	}
	if err := errors.Join(errs...); err != nil {
		slog.Error("Failed to close file store", "error", err)
	}
}
