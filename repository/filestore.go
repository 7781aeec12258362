package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// FileStore is a LedgerRepository backed by a single JSON snapshot file: an
// object mapping user-ID strings to integer balances, pretty-printed with
// 4-space indentation. Every mutation rewrites the whole file.
//
// A store-level mutex serializes the read-modify-write sequence, so two
// concurrent updates to the same user can never drop an increment.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed ledger at the given path. The file is
// created lazily on first write; its absence means an empty ledger.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// GetBalance returns the stored balance for a user, or 0 if absent
func (s *FileStore) GetBalance(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.load()
	if err != nil {
		return 0, err
	}
	return ledger[userID], nil
}

// UpdateBalance adds delta to the user's balance and persists the whole
// snapshot, returning the new balance. No bounds checking is applied.
func (s *FileStore) UpdateBalance(_ context.Context, userID string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.load()
	if err != nil {
		return 0, err
	}

	ledger[userID] += delta

	if err := s.save(ledger); err != nil {
		return 0, err
	}
	return ledger[userID], nil
}

// Load returns a copy of the entire ledger
func (s *FileStore) Load(_ context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// load reads the snapshot. Callers must hold s.mu. A missing file is an empty
// ledger; an unparseable file is logged and treated as empty, matching the
// historical behavior of the snapshot format.
func (s *FileStore) load() (map[string]int64, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]int64), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger file %s: %w", s.path, err)
	}

	var ledger map[string]int64
	if err := json.Unmarshal(data, &ledger); err != nil {
		log.WithFields(log.Fields{
			"path":  s.path,
			"error": err,
		}).Warn("Ledger file is corrupt, starting from an empty ledger")
		return make(map[string]int64), nil
	}
	if ledger == nil {
		ledger = make(map[string]int64)
	}
	return ledger, nil
}

// save writes the snapshot via a temp file and rename so a crash mid-write
// never leaves a truncated ledger behind. Callers must hold s.mu.
func (s *FileStore) save(ledger map[string]int64) error {
	data, err := json.MarshalIndent(ledger, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close ledger file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger file %s: %w", s.path, err)
	}
	return nil
}
