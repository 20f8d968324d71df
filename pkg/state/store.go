package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store reads and writes the warm-up record as a whole. It owns the on-disk
// representation; callers decide what a missing record means.
type Store struct {
	path string
	log  *zap.SugaredLogger
}

// NewStore creates a store persisting to the given path.
func NewStore(path string, log *zap.SugaredLogger) *Store {
	return &Store{path: path, log: log.Named("state")}
}

// Path returns the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted record. The second return value reports whether a
// record existed; when false, the record is nil and the caller is expected to
// default-construct one.
func (s *Store) Load() (*Record, bool, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read state file %s: %w", s.path, err)
	}

	var rec Record
	if err := json.Unmarshal(content, &rec); err != nil {
		return nil, false, fmt.Errorf("failed to parse state file %s: %w", s.path, err)
	}
	return &rec, true, nil
}

// Save serializes the full record, replacing any previous snapshot. The
// record is written to a temporary file in the same directory and renamed
// into place, so a crash mid-write leaves the previous snapshot intact.
func (s *Store) Save(rec *Record) error {
	if rec == nil {
		return errors.New("record is nil")
	}

	content, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod temp state file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	s.log.Debugw("State saved",
		"path", s.path,
		"currentDay", rec.CurrentDay,
		"sentToday", rec.EmailsSentToday,
		"totalSent", rec.TotalEmailsSent)
	return nil
}
