// Package session persists the most recent match set so that a later
// invocation can dereference results by index.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/taigrr/tap/internal/types"
)

// FileName is the session file inside the state directory.
const FileName = "matches.json"

// CorruptSessionError is returned when the session file exists but does not
// hold a valid match set.
type CorruptSessionError struct {
	Path   string
	Reason string
	Err    error
}

func (e *CorruptSessionError) Error() string {
	msg := fmt.Sprintf("session: %s is corrupt: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CorruptSessionError) Unwrap() error {
	return e.Err
}

// IndexOutOfRangeError is returned when a 1-based index falls outside the
// saved results. An absent session has length 0.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("index %d is out of range: no previous results", e.Index)
	}
	return fmt.Sprintf("index %d is out of range: expected 1..%d", e.Index, e.Len)
}

// Store reads and writes the session file.
type Store struct {
	dir string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns $XDG_STATE_HOME/tap, falling back to ~/.local/state/tap.
func DefaultDir() (string, error) {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "tap"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("session: resolve home: %w", err)
	}
	return filepath.Join(home, ".local", "state", "tap"), nil
}

// Path returns the session file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Save replaces the session file with set.
func (s *Store) Save(set types.MatchSet) error {
	if set.Results == nil {
		set.Results = []types.Match{}
	}
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	return writeAtomic(s.Path(), data)
}

// Load reads the session file. ok is false when no session has been saved.
func (s *Store) Load() (set types.MatchSet, ok bool, err error) {
	path := s.Path()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return types.MatchSet{}, false, nil
	}
	if err != nil {
		return types.MatchSet{}, false, fmt.Errorf("session: read: %w", err)
	}

	if err := json.Unmarshal(data, &set); err != nil {
		return types.MatchSet{}, false, &CorruptSessionError{Path: path, Reason: "invalid JSON", Err: err}
	}
	if set.Results == nil {
		return types.MatchSet{}, false, &CorruptSessionError{Path: path, Reason: "missing results"}
	}
	for i, m := range set.Results {
		if m.Rank != i+1 {
			return types.MatchSet{}, false, &CorruptSessionError{
				Path:   path,
				Reason: fmt.Sprintf("result %d has rank %d", i+1, m.Rank),
			}
		}
		if m.Title == "" {
			return types.MatchSet{}, false, &CorruptSessionError{
				Path:   path,
				Reason: fmt.Sprintf("result %d has no title", i+1),
			}
		}
	}
	return set, true, nil
}

// Dereference returns the match at the 1-based index.
func (s *Store) Dereference(index int) (types.Match, error) {
	set, _, err := s.Load()
	if err != nil {
		return types.Match{}, err
	}
	if index < 1 || index > len(set.Results) {
		return types.Match{}, &IndexOutOfRangeError{Index: index, Len: len(set.Results)}
	}
	return set.Results[index-1], nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("session: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".matches-*.tmp")
	if err != nil {
		return fmt.Errorf("session: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("session: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("session: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("session: rename: %w", err)
	}
	success = true
	return nil
}
