// Package vault indexes the markdown notes under a vault root.
//
// An Index is immutable once built; Rescan walks the root again. Titles are
// file stems and are unique: when two files share a stem, the first one
// reached by the walk wins and the rest are dropped.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/taigrr/tap/internal/pathfilter"
	"github.com/taigrr/tap/internal/types"
)

// ErrNoteNotFound is returned when a title has no entry in the index.
var ErrNoteNotFound = errors.New("note not found")

// ConfigurationError reports an unusable vault root.
type ConfigurationError struct {
	Root   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Root == "" {
		return "vault: " + e.Reason
	}
	return fmt.Sprintf("vault: %q %s", e.Root, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Entry locates a note on disk.
type Entry struct {
	Title   string
	Path    string
	RelPath string
}

// Index maps note titles to files.
type Index struct {
	root    string
	filter  *pathfilter.PathFilter
	entries []Entry
	byTitle map[string]int

	mu    sync.Mutex
	cache map[string]string
}

// Build scans root recursively and returns the resulting index.
func Build(root string, pf *pathfilter.PathFilter) (*Index, error) {
	abs, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	if pf == nil {
		pf = pathfilter.New(nil)
	}

	idx := &Index{
		root:    abs,
		filter:  pf,
		byTitle: make(map[string]int),
		cache:   make(map[string]string),
	}

	// WalkDir does not descend into a symlinked root.
	walkRoot := abs
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		walkRoot = resolved
	}

	err = filepath.WalkDir(walkRoot, func(p string, d fs.DirEntry, walkErr error) error {
		rel, relErr := filepath.Rel(walkRoot, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if walkErr != nil {
			if p == walkRoot {
				return walkErr
			}
			slog.Warn("skipping unreadable path", slog.String("path", p), slog.String("error", walkErr.Error()))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if pf.SkipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !pf.IsAllowed(rel) {
			return nil
		}

		title := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		if first, dup := idx.byTitle[title]; dup {
			slog.Debug("duplicate title dropped",
				slog.String("title", title),
				slog.String("kept", idx.entries[first].RelPath),
				slog.String("dropped", rel))
			return nil
		}

		idx.byTitle[title] = len(idx.entries)
		idx.entries = append(idx.entries, Entry{
			Title:   title,
			Path:    filepath.Join(abs, filepath.FromSlash(rel)),
			RelPath: rel,
		})
		return nil
	})
	if err != nil {
		return nil, &ConfigurationError{Root: abs, Reason: "could not be scanned", Err: err}
	}

	slog.Debug("vault indexed", slog.String("root", abs), slog.Int("notes", len(idx.entries)))
	return idx, nil
}

// ResolveRoot expands a leading "~" and checks that root is an existing,
// readable directory.
func ResolveRoot(root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", &ConfigurationError{Reason: "root is not set (set OBSIDIAN_PATH or --vault)"}
	}

	expanded, err := ExpandHome(root)
	if err != nil {
		return "", &ConfigurationError{Root: root, Reason: "could not expand home directory", Err: err}
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", &ConfigurationError{Root: root, Reason: "could not be resolved", Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &ConfigurationError{Root: abs, Reason: "does not exist", Err: err}
		}
		return "", &ConfigurationError{Root: abs, Reason: "is not readable", Err: err}
	}
	if !info.IsDir() {
		return "", &ConfigurationError{Root: abs, Reason: "is not a directory"}
	}

	f, err := os.Open(abs)
	if err != nil {
		return "", &ConfigurationError{Root: abs, Reason: "is not readable", Err: err}
	}
	f.Close()

	return abs, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, p[1:]), nil
}

// Rescan builds a fresh index of the same root with the same filter.
func (idx *Index) Rescan() (*Index, error) {
	return Build(idx.root, idx.filter)
}

// Root returns the absolute vault root.
func (idx *Index) Root() string {
	return idx.root
}

// Len returns the number of indexed notes.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Titles returns every title in traversal order.
func (idx *Index) Titles() []string {
	return lo.Map(idx.entries, func(e Entry, _ int) string {
		return e.Title
	})
}

// Lookup finds the entry for an exact title.
func (idx *Index) Lookup(title string) (Entry, bool) {
	i, ok := idx.byTitle[title]
	if !ok {
		return Entry{}, false
	}
	return idx.entries[i], true
}

// DocumentByTitle returns the raw content of the note with the given title.
// A missing title and an unreadable file both report false; read failures
// are logged. Successful reads are cached for the life of the index.
func (idx *Index) DocumentByTitle(title string) (string, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if content, ok := idx.cache[title]; ok {
		return content, true
	}

	entry, ok := idx.Lookup(title)
	if !ok {
		return "", false
	}

	data, err := os.ReadFile(entry.Path)
	if err != nil {
		slog.Warn("could not read note", slog.String("title", title), slog.String("error", err.Error()))
		return "", false
	}

	content := string(data)
	idx.cache[title] = content
	return content, true
}

// Note parses the note with the given title.
func (idx *Index) Note(title string) (types.Note, error) {
	entry, ok := idx.Lookup(title)
	if !ok {
		return types.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, title)
	}
	return ParseNote(idx.root, entry.Path)
}

// AllNotes parses every indexed file. Files that fail to parse are logged
// and left out.
func (idx *Index) AllNotes() []types.Note {
	notes := make([]types.Note, 0, len(idx.entries))
	for _, e := range idx.entries {
		note, err := ParseNote(idx.root, e.Path)
		if err != nil {
			slog.Warn("skipping note", slog.String("path", e.RelPath), slog.String("error", err.Error()))
			continue
		}
		notes = append(notes, note)
	}
	return notes
}
