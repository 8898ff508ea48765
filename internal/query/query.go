// Package query ties the vault index, the matchers and the session store
// together. Every search overwrites the saved session; Get reads it back.
package query

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/taigrr/tap/internal/daily"
	"github.com/taigrr/tap/internal/search"
	"github.com/taigrr/tap/internal/session"
	"github.com/taigrr/tap/internal/types"
	"github.com/taigrr/tap/internal/vault"
)

// DocumentNotFoundError is returned when a title names no note in the vault,
// including a saved match whose note has since been removed.
type DocumentNotFoundError struct {
	Title       string
	Suggestions []string
}

func (e *DocumentNotFoundError) Error() string {
	msg := fmt.Sprintf("document %q not found in vault", e.Title)
	if len(e.Suggestions) > 0 {
		quoted := make([]string, len(e.Suggestions))
		for i, t := range e.Suggestions {
			quoted[i] = strconv.Quote(t)
		}
		msg += " (did you mean " + strings.Join(quoted, ", ") + "?)"
	}
	return msg
}

const maxSuggestions = 3

// Service runs queries against one vault and one session store.
type Service struct {
	store *session.Store

	mu      sync.Mutex
	idx     *vault.Index
	content *search.ContentIndex
}

// New returns a service over idx that records results in store.
func New(idx *vault.Index, store *session.Store) *Service {
	return &Service{idx: idx, store: store}
}

func (s *Service) index() *vault.Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx
}

// Refresh rescans the vault and drops the content index, so later calls see
// notes added, removed or edited since the service was built.
func (s *Service) Refresh() error {
	idx, err := s.index().Rescan()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.idx = idx
	if s.content != nil {
		err = s.content.Close()
		s.content = nil
	}
	return err
}

// Titles returns every note title in the vault.
func (s *Service) Titles() []string {
	return s.index().Titles()
}

// Notes parses every note in the vault.
func (s *Service) Notes() []types.Note {
	return s.index().AllNotes()
}

// Document returns the raw content of the note with the given title.
func (s *Service) Document(title string) (string, bool) {
	return s.index().DocumentByTitle(title)
}

// Search ranks vault titles against q and saves the top limit as the
// current session.
func (s *Service) Search(q string, limit int) (types.MatchSet, error) {
	set := types.MatchSet{
		Query:   q,
		Results: search.Titles(q, s.index().Titles(), limit),
	}
	return set, s.save(set)
}

// Exact matches titles equal to q ignoring case, in vault order, and saves
// them as the current session.
func (s *Service) Exact(q string) (types.MatchSet, error) {
	set := types.MatchSet{Query: q, Results: []types.Match{}}
	for _, title := range s.index().Titles() {
		if strings.EqualFold(title, q) {
			set.Results = append(set.Results, types.Match{
				Title: title,
				Score: 100,
				Rank:  len(set.Results) + 1,
			})
		}
	}
	return set, s.save(set)
}

// Select saves title as the only result of the current session.
func (s *Service) Select(title string) (types.MatchSet, error) {
	if _, ok := s.index().Lookup(title); !ok {
		return types.MatchSet{}, &DocumentNotFoundError{Title: title}
	}
	set := types.MatchSet{
		Query:   title,
		Results: []types.Match{{Title: title, Score: 100, Rank: 1}},
	}
	return set, s.save(set)
}

// SearchContent ranks notes by full-text match of their body and saves the
// top limit as the current session. The content index is built on first use.
func (s *Service) SearchContent(q string, limit int) (types.MatchSet, error) {
	s.mu.Lock()
	if s.content == nil {
		ci, err := search.NewContentIndex(s.idx.AllNotes())
		if err != nil {
			s.mu.Unlock()
			return types.MatchSet{}, err
		}
		s.content = ci
		slog.Debug("content index built", slog.Int("documents", ci.Len()))
	}
	ci := s.content
	s.mu.Unlock()

	results, err := ci.Search(q, limit)
	if err != nil {
		return types.MatchSet{}, err
	}
	set := types.MatchSet{Query: q, Results: results}
	return set, s.save(set)
}

// Last returns the saved session. A corrupt session file is logged,
// removed and reported as absent.
func (s *Service) Last() (types.MatchSet, bool, error) {
	set, ok, err := s.store.Load()
	var corrupt *session.CorruptSessionError
	if errors.As(err, &corrupt) {
		s.discard(corrupt)
		return types.MatchSet{}, false, nil
	}
	return set, ok, err
}

func (s *Service) discard(corrupt *session.CorruptSessionError) {
	slog.Warn("discarding corrupt session", slog.String("path", corrupt.Path), slog.String("reason", corrupt.Reason))
	if err := s.store.Clear(); err != nil {
		slog.Warn("could not remove corrupt session", slog.String("error", err.Error()))
	}
}

// Get dereferences the 1-based index against the saved session and returns
// the match with its note content.
func (s *Service) Get(index int) (types.Match, string, error) {
	match, err := s.Check(index)
	if err != nil {
		return types.Match{}, "", err
	}
	content, ok := s.index().DocumentByTitle(match.Title)
	if !ok {
		return match, "", &DocumentNotFoundError{Title: match.Title}
	}
	return match, content, nil
}

// Check validates the 1-based index against the saved session without
// reading the note.
func (s *Service) Check(index int) (types.Match, error) {
	match, err := s.store.Dereference(index)
	var corrupt *session.CorruptSessionError
	if errors.As(err, &corrupt) {
		s.discard(corrupt)
		return types.Match{}, &session.IndexOutOfRangeError{Index: index, Len: 0}
	}
	return match, err
}

// Read returns the parsed note with the given title.
func (s *Service) Read(title string) (types.Note, error) {
	idx := s.index()
	note, err := idx.Note(title)
	if errors.Is(err, vault.ErrNoteNotFound) {
		return types.Note{}, &DocumentNotFoundError{
			Title:       title,
			Suggestions: search.Suggest(title, idx.Titles(), maxSuggestions),
		}
	}
	return note, err
}

// DateRange concatenates the daily notes named by a "start:end" expression.
func (s *Service) DateRange(expr string) (string, error) {
	return daily.New(s.index()).ResolveExpr(expr)
}

// DailyNotes returns the daily notes named by a "start:end" expression.
func (s *Service) DailyNotes(expr string) ([]daily.Entry, error) {
	start, end, err := daily.ParseRange(expr)
	if err != nil {
		return nil, err
	}
	return daily.New(s.index()).Notes(start, end), nil
}

// Close releases the content index, if one was built.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.content == nil {
		return nil
	}
	err := s.content.Close()
	s.content = nil
	return err
}

func (s *Service) save(set types.MatchSet) error {
	if err := s.store.Save(set); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
