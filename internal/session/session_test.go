package session

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/taigrr/tap/internal/types"
)

func sampleSet() types.MatchSet {
	return types.MatchSet{
		Query: "app",
		Results: []types.Match{
			{Title: "Apple", Score: 90, Rank: 1},
			{Title: "Application", Score: 90, Rank: 2},
		},
	}
}

func TestStore_SaveLoad(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		store := New(t.TempDir())
		want := sampleSet()

		if err := store.Save(want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, ok, err := store.Load()
		if err != nil || !ok {
			t.Fatalf("Load() = %v, %v; want present", ok, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Load() = %+v, want %+v", got, want)
		}
	})

	t.Run("absent session", func(t *testing.T) {
		store := New(t.TempDir())

		_, ok, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if ok {
			t.Error("Load() reported a session that was never saved")
		}
	})

	t.Run("save creates the directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "state", "tap")
		store := New(dir)

		if err := store.Save(sampleSet()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
			t.Errorf("session file missing: %v", err)
		}
	})

	t.Run("save overwrites wholesale", func(t *testing.T) {
		store := New(t.TempDir())
		store.Save(sampleSet())

		next := types.MatchSet{Query: "ban", Results: []types.Match{{Title: "Banana", Score: 100, Rank: 1}}}
		if err := store.Save(next); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, _, _ := store.Load()
		if !reflect.DeepEqual(got, next) {
			t.Errorf("Load() = %+v, want %+v", got, next)
		}
	})

	t.Run("empty result set is present, not absent", func(t *testing.T) {
		store := New(t.TempDir())
		store.Save(types.MatchSet{Query: "zzz"})

		got, ok, err := store.Load()
		if err != nil || !ok {
			t.Fatalf("Load() = %v, %v; want present", ok, err)
		}
		if len(got.Results) != 0 {
			t.Errorf("Results = %v, want empty", got.Results)
		}
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		dir := t.TempDir()
		store := New(dir)
		store.Save(sampleSet())
		store.Save(sampleSet())

		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 || entries[0].Name() != FileName {
			t.Errorf("state dir holds %d entries, want only %s", len(entries), FileName)
		}
	})
}

func TestStore_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{not json"},
		{"wrong shape", `["a", "b"]`},
		{"missing results", `{"query": "x"}`},
		{"rank gap", `{"query": "x", "results": [{"title": "A", "score": 1, "rank": 2}]}`},
		{"empty title", `{"query": "x", "results": [{"title": "", "score": 1, "rank": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			os.WriteFile(filepath.Join(dir, FileName), []byte(tt.content), 0o644)

			_, ok, err := New(dir).Load()
			var corrupt *CorruptSessionError
			if !errors.As(err, &corrupt) {
				t.Fatalf("Load() error = %v, want *CorruptSessionError", err)
			}
			if ok {
				t.Error("Load() should not report a corrupt session as present")
			}
		})
	}
}

func TestStore_Dereference(t *testing.T) {
	store := New(t.TempDir())

	t.Run("absent session has length zero", func(t *testing.T) {
		_, err := store.Dereference(1)
		var oor *IndexOutOfRangeError
		if !errors.As(err, &oor) {
			t.Fatalf("Dereference(1) error = %v, want *IndexOutOfRangeError", err)
		}
		if oor.Len != 0 {
			t.Errorf("Len = %d, want 0", oor.Len)
		}
	})

	store.Save(sampleSet())

	t.Run("valid indexes", func(t *testing.T) {
		for i, want := range []string{"Apple", "Application"} {
			m, err := store.Dereference(i + 1)
			if err != nil {
				t.Fatalf("Dereference(%d) error = %v", i+1, err)
			}
			if m.Title != want || m.Rank != i+1 {
				t.Errorf("Dereference(%d) = %+v, want %s", i+1, m, want)
			}
		}
	})

	t.Run("out of range", func(t *testing.T) {
		for _, i := range []int{0, -1, 3} {
			_, err := store.Dereference(i)
			var oor *IndexOutOfRangeError
			if !errors.As(err, &oor) {
				t.Errorf("Dereference(%d) error = %v, want *IndexOutOfRangeError", i, err)
				continue
			}
			if oor.Index != i || oor.Len != 2 {
				t.Errorf("error = %+v, want Index %d Len 2", oor, i)
			}
		}
	})
}

func TestStore_Clear(t *testing.T) {
	store := New(t.TempDir())
	store.Save(sampleSet())

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Error("session still present after Clear()")
	}
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Run("xdg state home", func(t *testing.T) {
		state := t.TempDir()
		t.Setenv("XDG_STATE_HOME", state)

		got, err := DefaultDir()
		if err != nil {
			t.Fatalf("DefaultDir() error = %v", err)
		}
		if want := filepath.Join(state, "tap"); got != want {
			t.Errorf("DefaultDir() = %q, want %q", got, want)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_STATE_HOME", "")
		t.Setenv("HOME", home)

		got, err := DefaultDir()
		if err != nil {
			t.Fatalf("DefaultDir() error = %v", err)
		}
		if want := filepath.Join(home, ".local", "state", "tap"); got != want {
			t.Errorf("DefaultDir() = %q, want %q", got, want)
		}
	})
}
