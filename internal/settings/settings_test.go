package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newFileService(t *testing.T) (*Service, *FileStore) {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "settings"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return NewService(store), store
}

func TestLoadMissingIsEmpty(t *testing.T) {
	svc, _ := newFileService(t)
	s, err := svc.Load(context.Background(), KeyFor("abc"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s == nil || len(s) != 0 {
		t.Fatalf("expected empty settings, got %v", s)
	}
}

func TestLoadCorruptIsEmpty(t *testing.T) {
	svc, store := newFileService(t)
	ctx := context.Background()
	for _, blob := range []string{"{not json", "null", "[1,2]", `"text"`} {
		if err := store.Put(ctx, BaseKey, blob); err != nil {
			t.Fatalf("Put: %v", err)
		}
		s, err := svc.Load(ctx, BaseKey)
		if err != nil {
			t.Fatalf("Load(%q): %v", blob, err)
		}
		if len(s) != 0 {
			t.Fatalf("Load(%q): expected empty, got %v", blob, s)
		}
	}
}

func TestMergeKeepsUnknownKeys(t *testing.T) {
	svc, _ := newFileService(t)
	ctx := context.Background()
	key := KeyFor("client-1")

	if _, err := svc.Merge(ctx, key, Settings{"count": "20", "theme": "dark"}); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	got, err := svc.Merge(ctx, key, Settings{"count": "all"})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got["count"] != "all" || got["theme"] != "dark" {
		t.Fatalf("unexpected merged settings: %v", got)
	}

	loaded, err := svc.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded["count"] != "all" || loaded["theme"] != "dark" {
		t.Fatalf("unexpected stored settings: %v", loaded)
	}
}

func TestMergeOverCorruptBlob(t *testing.T) {
	svc, store := newFileService(t)
	ctx := context.Background()
	if err := store.Put(ctx, BaseKey, "{oops"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := svc.Merge(ctx, BaseKey, Settings{"count": "5"})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(got) != 1 || got["count"] != "5" {
		t.Fatalf("unexpected settings: %v", got)
	}
}

func TestInvalidKey(t *testing.T) {
	svc, _ := newFileService(t)
	for _, key := range []string{"", "../etc/passwd", "a b"} {
		if _, err := svc.Load(context.Background(), key); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("Load(%q): expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	_, store := newFileService(t)
	ctx := context.Background()
	for range 3 {
		if err := store.Put(ctx, KeyFor("c"), `{"count":"10"}`); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	entries, err := os.ReadDir(store.Dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "jhs_settings__c.json" {
		t.Fatalf("unexpected files: %v", entries)
	}
}

func TestSettingsString(t *testing.T) {
	s := Settings{"quizCount": "", "count": float64(20), "flag": true}
	if got := s.String("quizCount", "count"); got != "20" {
		t.Fatalf("expected fallback to count, got %q", got)
	}
	if got := s.String("wsCount"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := (Settings{"count": "all"}).String("count"); got != "all" {
		t.Fatalf("expected all, got %q", got)
	}
}

func TestSettingsStringTreatsFalsyAsUnset(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want string
	}{
		{name: "zero", in: Settings{"count": float64(0)}, want: ""},
		{name: "false", in: Settings{"count": false}, want: ""},
		{name: "true", in: Settings{"count": true}, want: ""},
		{name: "zero_then_next", in: Settings{"quizCount": float64(0), "count": "5"}, want: "5"},
		{name: "number", in: Settings{"count": float64(30)}, want: "30"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.String("quizCount", "count"); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
