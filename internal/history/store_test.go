package history

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/lens"
	"github.com/dshills/lenscheck/internal/render"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesDBFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, DBFile)); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestOpen_Error(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) {
		return nil, errors.New("boom")
	}
	if _, err := Open(t.TempDir()); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected open error, got %v", err)
	}
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := &Run{
		Lens:      "financial",
		Overall:   62.5,
		Zone:      "YELLOW",
		Variables: map[string]float64{"Clarity": 50, "Baseline": 75},
		Answers:   map[string]int{"f01": 2, "f02": 3},
		Source:    "cli",
	}
	if err := s.Save(ctx, run); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(run.ID, "run_") || len(run.ID) != len("run_")+8 {
		t.Errorf("id = %q", run.ID)
	}
	if run.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Lens != "financial" || got.Overall != 62.5 || got.Zone != "YELLOW" || got.Source != "cli" {
		t.Errorf("got %+v", got)
	}
	if got.Variables["Baseline"] != 75 || got.Answers["f02"] != 3 {
		t.Errorf("payload lost: %+v", got)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get(context.Background(), "run_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := timeNow
	t.Cleanup(func() { timeNow = orig })

	lenses := []string{"financial", "interpersonal", "financial"}
	var ids []string
	for i, l := range lenses {
		timeNow = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		r := &Run{Lens: l, Overall: float64(i * 10)}
		if err := s.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, r.ID)
	}

	all, err := s.List(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Errorf("List order wrong: %+v", all)
	}

	fin, err := s.List(ctx, "financial", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(fin) != 2 {
		t.Errorf("filtered list = %d, want 2", len(fin))
	}

	one, err := s.List(ctx, "", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(one) != 1 || one[0].ID != ids[2] {
		t.Errorf("limited list = %+v", one)
	}

	none, err := s.List(ctx, "universal", 0)
	if err != nil {
		t.Fatal(err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("empty list = %#v, want empty non-nil", none)
	}
}

func TestNewRun(t *testing.T) {
	l, err := lens.LoadBuiltin("interpersonal")
	if err != nil {
		t.Fatal(err)
	}
	a := assess.Answers{"i01": 0, "i02": 3}
	rep, err := render.Build(l, a, assess.RankDrivers, render.Input{}, "1.0")
	if err != nil {
		t.Fatal(err)
	}

	run := NewRun(rep, a, "api")
	if run.Lens != "interpersonal" || run.RankMode != "drivers" || run.Source != "api" {
		t.Errorf("run = %+v", run)
	}
	if run.Zone != string(rep.OverallZone) || len(run.Answers) != 2 {
		t.Errorf("run = %+v", run)
	}

	s := newTestStore(t)
	if err := s.Save(context.Background(), run); err != nil {
		t.Fatal(err)
	}
}
