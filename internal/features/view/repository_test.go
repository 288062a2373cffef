package view

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestRepo(t *testing.T) *ViewRepositoryImpl {
	t.Helper()
	repo, err := newViewRepository(filepath.Join(t.TempDir(), "views"))
	if err != nil {
		t.Fatalf("newViewRepository() error = %v", err)
	}
	return repo
}

func TestWriteReadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	filters := map[string]any{"type": "L2ADD", "days": float64(7), "columns": []any{"job", "status"}}

	if err := repo.Write("team/nightly", "l2add", filters); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := repo.Read("team/nightly/l2add")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if diff := cmp.Diff(filters, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile(filepath.Join(repo.root, "team", "nightly", "l2add.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "\n    \"") {
		t.Errorf("view file is not indented with four spaces:\n%s", raw)
	}
}

func TestReadErrors(t *testing.T) {
	repo := newTestRepo(t)
	if err := os.MkdirAll(filepath.Join(repo.root, "folder"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Read("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := repo.Read("folder"); !errors.Is(err, ErrIsAFolder) {
		t.Errorf("Read(folder) error = %v, want ErrIsAFolder", err)
	}
	if _, err := repo.Read(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read(\"\") error = %v, want ErrNotFound", err)
	}
	if _, err := repo.Read("../outside"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Read(../outside) error = %v, want ErrInvalidPath", err)
	}
}

func TestListStripsExactSuffix(t *testing.T) {
	repo := newTestRepo(t)
	for _, name := range []string{"json", "sessions", "nightly"} {
		if err := repo.Write("", name, nil); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(repo.root, "team"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(repo.root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := repo.List("")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := &Listing{Folders: []string{"team"}, Views: []string{"json", "nightly", "sessions"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	if _, err := repo.List("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("List(nope) error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	_ = repo.Write("team", "a", nil)
	_ = repo.Write("team/sub", "b", nil)
	_ = repo.Write("", "team", nil) // same name as the folder

	if err := repo.Delete("team"); err != nil {
		t.Fatalf("Delete(team) error = %v", err)
	}
	if exists(filepath.Join(repo.root, "team.json")) {
		t.Errorf("team.json should be removed first")
	}
	if !exists(filepath.Join(repo.root, "team")) {
		t.Errorf("team folder should survive a file delete")
	}

	if err := repo.Delete("team"); err != nil {
		t.Fatalf("Delete(team folder) error = %v", err)
	}
	if exists(filepath.Join(repo.root, "team")) {
		t.Errorf("team folder should be removed recursively")
	}

	if err := repo.Delete("team"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(""); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Delete(root) error = %v, want ErrInvalidPath", err)
	}
}

func TestMove(t *testing.T) {
	repo := newTestRepo(t)
	_ = repo.Write("", "a", map[string]any{"k": "v"})
	_ = repo.Write("old", "c", nil)
	if err := os.MkdirAll(filepath.Join(repo.root, "b"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := repo.Move("a", "b"); err != nil {
		t.Fatalf("Move(a, b) error = %v", err)
	}
	if got, err := repo.Read("b/a"); err != nil || got["k"] != "v" {
		t.Errorf("Read(b/a) = %v, %v", got, err)
	}

	if err := repo.Move("old", "b"); err != nil {
		t.Fatalf("Move(old, b) error = %v", err)
	}
	if !isRegular(filepath.Join(repo.root, "b", "old", "c.json")) {
		t.Errorf("folder move did not carry its views")
	}

	if err := repo.Move("b/a", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Move to missing dest error = %v, want ErrNotFound", err)
	}
	if err := repo.Move("ghost", "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Move missing src error = %v, want ErrNotFound", err)
	}
	if err := repo.Move("b", "b/old"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Move into itself error = %v, want ErrInvalidPath", err)
	}
}

func TestMoveKeepsExistingTarget(t *testing.T) {
	repo := newTestRepo(t)
	_ = repo.Write("", "a", map[string]any{"src": true})
	_ = repo.Write("b", "a", map[string]any{"keep": "me"})
	_ = repo.Write("team", "x", nil)
	_ = repo.Write("other/team", "y", nil)

	if err := repo.Move("a", "b"); !errors.Is(err, ErrDuplicateView) {
		t.Fatalf("Move(a, b) error = %v, want ErrDuplicateView", err)
	}
	got, err := repo.Read("b/a")
	if err != nil || got["keep"] != "me" {
		t.Errorf("Read(b/a) = %v, %v, want the original view", got, err)
	}
	if !isRegular(filepath.Join(repo.root, "a.json")) {
		t.Error("source view must stay in place")
	}

	if err := repo.Move("team", "other"); !errors.Is(err, ErrDuplicateView) {
		t.Errorf("Move(team, other) error = %v, want ErrDuplicateView", err)
	}
	if !exists(filepath.Join(repo.root, "other", "team", "y.json")) {
		t.Error("existing folder must not be replaced")
	}
}

func TestMovePrefersFileOverFolder(t *testing.T) {
	repo := newTestRepo(t)
	_ = repo.Write("", "x", nil)
	_ = repo.Write("x", "inner", nil)
	_ = os.MkdirAll(filepath.Join(repo.root, "dest"), 0o755)

	if err := repo.Move("x", "dest"); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if !isRegular(filepath.Join(repo.root, "dest", "x.json")) {
		t.Errorf("x.json should have moved")
	}
	if !exists(filepath.Join(repo.root, "x", "inner.json")) {
		t.Errorf("folder x should stay in place")
	}
}
