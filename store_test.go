package projinit

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rwestwood89/agentic-project-init-sub002/testutil"
)

func TestComplete_MissingFile(t *testing.T) {
	store := NewStore(StoreConfig{Root: t.TempDir()})

	if store.Complete(DesignPath) {
		t.Error("Complete returned true for a missing file")
	}
}

func TestComplete_ZeroByteFileNeverComplete(t *testing.T) {
	// A crash mid-write leaves a zero-byte file behind; resume must re-run
	// the step rather than skip it.
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		DesignPath: "",
	})

	store := NewStore(StoreConfig{Root: root})
	if store.Complete(DesignPath) {
		t.Error("Complete returned true for a zero-byte file")
	}
}

func TestComplete_NonEmptyFile(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		DesignPath: "# Design\n",
	})

	store := NewStore(StoreConfig{Root: root})
	if !store.Complete(DesignPath) {
		t.Error("Complete returned false for a non-empty file")
	}
}

func TestComplete_AllPathsRequired(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		DesignPath: "# Design\n",
	})

	store := NewStore(StoreConfig{Root: root})
	if store.Complete(DesignPath, ReviewPath) {
		t.Error("Complete returned true when one path is missing")
	}
}

func TestComplete_EmptyPathSet(t *testing.T) {
	store := NewStore(StoreConfig{Root: t.TempDir()})

	if store.Complete() {
		t.Error("Complete returned true for an empty path set")
	}
}

func TestComplete_DirectoryIsNotAnArtifact(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		filepath.Join(SpecsDir, "auth.md"): "# Auth\n",
	})

	store := NewStore(StoreConfig{Root: root})
	if store.Complete(SpecsDir) {
		t.Error("Complete returned true for a directory")
	}
}

func TestCountSpecs(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"specs/auth.md":        "# Auth\n",
		"specs/storage.md":     "# Storage\n",
		"specs/api.md":         "# API\n",
		"specs/" + RawSpecName: "raw generator output\n", // sentinel, excluded
		"specs/notes.txt":      "not markdown\n",         // wrong extension
		"specs/empty.md":       "",                       // zero bytes
	})

	store := NewStore(StoreConfig{Root: root})
	if got := store.CountSpecs(); got != 3 {
		t.Errorf("CountSpecs() = %d, want 3", got)
	}

	ok, count := store.SpecsComplete()
	if !ok || count != 3 {
		t.Errorf("SpecsComplete() = (%v, %d), want (true, 3)", ok, count)
	}
}

func TestSpecsComplete_BelowMinimum(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"specs/auth.md": "# Auth\n",
		"specs/api.md":  "# API\n",
	})

	store := NewStore(StoreConfig{Root: root})
	ok, count := store.SpecsComplete()
	if ok {
		t.Error("SpecsComplete returned true below the minimum")
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestSpecsComplete_MissingDir(t *testing.T) {
	store := NewStore(StoreConfig{Root: t.TempDir()})

	ok, count := store.SpecsComplete()
	if ok || count != 0 {
		t.Errorf("SpecsComplete() = (%v, %d), want (false, 0)", ok, count)
	}
}

func TestReadWrite(t *testing.T) {
	store := NewStore(StoreConfig{Root: t.TempDir()})

	if err := store.Write("docs/design.md", []byte("# Design\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := store.Read("docs/design.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "# Design\n" {
		t.Errorf("Read = %q", data)
	}
}

func TestRead_NotFound(t *testing.T) {
	store := NewStore(StoreConfig{Root: t.TempDir()})

	_, err := store.Read("missing.md")
	if !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("err = %v, want ErrArtifactNotFound", err)
	}
}

func TestRootExists(t *testing.T) {
	store := NewStore(StoreConfig{Root: filepath.Join(t.TempDir(), "nope")})
	if store.RootExists() {
		t.Error("RootExists returned true for a missing directory")
	}

	store = NewStore(StoreConfig{Root: t.TempDir()})
	if !store.RootExists() {
		t.Error("RootExists returned false for an existing directory")
	}
}

func TestNewStore_DefaultMinSpecs(t *testing.T) {
	store := NewStore(StoreConfig{Root: t.TempDir()})
	if store.MinSpecs() != 3 {
		t.Errorf("MinSpecs() = %d, want 3", store.MinSpecs())
	}
}
