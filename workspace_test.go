package projinit

import (
	"os"
	"testing"

	projerrors "github.com/rwestwood89/agentic-project-init-sub002/errors"
	"github.com/rwestwood89/agentic-project-init-sub002/git"
	"github.com/rwestwood89/agentic-project-init-sub002/testutil"
)

func workspaceGit(t *testing.T) *git.Context {
	t.Helper()

	repo := testutil.SetupTestRepo(t)
	g, err := git.NewContext(repo)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return g
}

func TestEnterWorkspace_FreshCreates(t *testing.T) {
	g := workspaceGit(t)

	entry, err := EnterWorkspace(g, "project/demo", false)
	if err != nil {
		t.Fatalf("EnterWorkspace: %v", err)
	}
	if entry.Resumed || entry.FellBack {
		t.Errorf("entry = %+v, want plain creation", entry)
	}

	info, err := os.Stat(entry.Path)
	if err != nil || !info.IsDir() {
		t.Errorf("workspace directory not created: %v", err)
	}
}

func TestEnterWorkspace_ResumeEntersExisting(t *testing.T) {
	g := workspaceGit(t)

	first, err := EnterWorkspace(g, "project/demo", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	entry, err := EnterWorkspace(g, "project/demo", true)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !entry.Resumed {
		t.Error("Resumed = false, want true")
	}
	if entry.Path != first.Path {
		t.Errorf("resume path = %q, want %q", entry.Path, first.Path)
	}
}

func TestEnterWorkspace_FreshConflictIsFatal(t *testing.T) {
	g := workspaceGit(t)

	if _, err := EnterWorkspace(g, "project/demo", false); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := EnterWorkspace(g, "project/demo", false)
	if err == nil {
		t.Fatal("fresh run over an existing workspace succeeded")
	}

	// The failure must carry the resume suggestion for the operator.
	if s := projerrors.Suggestion(err); s == "" {
		t.Error("conflict error has no suggestion")
	}
}

func TestEnterWorkspace_ResumeWithoutWorkspaceFallsBack(t *testing.T) {
	g := workspaceGit(t)

	entry, err := EnterWorkspace(g, "project/demo", true)
	if err != nil {
		t.Fatalf("EnterWorkspace: %v", err)
	}
	if !entry.FellBack {
		t.Error("FellBack = false, want true")
	}
	if entry.Resumed {
		t.Error("Resumed = true, want false")
	}

	info, err := os.Stat(entry.Path)
	if err != nil || !info.IsDir() {
		t.Errorf("workspace directory not created on fallback: %v", err)
	}
}
