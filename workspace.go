package projinit

import (
	"errors"
	"fmt"

	projerrors "github.com/rwestwood89/agentic-project-init-sub002/errors"
	"github.com/rwestwood89/agentic-project-init-sub002/git"
)

// Workspace errors
var (
	// ErrWorkspaceConflict indicates fresh mode was requested but the
	// workspace already exists. Fresh mode must not silently reuse or
	// destroy an existing workspace.
	ErrWorkspaceConflict = errors.New("workspace already exists")
)

// WorkspaceEntry is the result of the setup step.
type WorkspaceEntry struct {
	Path     string // Worktree directory
	Branch   string // Branch checked out in the worktree
	Resumed  bool   // True when an existing workspace was entered
	FellBack bool   // True when resume was requested but nothing existed
}

// EnterWorkspace performs step 1: it creates the project worktree, or under
// resume mode enters the existing one.
//
// Rules:
//   - resume, workspace exists: enter it (the step is skipped)
//   - resume, no workspace: fall back to fresh creation; the caller logs a
//     warning that resume had nothing to resume
//   - fresh, workspace exists: fatal, suggests resume
//   - fresh, no workspace: create it
func EnterWorkspace(g *git.Context, branch string, resume bool) (*WorkspaceEntry, error) {
	exists := g.WorktreeExists(branch)

	if exists {
		if resume {
			return &WorkspaceEntry{
				Path:    g.WorktreePath(branch),
				Branch:  branch,
				Resumed: true,
			}, nil
		}
		return nil, projerrors.New(
			ErrWorkspaceConflict,
			fmt.Sprintf("Workspace for branch %q already exists at %s.", branch, g.WorktreePath(branch)),
			"Re-run with --resume to continue the existing run, or remove the worktree to start over.",
		)
	}

	path, err := g.CreateWorktree(branch)
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	return &WorkspaceEntry{
		Path:     path,
		Branch:   branch,
		FellBack: resume,
	}, nil
}
