package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WorktreeInfo represents an active git worktree.
type WorktreeInfo struct {
	Path   string // Filesystem path to the worktree
	Branch string // Branch checked out in the worktree
	Commit string // HEAD commit SHA
}

// WorktreePath returns the path a worktree for the branch would live at.
func (g *Context) WorktreePath(branch string) string {
	return filepath.Join(g.repoPath, g.worktreeDir, SanitizeBranchName(branch))
}

// WorktreeExists reports whether a worktree directory exists for the branch.
func (g *Context) WorktreeExists(branch string) bool {
	info, err := os.Stat(g.WorktreePath(branch))
	return err == nil && info.IsDir()
}

// CreateWorktree creates an isolated worktree for the branch.
// If the branch doesn't exist, it will be created.
// Returns the path to the worktree directory.
func (g *Context) CreateWorktree(branch string) (string, error) {
	worktreePath := g.WorktreePath(branch)

	if _, err := os.Stat(worktreePath); err == nil {
		return "", ErrWorktreeExists
	}

	worktreesDir := filepath.Join(g.repoPath, g.worktreeDir)
	if err := os.MkdirAll(worktreesDir, 0755); err != nil {
		return "", fmt.Errorf("create worktrees dir: %w", err)
	}

	// Try to create the worktree with a new branch; fall back to an
	// existing branch.
	_, err := g.runGit("worktree", "add", "-b", branch, worktreePath, "HEAD")
	if err != nil {
		_, err = g.runGit("worktree", "add", worktreePath, branch)
		if err != nil {
			if strings.Contains(err.Error(), "not a valid reference") ||
				strings.Contains(err.Error(), "invalid reference") {
				return "", fmt.Errorf("branch %q does not exist and could not be created: %w", branch, err)
			}
			return "", &Error{Op: "create worktree", Err: err}
		}
	}

	return worktreePath, nil
}

// CleanupWorktree removes a worktree and its registration.
func (g *Context) CleanupWorktree(worktreePath string) error {
	_, err := g.runGit("worktree", "remove", worktreePath)
	if err != nil {
		// Force remove if normal fails (uncommitted changes, etc.)
		_, err = g.runGit("worktree", "remove", "--force", worktreePath)
		if err != nil {
			return &Error{Op: "cleanup worktree", Err: err}
		}
	}

	return nil
}

// ListWorktrees returns all active worktrees.
func (g *Context) ListWorktrees() ([]WorktreeInfo, error) {
	output, err := g.runGit("worktree", "list", "--porcelain")
	if err != nil {
		return nil, &Error{Op: "list worktrees", Err: err}
	}

	var worktrees []WorktreeInfo
	var current WorktreeInfo

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if current.Path != "" {
				worktrees = append(worktrees, current)
				current = WorktreeInfo{}
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "worktree "):
			current.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			current.Commit = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "detached":
			current.Branch = "(detached)"
		}
	}

	if current.Path != "" {
		worktrees = append(worktrees, current)
	}

	return worktrees, nil
}

// PruneWorktrees removes stale worktree administrative files.
func (g *Context) PruneWorktrees() error {
	if _, err := g.runGit("worktree", "prune"); err != nil {
		return &Error{Op: "prune worktrees", Err: err}
	}
	return nil
}
