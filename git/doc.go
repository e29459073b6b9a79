// Package git provides the version-control boundary for the pipeline:
// worktree creation, staging, and the commit-or-amend contract.
//
// Key types:
//   - Context: git operations scoped to a repository or worktree
//   - CommandRunner: interface for executing git commands (with mock for testing)
//   - CommitMessage: conventional-commit message builder
package git
