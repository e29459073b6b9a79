// Package projinit implements a resumable, checkpointed project-bootstrap
// pipeline. It drives the claude CLI through a fixed sequence of steps that
// generate design, review, specification, guide and prompt documents inside an
// isolated git worktree, then scaffolds and commits the result.
//
// The pipeline has no stored status record: a step counts as done when its
// completion artifacts exist on disk and are non-empty. Running with resume
// enabled skips completed steps and reconstructs their in-memory bindings
// from the artifact files, so a failed run can be re-entered without losing
// the values later steps depend on.
//
// Core components:
//   - Generator: wraps the claude CLI, capturing stdout and stderr
//   - Extractor: splits one generated document into named spec files
//   - ArtifactStore: the file-existence probe that defines step completion
//   - Logger: dual console + append-only log file writer
//   - Runner: executes the step sequence as a linear flowgraph
package projinit
