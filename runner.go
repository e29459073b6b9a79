package projinit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	projerrors "github.com/rwestwood89/agentic-project-init-sub002/errors"
	"github.com/rwestwood89/agentic-project-init-sub002/git"
)

// RunnerConfig configures a pipeline run.
type RunnerConfig struct {
	Git          *git.Context  // Repository the workspace worktree is created in (required)
	Generator    Generator     // Generation client (required)
	Prompts      *PromptLoader // Prompt templates (default: loader rooted at the repo)
	Console      io.Writer     // Interactive console sink (default: os.Stdout)
	Project      string        // Project name (required)
	BranchPrefix string        // Workspace branch prefix (default: "project/")
	Resume       bool          // Skip steps whose artifacts already exist
	MinSpecs     int           // Minimum qualifying spec files (default: 3)
}

// Runner executes the fixed step sequence for one pipeline invocation.
// Exactly one runner operates on a given workspace at a time; concurrent
// runs are not guarded against.
type Runner struct {
	cfg RunnerConfig
}

// NewRunner creates a pipeline runner.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.Git == nil {
		return nil, fmt.Errorf("git context is required")
	}
	if cfg.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if cfg.Project == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if cfg.Console == nil {
		cfg.Console = os.Stdout
	}
	if cfg.BranchPrefix == "" {
		cfg.BranchPrefix = "project/"
	}
	if cfg.Prompts == nil {
		cfg.Prompts = NewPromptLoader(cfg.Git.RepoPath())
	}
	return &Runner{cfg: cfg}, nil
}

// Branch returns the workspace branch for the configured project.
func (r *Runner) Branch() string {
	return r.cfg.BranchPrefix + r.cfg.Project
}

// Run executes the pipeline. Step 1 (workspace setup) runs directly because
// the logger's file sink is workspace-relative and cannot exist earlier;
// steps 2..10 run as a linear flowgraph with a checkpoint wrapper per node.
//
// Any failure aborts the whole run: the variable dependency chain requires
// steps to be fully done or not done, never half done and continuing.
func (r *Runner) Run(ctx context.Context) (State, error) {
	steps := Steps()
	state := NewState(r.cfg.Project).
		WithBranch(r.Branch()).
		WithResume(r.cfg.Resume)

	// Step 1: set up or enter the workspace.
	entry, err := EnterWorkspace(r.cfg.Git, state.Branch, r.cfg.Resume)
	if err != nil {
		state.SetError(err)
		return state, failStep(steps[0], err)
	}
	state = state.WithWorkspace(entry.Path)

	// The dual-sink logger is established exactly once, immediately after
	// the workspace exists, and persists for the rest of the run.
	log, err := NewLogger(r.cfg.Console, filepath.Join(entry.Path, LogFileName))
	if err != nil {
		state.SetError(err)
		return state, failStep(steps[0], err)
	}
	defer log.Close()

	log.Mode(r.cfg.Resume)
	total := len(steps)
	switch {
	case entry.Resumed:
		log.Timestamp("Step 1/%d: %s — workspace exists, entering %s", total, steps[0].Name, entry.Path)
	case entry.FellBack:
		log.Timestamp("warning: resume requested but no workspace found, starting fresh")
		log.Timestamp("Step 1/%d: %s — created %s", total, steps[0].Name, entry.Path)
	default:
		log.Timestamp("Step 1/%d: %s — created %s", total, steps[0].Name, entry.Path)
	}

	store := NewStore(StoreConfig{Root: entry.Path, MinSpecs: r.cfg.MinSpecs})
	services := &Services{
		Git:       r.cfg.Git,
		Generator: r.cfg.Generator,
		Store:     store,
		Logger:    log,
		Prompts:   r.cfg.Prompts,
		Extractor: NewExtractor(),
	}
	baseCtx := services.InjectAll(ctx)

	// Steps 2..10 as a linear flowgraph: slice order is execution order, so
	// a later step never runs before an earlier one.
	graph := flowgraph.NewGraph[State]()
	prev := ""
	for _, step := range steps[1:] {
		node := r.checkpointed(step, nodeForStep(step))
		graph = graph.AddNode(step.NodeID, flowgraph.NodeFunc[State](node))
		if prev != "" {
			graph = graph.AddEdge(prev, step.NodeID)
		}
		prev = step.NodeID
	}
	graph = graph.AddEdge(prev, flowgraph.END).SetEntry(steps[1].NodeID)

	compiled, err := graph.Compile()
	if err != nil {
		state.SetError(err)
		return state, fmt.Errorf("build pipeline graph: %w", err)
	}

	final, err := compiled.Run(flowgraph.NewContext(baseCtx), state)
	if err != nil {
		// Fatal diagnostics go through the logger so the durable log file
		// carries the audit trail for diagnosing and resuming the run.
		log.Timestamp("Pipeline aborted: %s", projerrors.Message(err))
		state.SetError(err)
		return state, err
	}

	log.Timestamp("Pipeline completed: %s", final.Summary())
	return final, nil
}

// nodeForStep maps a step to its node implementation.
func nodeForStep(step Step) NodeFunc {
	switch step.NodeID {
	case "design":
		return DesignNode
	case "design-review":
		return DesignReviewNode
	case "specs":
		return SpecsNode
	case "agents-guide":
		return AgentsGuideNode
	case "implement-prompt":
		return ImplementPromptNode
	case "review-prompt":
		return ReviewPromptNode
	case "ignore":
		return IgnoreNode
	case "readme":
		return ReadmeNode
	case "scaffold-commit":
		return ScaffoldCommitNode
	default:
		return func(ctx flowgraph.Context, state State) (State, error) {
			return state, fmt.Errorf("no node for step %d (%s)", step.Index, step.Name)
		}
	}
}

// checkpointed wraps a node with the skip-vs-run decision. A skipped step
// reconstructs its binding from disk so later steps see the same values a
// fresh run would have produced; a run step is Completed only when its
// completion artifacts exist and are non-empty afterward.
func (r *Runner) checkpointed(step Step, node NodeFunc) NodeFunc {
	total := len(Steps())
	return func(ctx flowgraph.Context, state State) (State, error) {
		store := StoreFromContext(ctx)
		log := LoggerFromContext(ctx)

		if Status(step, store, state.Resume) == StepSkipped {
			log.Timestamp("Step %d/%d: %s — already complete, skipping", step.Index, total, step.Name)
			if step.Restore != nil {
				if err := step.Restore(&state, store); err != nil {
					state.SetError(err)
					return state, failStep(step, fmt.Errorf("restore binding: %w", err))
				}
			}
			return state, nil
		}

		log.Timestamp("Step %d/%d: %s", step.Index, total, step.Name)

		out, err := node(ctx, state)
		if err != nil {
			out.SetError(err)
			return out, failStep(step, err)
		}

		if !StepComplete(step, store) {
			err := fmt.Errorf("step finished without producing its completion artifacts")
			out.SetError(err)
			return out, failStep(step, err)
		}

		log.Timestamp("Step %d/%d: %s — done", step.Index, total, step.Name)
		return out, nil
	}
}

// failStep shapes a step failure into the operator-facing diagnostic: step
// index, step name, underlying detail, and the resume suggestion. An error
// that is already operator-shaped passes through untouched.
func failStep(step Step, err error) error {
	var cliErr *projerrors.CLIError
	if errors.As(err, &cliErr) {
		return err
	}
	return projerrors.WithDetails(err,
		fmt.Sprintf("Step %d (%s) failed.", step.Index, step.Name),
		err.Error(),
		"Fix the underlying issue and re-run with --resume to continue without repeating completed steps.",
	)
}
