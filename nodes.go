package projinit

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"
)

// NodeFunc is a pipeline node processing state and returning updated state.
// This signature is compatible with flowgraph's NodeFunc[State].
type NodeFunc func(ctx flowgraph.Context, state State) (State, error)

// generateDocument runs one generation call for a step: loads the step's
// prompt, invokes the generator with the step's model, surfaces diagnostic
// output, and accounts tokens. The caller writes the artifact.
func generateDocument(ctx flowgraph.Context, state *State, nodeID, promptName string, vars map[string]any) (string, error) {
	gen := GeneratorFromContext(ctx)
	if gen == nil {
		return "", fmt.Errorf("generator not found in context")
	}
	prompts := PromptsFromContext(ctx)
	if prompts == nil {
		return "", fmt.Errorf("prompt loader not found in context")
	}

	prompt, err := prompts.LoadWithVars(promptName, vars)
	if err != nil {
		return "", err
	}

	start := time.Now()
	result, err := gen.Generate(ctx, prompt,
		WithModel(ModelForStep(nodeID)),
		WithWorkDir(state.Workspace),
	)
	if err != nil {
		return "", err
	}
	slog.Debug("generation completed", "runId", state.RunID, "node", nodeID, "duration", time.Since(start))

	// Diagnostic output is always surfaced, even on success. Silently
	// discarding it previously made failures visible only as downstream
	// emptiness.
	if result.Stderr != "" {
		if log := LoggerFromContext(ctx); log != nil {
			log.Timestamp("generator diagnostics (%s): %s", nodeID, result.Stderr)
		}
	}

	state.AddTokens(result.TokensIn, result.TokensOut)
	return result.Output, nil
}

// promptVars builds the common template variables from state.
func promptVars(state State) map[string]any {
	return map[string]any{
		"Project":   state.Project,
		"Design":    state.Design,
		"Review":    state.Review,
		"SpecCount": state.SpecCount,
	}
}

// DesignNode generates the design document.
//
// Updates: state.Design
func DesignNode(ctx flowgraph.Context, state State) (State, error) {
	if err := state.Validate(RequireWorkspace); err != nil {
		return state, err
	}

	output, err := generateDocument(ctx, &state, "design", "design", promptVars(state))
	if err != nil {
		return state, err
	}

	if err := StoreFromContext(ctx).Write(DesignPath, []byte(output)); err != nil {
		return state, err
	}
	state.Design = output
	return state, nil
}

// DesignReviewNode generates the design review.
//
// Prerequisites: state.Design
// Updates: state.Review
func DesignReviewNode(ctx flowgraph.Context, state State) (State, error) {
	if err := state.Validate(RequireWorkspace, RequireDesign); err != nil {
		return state, err
	}

	output, err := generateDocument(ctx, &state, "design-review", "design-review", promptVars(state))
	if err != nil {
		return state, err
	}

	if err := StoreFromContext(ctx).Write(ReviewPath, []byte(output)); err != nil {
		return state, err
	}
	state.Review = output
	return state, nil
}

// SpecsNode generates the specification documents: one generation call whose
// output is split into named spec files by the extractor. The raw generated
// document is kept as the sentinel file for debugging; it never counts
// toward completion.
//
// Prerequisites: state.Design, state.Review
// Updates: state.SpecCount
func SpecsNode(ctx flowgraph.Context, state State) (State, error) {
	if err := state.Validate(RequireWorkspace, RequireDesign, RequireReview); err != nil {
		return state, err
	}

	store := StoreFromContext(ctx)
	ext := ExtractorFromContext(ctx)
	if ext == nil {
		ext = NewExtractor()
	}

	vars := promptVars(state)
	vars["MinSpecs"] = store.MinSpecs()

	output, err := generateDocument(ctx, &state, "specs", "specs", vars)
	if err != nil {
		return state, err
	}

	rawPath := SpecsDir + "/" + RawSpecName
	if err := store.Write(rawPath, []byte(output)); err != nil {
		return state, err
	}

	artifacts, err := ext.Extract(output)
	if err != nil {
		return state, err
	}

	for _, a := range artifacts {
		if err := store.Write(a.Path, []byte(a.Content)); err != nil {
			return state, fmt.Errorf("write spec %s: %w", a.Path, err)
		}
	}

	ok, count := store.SpecsComplete()
	if !ok {
		return state, fmt.Errorf("extracted %d specification(s), need at least %d", count, store.MinSpecs())
	}

	state.SpecCount = count
	return state, nil
}

// AgentsGuideNode generates the AGENTS.md guide.
func AgentsGuideNode(ctx flowgraph.Context, state State) (State, error) {
	if err := state.Validate(RequireWorkspace, RequireDesign, RequireSpecs); err != nil {
		return state, err
	}

	output, err := generateDocument(ctx, &state, "agents-guide", "agents-guide", promptVars(state))
	if err != nil {
		return state, err
	}

	return state, StoreFromContext(ctx).Write(AgentsGuidePath, []byte(output))
}

// ImplementPromptNode generates the reusable implementation prompt.
func ImplementPromptNode(ctx flowgraph.Context, state State) (State, error) {
	if err := state.Validate(RequireWorkspace, RequireDesign); err != nil {
		return state, err
	}

	output, err := generateDocument(ctx, &state, "implement-prompt", "implement-prompt", promptVars(state))
	if err != nil {
		return state, err
	}

	return state, StoreFromContext(ctx).Write(ImplementPromptPath, []byte(output))
}

// ReviewPromptNode generates the reusable review prompt.
func ReviewPromptNode(ctx flowgraph.Context, state State) (State, error) {
	if err := state.Validate(RequireWorkspace); err != nil {
		return state, err
	}

	output, err := generateDocument(ctx, &state, "review-prompt", "review-prompt", promptVars(state))
	if err != nil {
		return state, err
	}

	return state, StoreFromContext(ctx).Write(ReviewPromptPath, []byte(output))
}

// IgnoreNode generates the ignore list. Whatever the model produces, the
// pipeline log file ends up listed: the log lives inside the workspace and
// must never be committed.
func IgnoreNode(ctx flowgraph.Context, state State) (State, error) {
	if err := state.Validate(RequireWorkspace); err != nil {
		return state, err
	}

	store := StoreFromContext(ctx)
	vars := promptVars(state)
	vars["LogFile"] = LogFileName
	vars["SpecsDir"] = SpecsDir
	vars["RawSpec"] = RawSpecName

	output, err := generateDocument(ctx, &state, "ignore", "ignore", vars)
	if err != nil {
		return state, err
	}

	if err := store.Write(IgnorePath, []byte(output)); err != nil {
		return state, err
	}
	if err := EnsureIgnored(store, LogFileName); err != nil {
		return state, err
	}
	return state, EnsureIgnored(store, SpecsDir+"/"+RawSpecName)
}

// ReadmeNode generates the project README.
func ReadmeNode(ctx flowgraph.Context, state State) (State, error) {
	if err := state.Validate(RequireWorkspace, RequireDesign); err != nil {
		return state, err
	}

	output, err := generateDocument(ctx, &state, "readme", "readme", promptVars(state))
	if err != nil {
		return state, err
	}

	return state, StoreFromContext(ctx).Write(ReadmePath, []byte(output))
}

// ScaffoldCommitNode writes the manifest and commits the workspace. It never
// skips on resume; instead its commit logic is idempotent: nothing staged
// means no commit, and a prior scaffold commit is amended rather than
// duplicated.
func ScaffoldCommitNode(ctx flowgraph.Context, state State) (State, error) {
	if err := state.Validate(RequireWorkspace); err != nil {
		return state, err
	}

	store := StoreFromContext(ctx)
	log := LoggerFromContext(ctx)

	if err := WriteManifest(store, state); err != nil {
		return state, err
	}

	g := GitFromContext(ctx)
	if g == nil {
		return state, fmt.Errorf("git context not found in context")
	}

	action, err := CommitScaffold(g.InWorktree(state.Workspace), state.Project)
	if err != nil {
		return state, err
	}

	if log != nil {
		switch action {
		case "skipped":
			log.Timestamp("nothing staged, commit skipped")
		case "amended":
			log.Timestamp("amended prior scaffold commit")
		default:
			log.Timestamp("created scaffold commit")
		}
	}

	return state, nil
}
