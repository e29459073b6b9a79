package projinit

import (
	"path/filepath"
	"strings"

	"github.com/randalmurphal/llmkit/model"
)

// Well-known workspace-relative artifact paths. Step completion is defined
// entirely in terms of these files.
const (
	DesignPath          = "docs/design.md"
	ReviewPath          = "docs/design-review.md"
	SpecsDir            = "specs"
	RawSpecName         = "raw-output.md"
	AgentsGuidePath     = "AGENTS.md"
	ImplementPromptPath = "prompts/implement.md"
	ReviewPromptPath    = "prompts/review.md"
	IgnorePath          = ".gitignore"
	ReadmePath          = "README.md"
	ManifestPath        = "project.yaml"

	// LogFileName is the append-only pipeline log inside the workspace.
	// The generated ignore list must include it.
	LogFileName = "project-init.log"
)

// Kind classifies what a step does. It decides how the runner checks
// completion and whether the step may be skipped on resume.
type Kind string

const (
	KindSetup                   Kind = "setup"
	KindGeneration              Kind = "generation"
	KindMultiArtifactGeneration Kind = "multi-artifact-generation"
	KindScaffoldAndCommit       Kind = "scaffold-and-commit"
)

// Step is one ordered, 1-indexed unit of pipeline work. Steps are statically
// defined; never created or destroyed at runtime.
type Step struct {
	Index     int
	Name      string
	NodeID    string
	Kind      Kind
	Artifacts []string // workspace-relative completion artifacts

	// Restore reconstructs the binding a fresh run of this step would have
	// produced, reading only the step's completion artifacts. Nil for steps
	// that contribute nothing to later steps.
	Restore func(state *State, store *ArtifactStore) error
}

// Steps returns the fixed ordered step sequence.
func Steps() []Step {
	return []Step{
		{
			Index: 1, Name: "set up workspace", NodeID: "setup",
			Kind: KindSetup,
		},
		{
			Index: 2, Name: "generate design document", NodeID: "design",
			Kind: KindGeneration, Artifacts: []string{DesignPath},
			Restore: func(state *State, store *ArtifactStore) error {
				content, err := store.Read(DesignPath)
				if err != nil {
					return err
				}
				state.Design = string(content)
				return nil
			},
		},
		{
			Index: 3, Name: "generate design review", NodeID: "design-review",
			Kind: KindGeneration, Artifacts: []string{ReviewPath},
			Restore: func(state *State, store *ArtifactStore) error {
				content, err := store.Read(ReviewPath)
				if err != nil {
					return err
				}
				state.Review = string(content)
				return nil
			},
		},
		{
			Index: 4, Name: "generate specifications", NodeID: "specs",
			Kind: KindMultiArtifactGeneration,
			Restore: func(state *State, store *ArtifactStore) error {
				state.SpecCount = store.CountSpecs()
				return nil
			},
		},
		{
			Index: 5, Name: "generate agents guide", NodeID: "agents-guide",
			Kind: KindGeneration, Artifacts: []string{AgentsGuidePath},
		},
		{
			Index: 6, Name: "generate implement prompt", NodeID: "implement-prompt",
			Kind: KindGeneration, Artifacts: []string{ImplementPromptPath},
		},
		{
			Index: 7, Name: "generate review prompt", NodeID: "review-prompt",
			Kind: KindGeneration, Artifacts: []string{ReviewPromptPath},
		},
		{
			Index: 8, Name: "generate ignore list", NodeID: "ignore",
			Kind: KindGeneration, Artifacts: []string{IgnorePath},
		},
		{
			Index: 9, Name: "generate project readme", NodeID: "readme",
			Kind: KindGeneration, Artifacts: []string{ReadmePath},
		},
		{
			Index: 10, Name: "scaffold and commit", NodeID: "scaffold-commit",
			Kind: KindScaffoldAndCommit, Artifacts: []string{ManifestPath},
		},
	}
}

// DefaultModelMap maps step node IDs to the model used for their generation
// call. Design-level documents need a reasoning model; the rest run on the
// default tier.
var DefaultModelMap = map[string]model.ModelName{
	"design":           model.ModelOpus,
	"design-review":    model.ModelOpus,
	"specs":            model.ModelOpus,
	"agents-guide":     model.ModelSonnet,
	"implement-prompt": model.ModelSonnet,
	"review-prompt":    model.ModelSonnet,
	"ignore":           model.ModelHaiku,
	"readme":           model.ModelSonnet,
}

// ModelForStep returns the model for a step's generation call.
func ModelForStep(nodeID string) model.ModelName {
	if m, ok := DefaultModelMap[nodeID]; ok {
		return m
	}
	return model.ModelSonnet
}

// StepStatus is the per-step state machine position.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepSkipped   StepStatus = "skipped"
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
)

// StepComplete reports whether a step's completion artifacts already exist
// and are non-empty. The probe is read-only.
func StepComplete(step Step, store *ArtifactStore) bool {
	switch step.Kind {
	case KindSetup:
		return store.RootExists()
	case KindMultiArtifactGeneration:
		ok, _ := store.SpecsComplete()
		return ok
	default:
		return store.Complete(step.Artifacts...)
	}
}

// Status is the pure skip-vs-run decision for one step. Under resume mode a
// step whose artifacts prove completion is Skipped; everything else is
// Pending. The final step never skips: its commit logic is a no-op when
// nothing is staged.
func Status(step Step, store *ArtifactStore, resume bool) StepStatus {
	if !resume {
		return StepPending
	}
	if step.Kind == KindScaffoldAndCommit {
		return StepPending
	}
	if StepComplete(step, store) {
		return StepSkipped
	}
	return StepPending
}

// Plan returns the anticipated status of every step before a run starts.
func Plan(store *ArtifactStore, resume bool) map[int]StepStatus {
	plan := make(map[int]StepStatus, len(Steps()))
	for _, step := range Steps() {
		plan[step.Index] = Status(step, store, resume)
	}
	return plan
}

// QualifiesAsSpec reports whether a filename counts toward the minimum
// specification count. The raw-output sentinel never qualifies.
func QualifiesAsSpec(name string) bool {
	base := filepath.Base(name)
	if base == RawSpecName {
		return false
	}
	return strings.HasSuffix(base, ".md")
}
