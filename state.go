package projinit

import (
	"fmt"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// State is the mutable run context threaded through the pipeline for one
// invocation. It is owned by the Runner for the duration of a run and is
// never persisted as a structured object: its durable projection is the set
// of artifact files in the workspace.
type State struct {
	// Identification
	RunID   string `json:"runId"`
	Project string `json:"project"`

	// Workspace
	Workspace  string `json:"workspace,omitempty"`
	Branch     string `json:"branch,omitempty"`
	BaseBranch string `json:"baseBranch,omitempty"`
	Resume     bool   `json:"resume,omitempty"`

	// Bindings produced by completed steps. Each one is re-derivable from
	// its step's completion artifacts (the resume contract).
	Design    string `json:"design,omitempty"`
	Review    string `json:"review,omitempty"`
	SpecCount int    `json:"specCount,omitempty"`

	// Metrics
	TotalTokensIn  int       `json:"totalTokensIn"`
	TotalTokensOut int       `json:"totalTokensOut"`
	StartTime      time.Time `json:"startTime"`

	// Error tracking
	Error string `json:"error,omitempty"`
}

// NewState creates a run state for the given project name.
func NewState(project string) State {
	return State{
		RunID:     generateRunID(project),
		Project:   project,
		StartTime: time.Now(),
	}
}

// WithBranch sets the workspace branch.
func (s State) WithBranch(branch string) State {
	s.Branch = branch
	return s
}

// WithWorkspace sets the workspace path.
func (s State) WithWorkspace(path string) State {
	s.Workspace = path
	return s
}

// WithResume sets resume mode.
func (s State) WithResume(resume bool) State {
	s.Resume = resume
	return s
}

// AddTokens updates token metrics.
func (s *State) AddTokens(in, out int) {
	s.TotalTokensIn += in
	s.TotalTokensOut += out
}

// SetError records the error state.
func (s *State) SetError(err error) {
	if err != nil {
		s.Error = err.Error()
	}
}

// StateRequirement defines a state prerequisite for a node.
type StateRequirement string

const (
	RequireWorkspace StateRequirement = "workspace"
	RequireDesign    StateRequirement = "design"
	RequireReview    StateRequirement = "review"
	RequireSpecs     StateRequirement = "specs"
)

// Validate checks that the state carries the required bindings.
func (s State) Validate(requirements ...StateRequirement) error {
	for _, req := range requirements {
		switch req {
		case RequireWorkspace:
			if s.Workspace == "" {
				return fmt.Errorf("workspace required")
			}
		case RequireDesign:
			if s.Design == "" {
				return fmt.Errorf("design document required")
			}
		case RequireReview:
			if s.Review == "" {
				return fmt.Errorf("design review required")
			}
		case RequireSpecs:
			if s.SpecCount == 0 {
				return fmt.Errorf("specifications required")
			}
		default:
			return fmt.Errorf("unknown requirement: %s", req)
		}
	}
	return nil
}

// Summary returns a human-readable summary of the run.
func (s State) Summary() string {
	var status string
	switch {
	case s.Error != "":
		status = "failed"
	case s.SpecCount > 0:
		status = "specified"
	case s.Design != "":
		status = "designed"
	case s.Workspace != "":
		status = "started"
	default:
		status = "pending"
	}
	return fmt.Sprintf("Run %s [%s]: %s (tokens: %d in, %d out)",
		s.RunID, status, s.Project, s.TotalTokensIn, s.TotalTokensOut)
}

// generateRunID creates a unique run ID.
func generateRunID(project string) string {
	timestamp := time.Now().Format("2006-01-02")
	suffix, err := nanoid.Generate("0123456789abcdef", 8)
	if err != nil {
		suffix = "00000000"
	}
	return fmt.Sprintf("%s-%s-%s", timestamp, project, suffix)
}
