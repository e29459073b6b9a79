package projinit

import (
	"testing"

	"github.com/randalmurphal/llmkit/model"

	"github.com/rwestwood89/agentic-project-init-sub002/testutil"
)

func TestSteps_FixedOrder(t *testing.T) {
	steps := Steps()
	if len(steps) != 10 {
		t.Fatalf("len(Steps()) = %d, want 10", len(steps))
	}
	for i, step := range steps {
		if step.Index != i+1 {
			t.Errorf("steps[%d].Index = %d, want %d", i, step.Index, i+1)
		}
	}
	if steps[0].Kind != KindSetup {
		t.Errorf("first step kind = %q, want %q", steps[0].Kind, KindSetup)
	}
	if steps[len(steps)-1].Kind != KindScaffoldAndCommit {
		t.Errorf("last step kind = %q, want %q", steps[len(steps)-1].Kind, KindScaffoldAndCommit)
	}
}

func TestStatus_FreshModeNeverSkips(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		DesignPath: "# Design\n",
	})
	store := NewStore(StoreConfig{Root: root})

	for _, step := range Steps() {
		if got := Status(step, store, false); got != StepPending {
			t.Errorf("Status(step %d, fresh) = %q, want pending", step.Index, got)
		}
	}
}

func TestStatus_ResumeSkipsCompleteSteps(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		DesignPath: "# Design\n",
	})
	store := NewStore(StoreConfig{Root: root})
	steps := Steps()

	if got := Status(steps[1], store, true); got != StepSkipped {
		t.Errorf("design step status = %q, want skipped", got)
	}
	if got := Status(steps[2], store, true); got != StepPending {
		t.Errorf("review step status = %q, want pending", got)
	}
}

func TestStatus_FinalStepNeverSkips(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		ManifestPath: "project: demo\n",
	})
	store := NewStore(StoreConfig{Root: root})
	final := Steps()[9]

	if got := Status(final, store, true); got != StepPending {
		t.Errorf("final step status = %q, want pending", got)
	}
}

func TestStepComplete_SpecsRequireMinimum(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"specs/auth.md":        "# Auth\n",
		"specs/" + RawSpecName: "raw\n",
	})
	store := NewStore(StoreConfig{Root: root})
	specs := Steps()[3]

	if StepComplete(specs, store) {
		t.Error("specs step complete with one qualifying file")
	}

	testutil.WriteFiles(t, root, map[string]string{
		"specs/storage.md": "# Storage\n",
		"specs/api.md":     "# API\n",
	})
	if !StepComplete(specs, store) {
		t.Error("specs step incomplete with three qualifying files")
	}
}

func TestRestore_ReconstructsBindings(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		DesignPath:         "# The Design\n",
		ReviewPath:         "# The Review\n",
		"specs/auth.md":    "# Auth\n",
		"specs/storage.md": "# Storage\n",
		"specs/api.md":     "# API\n",
	})
	store := NewStore(StoreConfig{Root: root})
	steps := Steps()

	state := NewState("demo")
	for _, step := range steps {
		if step.Restore == nil {
			continue
		}
		if err := step.Restore(&state, store); err != nil {
			t.Fatalf("Restore step %d: %v", step.Index, err)
		}
	}

	if state.Design != "# The Design\n" {
		t.Errorf("Design = %q", state.Design)
	}
	if state.Review != "# The Review\n" {
		t.Errorf("Review = %q", state.Review)
	}
	if state.SpecCount != 3 {
		t.Errorf("SpecCount = %d, want 3", state.SpecCount)
	}
}

func TestRestore_MissingArtifactFails(t *testing.T) {
	store := NewStore(StoreConfig{Root: t.TempDir()})
	design := Steps()[1]

	state := NewState("demo")
	if err := design.Restore(&state, store); err == nil {
		t.Fatal("Restore succeeded without the artifact on disk")
	}
}

func TestPlan(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		DesignPath: "# Design\n",
		ReviewPath: "# Review\n",
	})
	store := NewStore(StoreConfig{Root: root})

	plan := Plan(store, true)
	if plan[2] != StepSkipped || plan[3] != StepSkipped {
		t.Errorf("plan[2], plan[3] = %q, %q, want skipped", plan[2], plan[3])
	}
	if plan[4] != StepPending {
		t.Errorf("plan[4] = %q, want pending", plan[4])
	}
	if plan[10] != StepPending {
		t.Errorf("plan[10] = %q, want pending", plan[10])
	}
}

func TestQualifiesAsSpec(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"auth.md", true},
		{"specs/storage.md", true},
		{RawSpecName, false},
		{"specs/" + RawSpecName, false},
		{"notes.txt", false},
	}
	for _, tc := range cases {
		if got := QualifiesAsSpec(tc.name); got != tc.want {
			t.Errorf("QualifiesAsSpec(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestModelForStep(t *testing.T) {
	if got := ModelForStep("design"); got != model.ModelOpus {
		t.Errorf("design model = %q, want opus", got)
	}
	if got := ModelForStep("ignore"); got != model.ModelHaiku {
		t.Errorf("ignore model = %q, want haiku", got)
	}
	if got := ModelForStep("unknown"); got != model.ModelSonnet {
		t.Errorf("fallback model = %q, want sonnet", got)
	}
}
