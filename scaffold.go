package projinit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/rwestwood89/agentic-project-init-sub002/git"
)

// Manifest is the project.yaml scaffold file recording how the workspace was
// produced.
type Manifest struct {
	Project   string    `yaml:"project"`
	Title     string    `yaml:"title"`
	Branch    string    `yaml:"branch"`
	RunID     string    `yaml:"runId"`
	SpecCount int       `yaml:"specCount"`
	CreatedAt time.Time `yaml:"createdAt"`
	Generator string    `yaml:"generator"`
}

// ProjectTitle renders a project name like "payment-ledger" as
// "Payment Ledger".
func ProjectTitle(project string) string {
	spaced := strings.ReplaceAll(project, "-", " ")
	spaced = strings.ReplaceAll(spaced, "_", " ")
	return cases.Title(language.English).String(spaced)
}

// WriteManifest writes the project.yaml scaffold file. An existing manifest
// is kept as-is: rewriting it on a fully-resumed run would dirty the worktree
// and turn the no-op commit into an amend.
func WriteManifest(store *ArtifactStore, state State) error {
	if store.Has(ManifestPath) {
		return nil
	}

	m := Manifest{
		Project:   state.Project,
		Title:     ProjectTitle(state.Project),
		Branch:    state.Branch,
		RunID:     state.RunID,
		SpecCount: state.SpecCount,
		CreatedAt: time.Now().UTC(),
		Generator: "projinit",
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return store.Write(ManifestPath, data)
}

// EnsureIgnored guarantees the ignore list covers a path, appending it when
// the generated list left it out. The pipeline log must never be committed.
func EnsureIgnored(store *ArtifactStore, path string) error {
	data, err := store.Read(IgnorePath)
	if err != nil && !errors.Is(err, ErrArtifactNotFound) {
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == path {
			return nil
		}
	}

	content := string(data)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += path + "\n"
	return store.Write(IgnorePath, []byte(content))
}

// scaffoldCommitMessage is the commit used by the final step. The subject
// line doubles as the marker for detecting a prior scaffold commit to amend.
func scaffoldCommitMessage(project string) *git.CommitMessage {
	return git.NewCommitMessage(git.CommitTypeChore, "initialize project scaffold").
		WithScope(project).
		WithBody(fmt.Sprintf("Bootstrap artifacts for %s generated by the init pipeline.", ProjectTitle(project)))
}

// CommitScaffold stages everything in the worktree and commits. When nothing
// is staged the commit is skipped entirely, so a fully-resumed run is a
// no-op rather than a fatal error. When the tip commit is a prior scaffold
// commit from an earlier partial run, it is amended instead of duplicated.
//
// Returns the action taken: "committed", "amended" or "skipped".
func CommitScaffold(wt *git.Context, project string) (string, error) {
	if err := wt.StageAll(); err != nil {
		return "", err
	}

	staged, err := wt.HasStagedChanges()
	if err != nil {
		return "", err
	}
	if !staged {
		return "skipped", nil
	}

	msg := scaffoldCommitMessage(project)

	subject, err := wt.LastCommitSubject()
	if err != nil && !errors.Is(err, git.ErrNoCommits) {
		return "", err
	}
	if subject == msg.SubjectLine() {
		if err := wt.AmendCommit(msg.String()); err != nil {
			return "", err
		}
		return "amended", nil
	}

	if err := wt.Commit(msg.String()); err != nil {
		return "", err
	}
	return "committed", nil
}
