package projinit

import (
	"errors"
	"os"
	"path/filepath"
)

// Artifact errors
var (
	ErrArtifactNotFound = errors.New("artifact not found")
)

// StoreConfig holds configuration for the artifact store.
type StoreConfig struct {
	Root     string // Workspace directory (required)
	MinSpecs int    // Minimum qualifying spec files (default: 3)
}

// ArtifactStore is the read-only probe that decides whether a step has
// already run: a path set is complete iff every path exists and has non-zero
// size. It is the sole source of truth for step completion.
type ArtifactStore struct {
	root     string
	minSpecs int
}

// NewStore creates an artifact store rooted at the workspace directory.
func NewStore(cfg StoreConfig) *ArtifactStore {
	if cfg.MinSpecs == 0 {
		cfg.MinSpecs = 3
	}
	return &ArtifactStore{
		root:     cfg.Root,
		minSpecs: cfg.MinSpecs,
	}
}

// Root returns the workspace directory.
func (s *ArtifactStore) Root() string {
	return s.root
}

// MinSpecs returns the minimum qualifying spec count.
func (s *ArtifactStore) MinSpecs() int {
	return s.minSpecs
}

// RootExists reports whether the workspace directory itself exists.
func (s *ArtifactStore) RootExists() bool {
	info, err := os.Stat(s.root)
	return err == nil && info.IsDir()
}

// Complete reports whether every path exists and is non-empty. A zero-byte
// file is never complete: a crash mid-write must not cause a false-positive
// skip on resume.
func (s *ArtifactStore) Complete(paths ...string) bool {
	if len(paths) == 0 {
		return false
	}
	for _, path := range paths {
		info, err := os.Stat(filepath.Join(s.root, path))
		if err != nil || info.IsDir() || info.Size() == 0 {
			return false
		}
	}
	return true
}

// CountSpecs returns the number of qualifying specification files: non-empty
// .md files under the specs directory, excluding the raw-output sentinel.
func (s *ArtifactStore) CountSpecs() int {
	count := 0
	dir := filepath.Join(s.root, SpecsDir)
	filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if info.Size() == 0 {
			return nil
		}
		if QualifiesAsSpec(info.Name()) {
			count++
		}
		return nil
	})
	return count
}

// SpecsComplete reports whether the specification step is complete, together
// with the qualifying count.
func (s *ArtifactStore) SpecsComplete() (bool, int) {
	count := s.CountSpecs()
	return count >= s.minSpecs, count
}

// Read returns the content of a workspace-relative artifact.
func (s *ArtifactStore) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrArtifactNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write saves an artifact at a workspace-relative path, creating any parent
// directories.
func (s *ArtifactStore) Write(path string, data []byte) error {
	full := filepath.Join(s.root, path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0644)
}

// Has reports whether a single artifact exists and is non-empty.
func (s *ArtifactStore) Has(path string) bool {
	return s.Complete(path)
}
