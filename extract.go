package projinit

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
)

// Extraction errors
var (
	// ErrNoArtifacts indicates a generated document yielded zero usable
	// artifacts. This aborts the run: downstream steps assume at least one
	// real specification exists, so a warning here would silently corrupt
	// every later step.
	ErrNoArtifacts = errors.New("no artifacts extracted from generated document")
)

// NamedArtifact is one file split out of a generated document.
type NamedArtifact struct {
	Path    string // Relative path from the opening fence marker
	Content string
}

// Fence grammar. The opening marker is a fence with an optional language tag
// followed by a relative path; the closing marker is a bare fence. Both
// tolerate trailing horizontal whitespace, which generated text frequently
// carries and an exact end-of-line match would silently reject.
var (
	openFence  = regexp.MustCompile("^```[a-zA-Z0-9_+-]*[ \t]+([^ \t]+)[ \t]*$")
	closeFence = regexp.MustCompile("^```[ \t]*$")
)

// Extractor splits one generated document into named artifact files.
type Extractor struct{}

// NewExtractor creates an extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses fenced blocks out of a document. Carriage returns are
// stripped before matching so both line-ending conventions parse identically.
// Returns ErrNoArtifacts when, after dropping the raw-output sentinel, empty
// bodies and unsafe paths, nothing remains.
func (e *Extractor) Extract(document string) ([]NamedArtifact, error) {
	var artifacts []NamedArtifact

	var (
		inBlock bool
		path    string
		body    []string
	)

	flush := func() {
		content := strings.Join(body, "\n")
		if a, ok := usableArtifact(path, content); ok {
			artifacts = append(artifacts, a)
		}
		inBlock = false
		path = ""
		body = nil
	}

	for _, line := range strings.Split(document, "\n") {
		line = strings.TrimRight(line, "\r")

		if !inBlock {
			if m := openFence.FindStringSubmatch(line); m != nil {
				inBlock = true
				path = m[1]
			}
			continue
		}

		if closeFence.MatchString(line) {
			flush()
			continue
		}
		body = append(body, line)
	}

	// An unterminated block at end of document is closed at EOF rather than
	// dropped.
	if inBlock {
		flush()
	}

	if len(artifacts) == 0 {
		return nil, ErrNoArtifacts
	}
	return artifacts, nil
}

// usableArtifact filters out the raw-output sentinel, empty bodies and paths
// that would escape the target directory.
func usableArtifact(path, content string) (NamedArtifact, bool) {
	if strings.TrimSpace(content) == "" {
		return NamedArtifact{}, false
	}
	if filepath.Base(path) == RawSpecName {
		return NamedArtifact{}, false
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return NamedArtifact{}, false
	}
	return NamedArtifact{Path: clean, Content: content}, true
}
