package projinit

import (
	"errors"
	"strings"
	"testing"
)

func TestExtract_SingleBlock(t *testing.T) {
	doc := "Some preamble\n```markdown specs/foo.md\n# Foo\nbody\n```\ntrailing text\n"

	artifacts, err := NewExtractor().Extract(doc)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(artifacts) != 1 {
		t.Fatalf("len(artifacts) = %d, want 1", len(artifacts))
	}
	if artifacts[0].Path != "specs/foo.md" {
		t.Errorf("Path = %q, want %q", artifacts[0].Path, "specs/foo.md")
	}
	if artifacts[0].Content != "# Foo\nbody" {
		t.Errorf("Content = %q, want %q", artifacts[0].Content, "# Foo\nbody")
	}
}

func TestExtract_TrailingWhitespaceTolerance(t *testing.T) {
	// The same block opened with no trailing characters, trailing spaces,
	// and a trailing carriage return must extract identically.
	variants := map[string]string{
		"plain":           "```markdown specs/foo.md\n# Foo\n```\n",
		"trailing spaces": "```markdown specs/foo.md   \n# Foo\n```  \n",
		"carriage return": "```markdown specs/foo.md\r\n# Foo\r\n```\r\n",
	}

	for name, doc := range variants {
		t.Run(name, func(t *testing.T) {
			artifacts, err := NewExtractor().Extract(doc)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if len(artifacts) != 1 {
				t.Fatalf("len(artifacts) = %d, want 1", len(artifacts))
			}
			if artifacts[0].Path != "specs/foo.md" {
				t.Errorf("Path = %q, want %q", artifacts[0].Path, "specs/foo.md")
			}
			if artifacts[0].Content != "# Foo" {
				t.Errorf("Content = %q, want %q", artifacts[0].Content, "# Foo")
			}
		})
	}
}

func TestExtract_MultipleBlocks(t *testing.T) {
	doc := strings.Join([]string{
		"```markdown specs/auth.md",
		"# Auth",
		"```",
		"between blocks",
		"```markdown specs/storage.md",
		"# Storage",
		"```",
	}, "\n")

	artifacts, err := NewExtractor().Extract(doc)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("len(artifacts) = %d, want 2", len(artifacts))
	}
	if artifacts[0].Path != "specs/auth.md" || artifacts[1].Path != "specs/storage.md" {
		t.Errorf("paths = %q, %q", artifacts[0].Path, artifacts[1].Path)
	}
}

func TestExtract_NoBlocksIsFatal(t *testing.T) {
	doc := "Just prose.\nNo fenced blocks anywhere.\n"

	_, err := NewExtractor().Extract(doc)
	if !errors.Is(err, ErrNoArtifacts) {
		t.Fatalf("err = %v, want ErrNoArtifacts", err)
	}
}

func TestExtract_FenceWithoutPathIgnored(t *testing.T) {
	// A plain code fence with no path token is not an opening marker.
	doc := "```\nnot an artifact\n```\n"

	_, err := NewExtractor().Extract(doc)
	if !errors.Is(err, ErrNoArtifacts) {
		t.Fatalf("err = %v, want ErrNoArtifacts", err)
	}
}

func TestExtract_EmptyBodyFiltered(t *testing.T) {
	doc := "```markdown specs/empty.md\n\n   \n```\n"

	_, err := NewExtractor().Extract(doc)
	if !errors.Is(err, ErrNoArtifacts) {
		t.Fatalf("err = %v, want ErrNoArtifacts", err)
	}
}

func TestExtract_RawSentinelFiltered(t *testing.T) {
	doc := "```markdown specs/" + RawSpecName + "\nnot a real spec\n```\n"

	_, err := NewExtractor().Extract(doc)
	if !errors.Is(err, ErrNoArtifacts) {
		t.Fatalf("err = %v, want ErrNoArtifacts", err)
	}
}

func TestExtract_PathTraversalFiltered(t *testing.T) {
	doc := "```markdown ../outside.md\nescape attempt\n```\n" +
		"```markdown specs/ok.md\nfine\n```\n"

	artifacts, err := NewExtractor().Extract(doc)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(artifacts) != 1 {
		t.Fatalf("len(artifacts) = %d, want 1", len(artifacts))
	}
	if artifacts[0].Path != "specs/ok.md" {
		t.Errorf("Path = %q, want %q", artifacts[0].Path, "specs/ok.md")
	}
}

func TestExtract_UnterminatedBlockClosedAtEOF(t *testing.T) {
	doc := "```markdown specs/tail.md\n# Tail\nno closing fence"

	artifacts, err := NewExtractor().Extract(doc)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(artifacts) != 1 {
		t.Fatalf("len(artifacts) = %d, want 1", len(artifacts))
	}
	if artifacts[0].Content != "# Tail\nno closing fence" {
		t.Errorf("Content = %q", artifacts[0].Content)
	}
}
