// Command projinit bootstraps a new project: it creates an isolated git
// worktree and drives the claude CLI through the fixed generation pipeline,
// producing design, review, specification, guide and prompt artifacts, then
// commits the scaffold.
//
// Usage:
//
//	projinit [flags] <project-name>
//
// The only behavior-altering control is --resume: it re-enters a partially
// completed run, skipping steps whose artifacts already exist.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/randalmurphal/llmkit/model"

	projinit "github.com/rwestwood89/agentic-project-init-sub002"
	"github.com/rwestwood89/agentic-project-init-sub002/config"
	"github.com/rwestwood89/agentic-project-init-sub002/git"
)

func main() {
	var (
		resume       = flag.Bool("resume", false, "resume a partially completed run, skipping finished steps")
		repoPath     = flag.String("repo", ".", "repository the project worktree is created in")
		modelFlag    = flag.String("model", "", "model for generation calls (overrides config)")
		binaryFlag   = flag.String("binary", "", "path to the claude binary (overrides config)")
		minSpecsFlag = flag.String("min-specs", "", "minimum number of generated specification files")
		timeoutFlag  = flag.String("timeout", "", "per-call generation timeout (e.g. 10m)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <project-name>\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	project := flag.Arg(0)

	if err := run(project, *repoPath, *resume, map[string]string{
		config.KeyModel:    *modelFlag,
		config.KeyBinary:   *binaryFlag,
		config.KeyMinSpecs: *minSpecsFlag,
		config.KeyTimeout:  *timeoutFlag,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(project, repoPath string, resume bool, flags map[string]string) error {
	resolved := config.NewResolver(repoPath).ResolveWithFlags(flags)

	minSpecs, err := strconv.Atoi(resolved.Get(config.KeyMinSpecs))
	if err != nil {
		return fmt.Errorf("invalid min-specs %q: %w", resolved.Get(config.KeyMinSpecs), err)
	}
	timeout, err := time.ParseDuration(resolved.Get(config.KeyTimeout))
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", resolved.Get(config.KeyTimeout), err)
	}

	g, err := git.NewContext(repoPath, git.WithWorktreeDir(resolved.Get(config.KeyWorktreeDir)))
	if err != nil {
		return err
	}

	gen, err := projinit.NewClaudeGenerator(projinit.GeneratorConfig{
		BinaryPath: resolved.Get(config.KeyBinary),
		Model:      model.ModelName(resolved.Get(config.KeyModel)),
		Timeout:    timeout,
	})
	if err != nil {
		return err
	}

	runner, err := projinit.NewRunner(projinit.RunnerConfig{
		Git:          g,
		Generator:    gen,
		Console:      os.Stdout,
		Project:      project,
		BranchPrefix: resolved.Get(config.KeyBranchPrefix),
		Resume:       resume,
		MinSpecs:     minSpecs,
	})
	if err != nil {
		return err
	}

	_, err = runner.Run(context.Background())
	return err
}
