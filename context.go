package projinit

import (
	"context"

	"github.com/rwestwood89/agentic-project-init-sub002/git"
)

// =============================================================================
// Context Injection Helpers
// =============================================================================
// These helpers allow pipeline services to be injected into context.Context
// for use by flowgraph nodes.

// serviceContextKey is a private type for context keys to avoid collisions
type serviceContextKey string

// Context keys for pipeline services
const (
	gitServiceKey       serviceContextKey = "projinit.git"
	generatorServiceKey serviceContextKey = "projinit.generator"
	storeServiceKey     serviceContextKey = "projinit.store"
	loggerServiceKey    serviceContextKey = "projinit.logger"
	promptServiceKey    serviceContextKey = "projinit.prompts"
	extractorServiceKey serviceContextKey = "projinit.extractor"
)

// WithGit adds a git context to the context.
func WithGit(ctx context.Context, g *git.Context) context.Context {
	return context.WithValue(ctx, gitServiceKey, g)
}

// GitFromContext extracts the git context.
func GitFromContext(ctx context.Context) *git.Context {
	if g, ok := ctx.Value(gitServiceKey).(*git.Context); ok {
		return g
	}
	return nil
}

// WithGenerator adds a Generator to the context.
func WithGenerator(ctx context.Context, gen Generator) context.Context {
	return context.WithValue(ctx, generatorServiceKey, gen)
}

// GeneratorFromContext extracts the Generator.
func GeneratorFromContext(ctx context.Context) Generator {
	if gen, ok := ctx.Value(generatorServiceKey).(Generator); ok {
		return gen
	}
	return nil
}

// WithStore adds an ArtifactStore to the context.
func WithStore(ctx context.Context, store *ArtifactStore) context.Context {
	return context.WithValue(ctx, storeServiceKey, store)
}

// StoreFromContext extracts the ArtifactStore.
func StoreFromContext(ctx context.Context) *ArtifactStore {
	if store, ok := ctx.Value(storeServiceKey).(*ArtifactStore); ok {
		return store
	}
	return nil
}

// WithLogger adds a Logger to the context.
func WithLogger(ctx context.Context, log *Logger) context.Context {
	return context.WithValue(ctx, loggerServiceKey, log)
}

// LoggerFromContext extracts the Logger.
func LoggerFromContext(ctx context.Context) *Logger {
	if log, ok := ctx.Value(loggerServiceKey).(*Logger); ok {
		return log
	}
	return nil
}

// WithPrompts adds a PromptLoader to the context.
func WithPrompts(ctx context.Context, loader *PromptLoader) context.Context {
	return context.WithValue(ctx, promptServiceKey, loader)
}

// PromptsFromContext extracts the PromptLoader.
func PromptsFromContext(ctx context.Context) *PromptLoader {
	if loader, ok := ctx.Value(promptServiceKey).(*PromptLoader); ok {
		return loader
	}
	return nil
}

// WithExtractor adds an Extractor to the context.
func WithExtractor(ctx context.Context, ext *Extractor) context.Context {
	return context.WithValue(ctx, extractorServiceKey, ext)
}

// ExtractorFromContext extracts the Extractor.
func ExtractorFromContext(ctx context.Context) *Extractor {
	if ext, ok := ctx.Value(extractorServiceKey).(*Extractor); ok {
		return ext
	}
	return nil
}

// Services wraps all pipeline services for convenient injection.
type Services struct {
	Git       *git.Context
	Generator Generator
	Store     *ArtifactStore
	Logger    *Logger
	Prompts   *PromptLoader
	Extractor *Extractor
}

// InjectAll adds all configured services to the context.
func (s *Services) InjectAll(ctx context.Context) context.Context {
	if s.Git != nil {
		ctx = WithGit(ctx, s.Git)
	}
	if s.Generator != nil {
		ctx = WithGenerator(ctx, s.Generator)
	}
	if s.Store != nil {
		ctx = WithStore(ctx, s.Store)
	}
	if s.Logger != nil {
		ctx = WithLogger(ctx, s.Logger)
	}
	if s.Prompts != nil {
		ctx = WithPrompts(ctx, s.Prompts)
	}
	if s.Extractor != nil {
		ctx = WithExtractor(ctx, s.Extractor)
	}
	return ctx
}
