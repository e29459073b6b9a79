package projinit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/randalmurphal/llmkit/model"
)

// Generation errors
var (
	// ErrGeneratorNotFound indicates the claude CLI binary was not found.
	ErrGeneratorNotFound = errors.New("claude CLI not found")

	// ErrGenerationTimeout indicates the generation call timed out.
	ErrGenerationTimeout = errors.New("generation timed out")

	// ErrGenerationFailed indicates the claude CLI exited with an error.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrEmptyOutput indicates the call succeeded at the process level but
	// returned a blank result. Fatal for the caller: an empty document would
	// otherwise surface only as downstream emptiness.
	ErrEmptyOutput = errors.New("generation returned empty output")
)

// Generator is the synchronous text-generation boundary. Retries are a human
// decision exercised via resume, so no implementation retries internally.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts ...GenerateOption) (*GenerateResult, error)
}

// GenerateResult contains the output of one generation call.
type GenerateResult struct {
	Output    string        // Final output text
	Stderr    string        // Diagnostic output, captured even on success
	TokensIn  int           // Input tokens consumed
	TokensOut int           // Output tokens generated
	Duration  time.Duration // Execution time
	ExitCode  int           // Process exit code
}

// ClaudeGenerator wraps the claude CLI binary for structured invocation.
type ClaudeGenerator struct {
	binaryPath string
	model      model.ModelName
	timeout    time.Duration
}

// GeneratorConfig configures the claude CLI wrapper.
type GeneratorConfig struct {
	BinaryPath string          // Path to claude binary (default: "claude")
	Model      model.ModelName // Default model (empty = claude default)
	Timeout    time.Duration   // Default timeout (default: 10m)
}

// NewClaudeGenerator creates a claude CLI wrapper.
// Returns ErrGeneratorNotFound if the binary is not installed.
func NewClaudeGenerator(cfg GeneratorConfig) (*ClaudeGenerator, error) {
	binaryPath := cfg.BinaryPath
	if binaryPath == "" {
		binaryPath = "claude"
	}

	if _, err := exec.LookPath(binaryPath); err != nil {
		return nil, ErrGeneratorNotFound
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Minute
	}

	return &ClaudeGenerator{
		binaryPath: binaryPath,
		model:      cfg.Model,
		timeout:    timeout,
	}, nil
}

// generateConfig holds configuration for a single call.
type generateConfig struct {
	model        model.ModelName
	systemPrompt string
	workDir      string
	timeout      time.Duration
}

// GenerateOption configures a Generate invocation.
type GenerateOption func(*generateConfig)

// WithModel specifies the model for this call.
func WithModel(m model.ModelName) GenerateOption {
	return func(cfg *generateConfig) {
		cfg.model = m
	}
}

// WithSystemPrompt sets the system prompt.
func WithSystemPrompt(prompt string) GenerateOption {
	return func(cfg *generateConfig) {
		cfg.systemPrompt = prompt
	}
}

// WithWorkDir sets the working directory for the CLI process.
func WithWorkDir(dir string) GenerateOption {
	return func(cfg *generateConfig) {
		cfg.workDir = dir
	}
}

// WithTimeout sets the timeout for this call.
func WithTimeout(d time.Duration) GenerateOption {
	return func(cfg *generateConfig) {
		cfg.timeout = d
	}
}

// Generate runs the claude CLI with the given prompt. Both stdout and stderr
// are captured so failures are visible to the operator; stderr is returned in
// the result regardless of exit status.
func (g *ClaudeGenerator) Generate(ctx context.Context, prompt string, opts ...GenerateOption) (*GenerateResult, error) {
	cfg := &generateConfig{
		model:   g.model,
		timeout: g.timeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	args := g.buildArgs(cfg, prompt)

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, g.binaryPath, args...)
	if cfg.workDir != "" {
		cmd.Dir = cfg.workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	stderrStr := strings.TrimSpace(stderr.String())

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", ErrGenerationTimeout, cfg.timeout)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		if stderrStr != "" {
			return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, stderrStr)
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	result, perr := parseGeneratorOutput(stdout.Bytes())
	if perr != nil {
		// Fall back to raw output
		result = &GenerateResult{
			Output: strings.TrimSpace(stdout.String()),
		}
	}

	result.Stderr = stderrStr
	result.Duration = duration
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if strings.TrimSpace(result.Output) == "" {
		if stderrStr != "" {
			return nil, fmt.Errorf("%w (stderr: %s)", ErrEmptyOutput, stderrStr)
		}
		return nil, ErrEmptyOutput
	}

	return result, nil
}

// buildArgs constructs command line arguments for the claude CLI.
func (g *ClaudeGenerator) buildArgs(cfg *generateConfig, prompt string) []string {
	args := []string{"--print", "--output-format", "json"}

	if cfg.model != "" {
		args = append(args, "--model", string(cfg.model))
	}
	if cfg.systemPrompt != "" {
		args = append(args, "--system-prompt", cfg.systemPrompt)
	}

	args = append(args, "-p", prompt)

	return args
}

// generatorJSONOutput represents the JSON output from the claude CLI.
type generatorJSONOutput struct {
	Result       string `json:"result"`
	TokensIn     int    `json:"tokens_in"`
	TokensOut    int    `json:"tokens_out"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// parseGeneratorOutput parses the CLI's JSON output.
func parseGeneratorOutput(data []byte) (*GenerateResult, error) {
	data = bytes.TrimSpace(data)

	var output generatorJSONOutput
	if err := json.Unmarshal(data, &output); err != nil {
		// The JSON object may be embedded in other content
		start := bytes.Index(data, []byte("{"))
		end := bytes.LastIndex(data, []byte("}"))
		if start >= 0 && end > start {
			if err := json.Unmarshal(data[start:end+1], &output); err != nil {
				return nil, fmt.Errorf("parse json output: %w", err)
			}
		} else {
			return nil, fmt.Errorf("no json found in output")
		}
	}

	tokensIn := output.TokensIn
	if tokensIn == 0 {
		tokensIn = output.InputTokens
	}
	tokensOut := output.TokensOut
	if tokensOut == 0 {
		tokensOut = output.OutputTokens
	}

	return &GenerateResult{
		Output:    output.Result,
		TokensIn:  tokensIn,
		TokensOut: tokensOut,
	}, nil
}

// BinaryPath returns the path to the claude binary.
func (g *ClaudeGenerator) BinaryPath() string {
	return g.binaryPath
}

// DefaultModel returns the default model.
func (g *ClaudeGenerator) DefaultModel() model.ModelName {
	return g.model
}

// DefaultTimeout returns the default timeout.
func (g *ClaudeGenerator) DefaultTimeout() time.Duration {
	return g.timeout
}
