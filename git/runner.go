package git

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// CommandRunner executes external commands. The default implementation shells
// out; tests inject MockRunner for isolation.
type CommandRunner interface {
	// Run executes a command in dir and returns trimmed stdout.
	// Stderr is folded into the returned error on failure.
	Run(dir, name string, args ...string) (string, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// NewExecRunner creates the default command runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and returns trimmed stdout.
func (r *ExecRunner) Run(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	out := strings.TrimSpace(string(output))
	if err != nil {
		if out != "" {
			return out, fmt.Errorf("%s %s: %s", name, strings.Join(args, " "), out)
		}
		return out, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

// MockRunner records commands and returns scripted responses.
type MockRunner struct {
	mu        sync.Mutex
	responses map[string]mockResponse
	calls     []MockCall
}

// MockCall records one executed command.
type MockCall struct {
	Dir  string
	Name string
	Args []string
}

type mockResponse struct {
	output string
	err    error
}

// NewMockRunner creates a mock runner that succeeds with empty output for
// any command not explicitly scripted.
func NewMockRunner() *MockRunner {
	return &MockRunner{responses: make(map[string]mockResponse)}
}

// Respond scripts the response for a command. The key is the command name
// followed by its arguments, space-joined.
func (r *MockRunner) Respond(key, output string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[key] = mockResponse{output: output, err: err}
}

// Run returns the scripted response, recording the call.
func (r *MockRunner) Run(dir, name string, args ...string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, MockCall{Dir: dir, Name: name, Args: args})

	key := name
	if len(args) > 0 {
		key = name + " " + strings.Join(args, " ")
	}
	if resp, ok := r.responses[key]; ok {
		return resp.output, resp.err
	}
	return "", nil
}

// Calls returns all recorded calls.
func (r *MockRunner) Calls() []MockCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]MockCall(nil), r.calls...)
}

// CallCount returns how many commands matched the key prefix.
func (r *MockRunner) CallCount(prefix string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, call := range r.calls {
		key := call.Name
		if len(call.Args) > 0 {
			key = call.Name + " " + strings.Join(call.Args, " ")
		}
		if strings.HasPrefix(key, prefix) {
			count++
		}
	}
	return count
}
