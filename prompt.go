package projinit

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// embeddedPrompts holds the default step prompts built into the binary.
//
//go:embed prompts/*.txt
var embeddedPrompts embed.FS

// PromptLoader loads and renders the prompt templates driving each
// generation step. Templates on disk override the embedded defaults.
type PromptLoader struct {
	dirs    []string
	cache   map[string]*template.Template
	funcMap template.FuncMap
}

// NewPromptLoader creates a prompt loader. Prompts are resolved in order:
// 1. .projinit/prompts/ in the project directory
// 2. Embedded defaults
func NewPromptLoader(projectDir string) *PromptLoader {
	return &PromptLoader{
		dirs: []string{
			filepath.Join(projectDir, ".projinit", "prompts"),
		},
		cache: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"join":    strings.Join,
			"trim":    strings.TrimSpace,
			"indent":  indentString,
			"replace": strings.ReplaceAll,
		},
	}
}

// AddSearchDir adds a directory searched before the defaults.
func (l *PromptLoader) AddSearchDir(dir string) {
	l.dirs = append([]string{dir}, l.dirs...)
}

// Load loads a prompt by name without variable substitution.
func (l *PromptLoader) Load(name string) (string, error) {
	return l.LoadWithVars(name, nil)
}

// LoadWithVars loads and renders a prompt with variable substitution.
func (l *PromptLoader) LoadWithVars(name string, vars map[string]any) (string, error) {
	tmpl, err := l.getTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}

	return buf.String(), nil
}

// Exists checks if a prompt exists.
func (l *PromptLoader) Exists(name string) bool {
	_, err := l.loadRaw(name)
	return err == nil
}

func (l *PromptLoader) getTemplate(name string) (*template.Template, error) {
	if tmpl, ok := l.cache[name]; ok {
		return tmpl, nil
	}

	content, err := l.loadRaw(name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(name).Funcs(l.funcMap).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %s: %w", name, err)
	}

	l.cache[name] = tmpl
	return tmpl, nil
}

func (l *PromptLoader) loadRaw(name string) (string, error) {
	filename := name + ".txt"

	for _, dir := range l.dirs {
		data, err := os.ReadFile(filepath.Join(dir, filename))
		if err == nil {
			return string(data), nil
		}
	}

	data, err := embeddedPrompts.ReadFile("prompts/" + filename)
	if err != nil {
		return "", fmt.Errorf("prompt not found: %s", name)
	}

	return string(data), nil
}

// indentString indents all non-empty lines of a string.
func indentString(indent int, s string) string {
	if s == "" {
		return s
	}
	prefix := strings.Repeat(" ", indent)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
