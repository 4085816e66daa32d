// Package prompt manages the named prompt templates used when composing
// generation requests. Templates are parsed once at registry construction and
// rendered with Go's text/template.
package prompt

import (
	"fmt"
	"strings"
	"text/template"
)

// Builtin template names.
const (
	TaskExecution  = "task_execution"
	ScenarioTurn   = "scenario_turn"
	AgentCreation  = "agent_creation"
	ProblemSolving = "problem_solving"
	CodeGeneration = "code_generation"
)

var builtins = map[string]string{
	TaskExecution: `Task: {{.Type}}
Description: {{.Description}}
Context: {{.Context}}
Agent: {{.Agent}}
Capabilities: {{join ", " .Capabilities}}

Please process this task and provide a detailed response.`,

	ScenarioTurn: `Multi-agent scenario: {{.Description}}
Your role: {{.Role}}
Round: {{.Round}}
Previous messages: {{.History}}

Respond as {{.Name}} would in this scenario.`,

	AgentCreation: `Create a specialized agent for the following task:
Task: {{.Task}}
Requirements: {{.Requirements}}
Capabilities needed: {{join ", " .Capabilities}}

Please provide:
1. Agent name and type
2. Core functions
3. Implementation strategy`,

	ProblemSolving: `Analyze and solve this problem:
Problem: {{.Problem}}
Context: {{.Context}}
Constraints: {{.Constraints}}

Provide step-by-step solution.`,

	CodeGeneration: `Generate code for:
Language: {{.Language}}
Functionality: {{.Functionality}}
Requirements: {{.Requirements}}

Include error handling and documentation.`,
}

// Registry holds parsed prompt templates keyed by name.
type Registry struct {
	templates map[string]*template.Template
}

// funcMap exposes the small helper set available inside templates.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"join": func(sep string, items []string) string {
			return strings.Join(items, sep)
		},
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
	}
}

// NewRegistry returns a registry preloaded with the builtin templates. The
// builtins are parsed eagerly; a parse failure there is a programming error
// and panics.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]*template.Template, len(builtins))}
	for name, text := range builtins {
		tmpl, err := template.New(name).Funcs(funcMap()).Parse(text)
		if err != nil {
			panic(fmt.Sprintf("builtin prompt template %q: %v", name, err))
		}
		r.templates[name] = tmpl
	}
	return r
}

// Register parses and stores a custom template, overwriting any template with
// the same name.
func (r *Registry) Register(name, text string) error {
	tmpl, err := template.New(name).Funcs(funcMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("parse prompt template %q: %w", name, err)
	}
	r.templates[name] = tmpl
	return nil
}

// Render executes the named template against data.
func (r *Registry) Render(name string, data any) (string, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt template %q", name)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render prompt template %q: %w", name, err)
	}
	return sb.String(), nil
}

// Names lists the registered template names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}
