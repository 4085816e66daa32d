package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyai/colony/scaffold"
)

/// Project is the result of a developer-kind agent scaffolding a new project:
// the generated manifest and layout plus routed recommendations.
type Project struct {
	Name            string            `json:"project_name"`
	Manifest        scaffold.Manifest `json:"manifest"`
	Layout          scaffold.Layout   `json:"layout"`
	Recommendations string            `json:"recommendations"`
	Backend         string            `json:"backend_used"`
	CreatedAt       time.Time         `json:"created_at"`
}

// CreateProject scaffolds a new web project. Only developer-kind agents can
// scaffold; the routed generation supplies prose recommendations alongside
// the static manifest.
func (a *Agent) CreateProject(ctx context.Context, name string) (*Project, error) {
	if a.kind != KindDeveloper {
		return nil, fmt.Errorf("agent %s (kind %s) cannot scaffold projects", a.cfg.Name, a.kind)
	}
	if a.Status() != StatusActive {
		return nil, fmt.Errorf("agent %s is not active", a.cfg.Name)
	}

	p := fmt.Sprintf("Create a comprehensive project structure for %q with modern best practices, TypeScript, and responsive design.", name)
	result, err := a.router.Generate(ctx, p, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("scaffold %s: %w", name, err)
	}

	manifest := scaffold.ProjectManifest(name)
	project := &Project{
		Name:            name,
		Manifest:        manifest,
		Layout:          scaffold.ProjectLayout(),
		Recommendations: result.Content,
		Backend:         result.Backend,
		CreatedAt:       time.Now(),
	}

	a.appendProject(project)
	return project, nil
}

// Projects returns the projects scaffolded by this agent so far.
func (a *Agent) Projects() []*Project {
	a.mu.Lock()
	defer a.mu.Unlock()
	existing, _ := a.meta["projects"].([]*Project)
	out := make([]*Project, len(existing))
	copy(out, existing)
	return out
}

func (a *Agent) appendProject(p *Project) {
	a.mu.Lock()
	defer a.mu.Unlock()
	existing, _ := a.meta["projects"].([]*Project)
	a.meta["projects"] = append(existing, p)
}
