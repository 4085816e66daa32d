// Package scaffold generates static project scaffolding values used by
// developer-kind agents: a package manifest plus a conventional file layout
// for a new web project. Pure value generation, no filesystem access.
package scaffold

// Manifest mirrors the fields of a generated package.json.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Layout describes the conventional source tree of a generated project.
type Layout struct {
	Pages      []string `json:"pages"`
	Components []string `json:"components"`
	Styles     []string `json:"styles"`
	Config     []string `json:"config"`
}

// Toolchain lists the default development tooling recorded by a
// developer-kind agent at setup time.
type Toolchain struct {
	PackageManager string   `json:"package_manager"`
	Framework      string   `json:"framework"`
	BuildTools     []string `json:"build_tools"`
	Testing        []string `json:"testing"`
}

// DefaultToolchain returns the baseline Next.js toolchain.
func DefaultToolchain() Toolchain {
	return Toolchain{
		PackageManager: "npm",
		Framework:      "nextjs",
		BuildTools:     []string{"webpack", "vite"},
		Testing:        []string{"jest", "cypress"},
	}
}

// ProjectManifest returns a Next.js package manifest for the named project.
func ProjectManifest(name string) Manifest {
	return Manifest{
		Name:    name,
		Version: "1.0.0",
		Private: true,
		Scripts: map[string]string{
			"dev":   "next dev",
			"build": "next build",
			"start": "next start",
			"lint":  "next lint",
		},
		Dependencies: map[string]string{
			"next":      "^14.0.0",
			"react":     "^18.0.0",
			"react-dom": "^18.0.0",
		},
		DevDependencies: map[string]string{
			"@types/node":      "^20.0.0",
			"@types/react":     "^18.0.0",
			"@types/react-dom": "^18.0.0",
			"typescript":       "^5.0.0",
		},
	}
}

// ProjectLayout returns the conventional source tree for a generated project.
func ProjectLayout() Layout {
	return Layout{
		Pages:      []string{"index.tsx", "_app.tsx", "_document.tsx"},
		Components: []string{"Layout.tsx", "Header.tsx", "Footer.tsx"},
		Styles:     []string{"globals.css", "Home.module.css"},
		Config:     []string{"next.config.js", "tsconfig.json"},
	}
}
