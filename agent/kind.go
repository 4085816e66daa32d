package agent

import (
	"context"

	"github.com/colonyai/colony/core"
	"github.com/colonyai/colony/scaffold"
)

// Kind is the closed set of agent variants. Each kind carries its own setup
// and result-processing behavior, selected via the dispatch table below.
type Kind string

const (
	// KindGeneric is the default variant with no specialized behavior.
	KindGeneric Kind = "generic"
	// KindDeveloper agents carry a development toolchain and can scaffold projects.
	KindDeveloper Kind = "developer"
	// KindDesigner agents carry UI/UX design system metadata.
	KindDesigner Kind = "designer"
	// KindSecurity agents carry security tooling metadata.
	KindSecurity Kind = "security"
	// KindAnalyst agents carry data analysis tooling metadata.
	KindAnalyst Kind = "analyst"
	// KindCreator agents manage the creation of other agents.
	KindCreator Kind = "creator"
)

// hooks bundle the variant-specific behavior of a Kind. setup runs during
// Initialize; process post-processes routed generation content during
// ExecuteTask.
type hooks struct {
	setup   func(ctx context.Context, a *Agent) error
	process func(a *Agent, task core.Task, content string) string
}

func identityProcess(_ *Agent, _ core.Task, content string) string { return content }

var kindHooks = map[Kind]hooks{
	KindGeneric: {
		setup:   func(context.Context, *Agent) error { return nil },
		process: identityProcess,
	},
	KindDeveloper: {
		setup: func(_ context.Context, a *Agent) error {
			a.setMeta("toolchain", scaffold.DefaultToolchain())
			return nil
		},
		process: identityProcess,
	},
	KindDesigner: {
		setup: func(_ context.Context, a *Agent) error {
			a.setMeta("design_systems", []string{"material-ui", "tailwind", "chakra-ui"})
			return nil
		},
		process: identityProcess,
	},
	KindSecurity: {
		setup: func(_ context.Context, a *Agent) error {
			a.setMeta("security_tools", []string{"jwt", "oauth", "bcrypt"})
			return nil
		},
		process: identityProcess,
	},
	KindAnalyst: {
		setup: func(_ context.Context, a *Agent) error {
			a.setMeta("analysis_tools", []string{"aggregation", "trend-analysis", "visualization"})
			return nil
		},
		process: identityProcess,
	},
	KindCreator: {
		setup: func(_ context.Context, a *Agent) error {
			a.setMeta("creatable_kinds", []Kind{KindDeveloper, KindDesigner, KindSecurity, KindAnalyst, KindGeneric})
			return nil
		},
		process: identityProcess,
	},
}

// KindFor maps a configuration type tag onto a Kind. Unknown tags fall back
// to KindGeneric so misconfigured agents still operate.
func KindFor(tag string) Kind {
	switch tag {
	case "dev_engine", "developer":
		return KindDeveloper
	case "designer":
		return KindDesigner
	case "security":
		return KindSecurity
	case "data_manager", "data_analyst", "analyst":
		return KindAnalyst
	case "agent_creator", "creator":
		return KindCreator
	default:
		return KindGeneric
	}
}
