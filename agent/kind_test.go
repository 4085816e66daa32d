package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyai/colony/core"
	"github.com/colonyai/colony/scaffold"
)

func TestKindFor(t *testing.T) {
	tests := []struct {
		tag  string
		want Kind
	}{
		{"dev_engine", KindDeveloper},
		{"developer", KindDeveloper},
		{"designer", KindDesigner},
		{"security", KindSecurity},
		{"data_manager", KindAnalyst},
		{"analyst", KindAnalyst},
		{"agent_creator", KindCreator},
		{"commander", KindGeneric},
		{"marketing", KindGeneric},
		{"", KindGeneric},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindFor(tt.tag), "tag %q", tt.tag)
	}
}

func TestKindSetup_DeveloperGetsToolchain(t *testing.T) {
	a := newTestAgent(t, core.NewAgentConfig("dev_engine", "developer", []string{"coding"}))
	require.NoError(t, a.Initialize(context.Background()))

	v, ok := a.Meta("toolchain")
	require.True(t, ok)
	tc, ok := v.(scaffold.Toolchain)
	require.True(t, ok)
	assert.Equal(t, "npm", tc.PackageManager)
}

func TestKindSetup_DesignerGetsDesignSystems(t *testing.T) {
	a := newTestAgent(t, core.NewAgentConfig("ui_designer", "designer", []string{"ux"}))
	require.NoError(t, a.Initialize(context.Background()))

	v, ok := a.Meta("design_systems")
	require.True(t, ok)
	assert.Contains(t, v.([]string), "tailwind")
}

func TestKindSetup_CreatorKnowsCreatableKinds(t *testing.T) {
	a := newTestAgent(t, core.NewAgentConfig("agent_maker", "agent_creator", []string{"agent_creation"}))
	require.NoError(t, a.Initialize(context.Background()))

	v, ok := a.Meta("creatable_kinds")
	require.True(t, ok)
	assert.Contains(t, v.([]Kind), KindDeveloper)
}

func TestKindSetup_GenericHasNoMeta(t *testing.T) {
	a := newTestAgent(t, core.NewAgentConfig("commander_agi", "commander", []string{"coordination"}))
	require.NoError(t, a.Initialize(context.Background()))

	_, ok := a.Meta("toolchain")
	assert.False(t, ok)
}
