package router

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyai/colony/core"
)

func TestLocalGenerator_NeverFails(t *testing.T) {
	var local localGenerator
	resp, err := local.generate("do something", core.NewAgentConfig("cybershell", "dev_engine", nil))
	require.NoError(t, err)
	assert.Equal(t, LocalModelName, resp.Model)
	assert.True(t, strings.HasPrefix(resp.Content, "[cybershell] Processing: do something"))
	assert.Equal(t, len(resp.Content), resp.Usage.TotalTokens)
}

func TestLocalGenerator_CapabilityBuckets(t *testing.T) {
	tests := []struct {
		name         string
		capabilities []string
		want         string
	}{
		{"coding", []string{"coding", "nextjs"}, "coding tasks"},
		{"frontend alone", []string{"frontend"}, "coding tasks"},
		{"design", []string{"ui_design", "ux"}, "UI/UX design"},
		{"security", []string{"auth", "security"}, "Security analysis"},
		{"agent creation", []string{"agent_creation", "management"}, "Agent Creation"},
		{"fallback", []string{"monetization"}, "local processing"},
		{"no capabilities", nil, "local processing"},
		{"coding wins over design", []string{"coding", "ux"}, "coding tasks"},
	}

	var local localGenerator
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := core.NewAgentConfig("tester", "generic", tt.capabilities)
			resp, err := local.generate("task", cfg)
			require.NoError(t, err)
			assert.Contains(t, resp.Content, tt.want)
		})
	}
}

func TestLocalGenerator_Deterministic(t *testing.T) {
	var local localGenerator
	cfg := core.NewAgentConfig("dev_engine", "developer", []string{"coding"})

	a, err := local.generate("same prompt", cfg)
	require.NoError(t, err)
	b, err := local.generate("same prompt", cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Content, b.Content)
}
