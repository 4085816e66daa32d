package colony

import "github.com/colonyai/colony/core"

// DefaultFleet returns the standard fourteen-agent colony. Preferences spread
// the fleet across the tier chain so a partial outage still leaves most agents
// on their favored backend.
func DefaultFleet() []core.AgentConfig {
	withPreference := func(p core.Preference) func(c *core.AgentConfig) {
		return func(c *core.AgentConfig) { c.Preference = p }
	}
	return []core.AgentConfig{
		core.NewAgentConfig("cybershell", "dev_engine", []string{"shell", "automation"}),
		core.NewAgentConfig("agent_maker", "agent_creator", []string{"agent_creation", "management"}, withPreference(core.PreferencePrimary)),
		core.NewAgentConfig("ui_designer", "designer", []string{"ui_design", "ux"}, withPreference(core.PreferenceSecondary)),
		core.NewAgentConfig("dev_engine", "developer", []string{"coding", "nextjs", "react"}),
		core.NewAgentConfig("data_sync", "data_manager", []string{"sync", "storage"}, withPreference(core.PreferenceLocal)),
		core.NewAgentConfig("fullstack_dev", "developer", []string{"frontend", "backend"}, withPreference(core.PreferencePrimary)),
		core.NewAgentConfig("commander_agi", "commander", []string{"coordination", "leadership"}),
		core.NewAgentConfig("quality_control", "tester", []string{"testing", "quality"}, withPreference(core.PreferenceSecondary)),
		core.NewAgentConfig("bug_hunter", "debugger", []string{"debugging", "fixing"}),
		core.NewAgentConfig("money_maker", "financial", []string{"monetization", "optimization"}, withPreference(core.PreferencePrimary)),
		core.NewAgentConfig("backup_colony", "backup", []string{"backup", "recovery"}, withPreference(core.PreferenceLocal)),
		core.NewAgentConfig("authentication", "security", []string{"auth", "security"}, withPreference(core.PreferenceSecondary)),
		core.NewAgentConfig("knowledge_manager", "knowledge", []string{"learning", "documentation"}),
		core.NewAgentConfig("marketing", "marketing", []string{"promotion", "growth"}, withPreference(core.PreferencePrimary)),
	}
}
