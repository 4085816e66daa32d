package router

import (
	"fmt"
	"strings"

	"github.com/colonyai/colony/core"
	"github.com/colonyai/colony/model"
)

// localGenerator is the terminal fallback tier: pure in-process text
// composition selected by the agent's capability bucket. It has no network or
// I/O dependency and therefore cannot fail; a non-nil error from generate is
// a fatal bug and callers must propagate it instead of swallowing it.
type localGenerator struct{}

// LocalModelName identifies the local tier in results and usage summaries.
const LocalModelName = "local-ai"

func (localGenerator) generate(prompt string, cfg core.AgentConfig) (*model.Response, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] Processing: %s\n\n", cfg.Name, prompt)
	sb.WriteString(bucketResponse(cfg))

	content := sb.String()
	return &model.Response{
		Content: content,
		Model:   LocalModelName,
		Usage:   model.TokenUsage{CompletionTokens: len(content), TotalTokens: len(content)},
	}, nil
}

// bucketResponse picks a prose template by the agent's declared capabilities.
// Bucket order matters: the first matching bucket wins.
func bucketResponse(cfg core.AgentConfig) string {
	switch {
	case cfg.HasAnyCapability("coding", "nextjs", "react", "frontend", "backend"):
		return codeResponse
	case cfg.HasAnyCapability("ui_design", "ux", "design"):
		return designResponse
	case cfg.HasAnyCapability("security", "auth"):
		return securityResponse
	case cfg.HasAnyCapability("agent_creation", "management"):
		return agentCreationResponse
	default:
		return generalResponse
	}
}

const codeResponse = `I can help with coding tasks. Based on your request, here's my approach:

1. Analyze the requirements
2. Design the solution architecture
3. Implement with best practices
4. Add error handling and testing
5. Provide documentation

For web projects, I can create component structures, API routes, state
management, styling solutions and deployment configurations.

Would you like me to proceed with a specific implementation?`

const designResponse = `I can assist with UI/UX design tasks:

Design Approach:
- User-centered design principles
- Modern, responsive layouts
- Accessibility considerations
- Performance optimization
- Cross-platform compatibility

I can create wireframes, prototypes, and design specifications. What specific
design challenge can I help with?`

const securityResponse = `Security analysis and recommendations:

Security Framework:
- Authentication & Authorization (JWT, OAuth)
- Data encryption (AES-256, TLS)
- Input validation and sanitization
- Rate limiting and abuse protection

Would you like me to perform a security assessment or implement specific
security measures?`

const agentCreationResponse = `Agent Creation and Management:

I can create specialized agents with custom capabilities, specific roles and
responsibilities, autonomous operation modes and collaboration protocols.

What type of agent would you like me to create?`

const generalResponse = `I'm here to help with a wide range of tasks using local processing:

Capabilities:
- Problem analysis and solution design
- Information processing and synthesis
- Task planning and execution
- Quality control and optimization

How can I assist you further?`
