package provider

import "context"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is one completion call. MaxTokens caps the reply length; zero
// leaves it to the provider.
type Request struct {
	Messages  []Message
	MaxTokens int
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type Response struct {
	Text  string
	Usage *Usage
}

// Provider sends a prompt to a text-generation service and returns its reply.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	Name() string
	ModelName() string
	Models(ctx context.Context) ([]string, error)
}

// splitSystem returns the concatenated system messages and the rest, for APIs that
// take the system prompt separately.
func splitSystem(msgs []Message) (string, []Message) {
	var system string
	var rest []Message
	for _, m := range msgs {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
