package domain

// Chat roles understood by the model backend.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage is a role-tagged message sent to the model backend.
type ChatMessage struct {
	Role    string
	Content string
}

// TokenUsage carries the token counts reported by the backend.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ChatResponse is the backend's answer to a single completion request.
type ChatResponse struct {
	Text      string
	ModelName string
	Usage     TokenUsage
}
