package output

import (
	"context"

	"research-agent/internal/domain/entity"
)

// LLMPort is one chat turn against the language model. The returned message
// either carries a final answer or one or more tool calls, never silently
// nothing; adapters surface anything else as *entity.ModelError.
type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages    []entity.Message
	Tools       []entity.ToolDefinition
	Temperature float32
}

type ChatResponse struct {
	Message entity.Message
}
