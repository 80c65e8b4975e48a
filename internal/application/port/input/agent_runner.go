package input

import (
	"context"

	"research-agent/internal/domain/entity"
)

// AgentRun is one task handed to its agent together with the aggregated
// outputs of the task's dependencies.
type AgentRun struct {
	Task    entity.Task
	Context string
}

type AgentResult struct {
	Output string
	Rounds int
}

// AgentRunner drives the bounded reasoning loop for a single task.
type AgentRunner interface {
	Run(ctx context.Context, run AgentRun) (*AgentResult, error)
}
