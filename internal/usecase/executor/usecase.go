// Package executor drives the bounded reasoning loop for a single task:
// ask the model, run any tool it requests, feed the observation back, repeat
// until the model produces a final answer or the round budget runs out.
package executor

import (
	"context"
	"fmt"
	"strings"

	"research-agent/internal/application/port/input"
	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
	"research-agent/internal/infrastructure/prompts"
)

var _ input.AgentRunner = (*UseCase)(nil)

const (
	defaultMaxToolRounds = 10
	maxObservationLen    = 20000
)

type UseCase struct {
	llm           output.LLMPort
	tools         output.ToolRegistry
	logger        output.LoggerPort
	maxToolRounds int
}

func New(
	llm output.LLMPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	maxToolRounds int,
) *UseCase {
	if maxToolRounds <= 0 {
		maxToolRounds = defaultMaxToolRounds
	}
	return &UseCase{
		llm:           llm,
		tools:         tools,
		logger:        logger,
		maxToolRounds: maxToolRounds,
	}
}

func (uc *UseCase) Run(ctx context.Context, run input.AgentRun) (*input.AgentResult, error) {
	agent := run.Task.Agent

	identity, err := prompts.AgentIdentity(agent)
	if err != nil {
		return nil, fmt.Errorf("compose identity prompt: %w", err)
	}
	brief, err := prompts.TaskBrief(run.Task, run.Context)
	if err != nil {
		return nil, fmt.Errorf("compose task brief: %w", err)
	}

	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: identity},
		{Role: entity.RoleUser, Content: brief},
	}
	toolDefs := uc.tools.Definitions(agent.Tools)

	log := uc.logger.WithField("task", run.Task.Name)
	log.Info("Agent started", "role", agent.Role, "tools", len(toolDefs))

	for round := 1; round <= uc.maxToolRounds; round++ {
		log.Debug("Awaiting model", "round", round)

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			Messages:    messages,
			Tools:       toolDefs,
			Temperature: agent.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			answer := strings.TrimSpace(resp.Message.Content)
			if answer == "" {
				return nil, &entity.ModelError{Err: fmt.Errorf("final answer is empty")}
			}
			log.Info("Agent finished", "rounds", round, "answerLen", len(answer))
			return &input.AgentResult{Output: answer, Rounds: round}, nil
		}

		for _, tc := range resp.Message.ToolCalls {
			observation, err := uc.executeTool(ctx, agent, tc, log)
			if err != nil {
				return nil, err
			}

			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       string(tc.Name),
				Content:    observation,
			})
		}
	}

	return nil, &entity.ReasoningLimitError{Rounds: uc.maxToolRounds}
}

func (uc *UseCase) executeTool(ctx context.Context, agent entity.Agent, tc entity.ToolCall, log output.LoggerPort) (string, error) {
	tool, ok := uc.tools.Get(tc.Name)
	if !ok || !agent.HasTool(tc.Name) {
		log.Error("Unknown tool requested", "name", tc.Name)
		return "", &entity.UnknownToolError{Tool: tc.Name}
	}

	log.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)

	result, err := tool.Execute(ctx, tc.Arguments)
	if err != nil {
		log.Error("Tool execution failed", "name", tc.Name, "error", err)
		return "", err
	}

	if len(result) > maxObservationLen {
		result = result[:maxObservationLen] + "\n... (truncated)"
	}

	log.Debug("Tool completed", "name", tc.Name, "resultLen", len(result))
	return result, nil
}
