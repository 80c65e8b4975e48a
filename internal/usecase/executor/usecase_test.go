package executor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-agent/internal/application/port/input"
	"research-agent/internal/application/port/output"
	"research-agent/internal/application/service"
	"research-agent/internal/domain/entity"
	"research-agent/internal/testsupport"
)

type scriptedLLM struct {
	responses []entity.Message
	requests  []output.ChatRequest
	err       error
}

func (s *scriptedLLM) Chat(_ context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	idx := len(s.requests) - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return &output.ChatResponse{Message: s.responses[idx]}, nil
}

type stubTool struct {
	name   entity.ToolName
	result string
	err    error
	calls  []string
}

func (t *stubTool) Name() entity.ToolName              { return t.name }
func (t *stubTool) Description() string                { return "stub" }
func (t *stubTool) Parameters() map[string]interface{} { return map[string]interface{}{} }
func (t *stubTool) Execute(_ context.Context, args string) (string, error) {
	t.calls = append(t.calls, args)
	if t.err != nil {
		return "", t.err
	}
	return t.result, nil
}

func searchAgentRun() input.AgentRun {
	return input.AgentRun{
		Task: entity.Task{
			Name:           "t1",
			Description:    "find X",
			ExpectedOutput: "the value of X",
			Agent: entity.Agent{
				Role:      "Researcher",
				Goal:      "dig up X",
				Backstory: "You dig things up.",
				Tools:     []entity.ToolName{entity.ToolWebSearch},
			},
		},
		Context: "upstream says: X matters",
	}
}

func registryWith(tools ...output.ToolPort) output.ToolRegistry {
	reg := service.NewToolRegistry()
	for _, t := range tools {
		reg.Register(t)
	}
	return reg
}

func toolCallMsg(name entity.ToolName, args string) entity.Message {
	return entity.Message{
		Role:      entity.RoleAssistant,
		ToolCalls: []entity.ToolCall{{ID: "call_1", Name: name, Arguments: args}},
	}
}

func finalMsg(text string) entity.Message {
	return entity.Message{Role: entity.RoleAssistant, Content: text}
}

func TestRun_ToolRoundTrip(t *testing.T) {
	llm := &scriptedLLM{responses: []entity.Message{
		toolCallMsg(entity.ToolWebSearch, `{"query":"X"}`),
		finalMsg("RESULT:X"),
	}}
	search := &stubTool{name: entity.ToolWebSearch, result: "RESULT:X"}

	uc := New(llm, registryWith(search), testsupport.Logger(), 5)
	result, err := uc.Run(context.Background(), searchAgentRun())
	require.NoError(t, err)

	assert.Equal(t, "RESULT:X", result.Output)
	assert.Equal(t, 2, result.Rounds)
	require.Len(t, search.calls, 1)
	assert.JSONEq(t, `{"query":"X"}`, search.calls[0])

	// the observation was fed back to the model
	require.Len(t, llm.requests, 2)
	secondTurn := llm.requests[1].Messages
	last := secondTurn[len(secondTurn)-1]
	assert.Equal(t, entity.RoleTool, last.Role)
	assert.Equal(t, "RESULT:X", last.Content)
	assert.Equal(t, "call_1", last.ToolCallID)
}

func TestRun_PromptCarriesIdentityTaskAndContext(t *testing.T) {
	llm := &scriptedLLM{responses: []entity.Message{finalMsg("done")}}

	uc := New(llm, registryWith(), testsupport.Logger(), 5)
	_, err := uc.Run(context.Background(), searchAgentRun())
	require.NoError(t, err)

	require.Len(t, llm.requests, 1)
	msgs := llm.requests[0].Messages
	require.Len(t, msgs, 2)

	system := msgs[0]
	assert.Equal(t, entity.RoleSystem, system.Role)
	roleIdx := strings.Index(system.Content, "Researcher")
	goalIdx := strings.Index(system.Content, "dig up X")
	storyIdx := strings.Index(system.Content, "You dig things up.")
	require.GreaterOrEqual(t, roleIdx, 0)
	assert.Less(t, roleIdx, goalIdx)
	assert.Less(t, goalIdx, storyIdx)

	user := msgs[1]
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.Contains(t, user.Content, "find X")
	assert.Contains(t, user.Content, "the value of X")
	assert.Contains(t, user.Content, "upstream says: X matters")
}

func TestRun_UnknownToolAborts(t *testing.T) {
	llm := &scriptedLLM{responses: []entity.Message{
		toolCallMsg("browse", `{"url":"https://example.com"}`),
	}}

	uc := New(llm, registryWith(), testsupport.Logger(), 5)
	result, err := uc.Run(context.Background(), searchAgentRun())
	assert.Nil(t, result)

	var unknownErr *entity.UnknownToolError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, entity.ToolName("browse"), unknownErr.Tool)
}

func TestRun_UngrantedToolAborts(t *testing.T) {
	// registered in the registry, but not granted to this agent
	other := &stubTool{name: "calculator", result: "42"}
	llm := &scriptedLLM{responses: []entity.Message{
		toolCallMsg("calculator", `{}`),
	}}

	uc := New(llm, registryWith(other), testsupport.Logger(), 5)
	_, err := uc.Run(context.Background(), searchAgentRun())

	var unknownErr *entity.UnknownToolError
	require.ErrorAs(t, err, &unknownErr)
	assert.Empty(t, other.calls)
}

func TestRun_ReasoningLimit(t *testing.T) {
	llm := &scriptedLLM{responses: []entity.Message{
		toolCallMsg(entity.ToolWebSearch, `{"query":"again"}`),
	}}
	search := &stubTool{name: entity.ToolWebSearch, result: "more"}

	uc := New(llm, registryWith(search), testsupport.Logger(), 3)
	result, err := uc.Run(context.Background(), searchAgentRun())
	assert.Nil(t, result)

	var limitErr *entity.ReasoningLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 3, limitErr.Rounds)
	assert.Len(t, llm.requests, 3)
}

func TestRun_ToolFailureAborts(t *testing.T) {
	toolErr := &entity.ToolError{Tool: entity.ToolWebSearch, Err: errors.New("connection reset")}
	llm := &scriptedLLM{responses: []entity.Message{
		toolCallMsg(entity.ToolWebSearch, `{"query":"X"}`),
		finalMsg("never reached"),
	}}
	search := &stubTool{name: entity.ToolWebSearch, err: toolErr}

	uc := New(llm, registryWith(search), testsupport.Logger(), 5)
	_, err := uc.Run(context.Background(), searchAgentRun())

	var gotErr *entity.ToolError
	require.ErrorAs(t, err, &gotErr)
	assert.Len(t, llm.requests, 1)
}

func TestRun_ModelFailureAborts(t *testing.T) {
	modelErr := &entity.ModelError{Err: errors.New("rate limited")}
	llm := &scriptedLLM{err: modelErr}

	uc := New(llm, registryWith(), testsupport.Logger(), 5)
	_, err := uc.Run(context.Background(), searchAgentRun())

	var gotErr *entity.ModelError
	require.ErrorAs(t, err, &gotErr)
}

func TestRun_EmptyFinalAnswerRejected(t *testing.T) {
	llm := &scriptedLLM{responses: []entity.Message{finalMsg("   ")}}

	uc := New(llm, registryWith(), testsupport.Logger(), 5)
	_, err := uc.Run(context.Background(), searchAgentRun())

	var gotErr *entity.ModelError
	require.ErrorAs(t, err, &gotErr)
}
