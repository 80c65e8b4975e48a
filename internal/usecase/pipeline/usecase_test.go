package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-agent/internal/application/port/input"
	"research-agent/internal/domain/entity"
	"research-agent/internal/testsupport"
)

type runnerFunc func(ctx context.Context, run input.AgentRun) (*input.AgentResult, error)

func (f runnerFunc) Run(ctx context.Context, run input.AgentRun) (*input.AgentResult, error) {
	return f(ctx, run)
}

func chainTasks() []entity.Task {
	return []entity.Task{
		{Name: "t1", Description: "research sectors"},
		{Name: "t2", Description: "pick stocks", Dependencies: []string{"t1"}},
		{Name: "t3", Description: "write report", Dependencies: []string{"t1", "t2"}},
	}
}

func TestRun_ExecutesInDeclarationOrder(t *testing.T) {
	var order []string
	received := make(map[string]string)

	runner := runnerFunc(func(_ context.Context, run input.AgentRun) (*input.AgentResult, error) {
		order = append(order, run.Task.Name)
		received[run.Task.Name] = run.Context
		return &input.AgentResult{Output: "out-" + run.Task.Name, Rounds: 1}, nil
	})

	uc, err := New(chainTasks(), runner, testsupport.Logger())
	require.NoError(t, err)

	report, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"t1", "t2", "t3"}, order)
	assert.Equal(t, "out-t3", report.Text)
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.CompletedAt.IsZero())
}

func TestRun_ContextAggregatesDependencyOutputsInOrder(t *testing.T) {
	received := make(map[string]string)

	runner := runnerFunc(func(_ context.Context, run input.AgentRun) (*input.AgentResult, error) {
		received[run.Task.Name] = run.Context
		return &input.AgentResult{Output: "out-" + run.Task.Name, Rounds: 1}, nil
	})

	uc, err := New(chainTasks(), runner, testsupport.Logger())
	require.NoError(t, err)

	_, err = uc.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, received["t1"])
	assert.Contains(t, received["t2"], "out-t1")

	ctx3 := received["t3"]
	first := strings.Index(ctx3, "out-t1")
	second := strings.Index(ctx3, "out-t2")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)

	// provenance headers carry the source task's description
	assert.Contains(t, ctx3, "### research sectors")
	assert.Contains(t, ctx3, "### pick stocks")
}

func TestNew_RejectsForwardDependency(t *testing.T) {
	tasks := []entity.Task{
		{Name: "t1", Description: "first", Dependencies: []string{"t2"}},
		{Name: "t2", Description: "second"},
	}

	uc, err := New(tasks, nil, testsupport.Logger())
	assert.Nil(t, uc)

	var depErr *entity.DependencyOrderError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "t1", depErr.Task)
	assert.Equal(t, "t2", depErr.Dependency)
}

func TestNew_RejectsEmptySequence(t *testing.T) {
	_, err := New(nil, nil, testsupport.Logger())
	assert.Error(t, err)
}

func TestNew_RejectsDuplicateNames(t *testing.T) {
	tasks := []entity.Task{
		{Name: "t1", Description: "first"},
		{Name: "t1", Description: "again"},
	}
	_, err := New(tasks, nil, testsupport.Logger())
	assert.Error(t, err)
}

func TestRun_AbortsOnFirstFailure(t *testing.T) {
	boom := errors.New("search exploded")
	var executed []string

	runner := runnerFunc(func(_ context.Context, run input.AgentRun) (*input.AgentResult, error) {
		executed = append(executed, run.Task.Name)
		if run.Task.Name == "t2" {
			return nil, boom
		}
		return &input.AgentResult{Output: "out-" + run.Task.Name, Rounds: 1}, nil
	})

	uc, err := New(chainTasks(), runner, testsupport.Logger())
	require.NoError(t, err)

	report, err := uc.Run(context.Background())
	assert.Nil(t, report)

	var taskErr *entity.TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, "t2", taskErr.Task)
	assert.ErrorIs(t, err, boom)

	// t3 never ran
	assert.Equal(t, []string{"t1", "t2"}, executed)
}
