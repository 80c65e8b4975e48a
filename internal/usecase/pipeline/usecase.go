// Package pipeline runs an ordered list of tasks once each, wiring every
// task's dependency outputs into its context before handing it to its agent.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"research-agent/internal/application/port/input"
	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

var _ input.PipelineRunner = (*UseCase)(nil)

type UseCase struct {
	tasks  []entity.Task
	runner input.AgentRunner
	logger output.LoggerPort

	// description lookup for context provenance headers
	descriptions map[string]string
}

// New validates the task sequence at construction time. Every dependency must
// name a task declared earlier in the sequence; anything else is a
// configuration error, never a scheduling decision.
func New(tasks []entity.Task, runner input.AgentRunner, logger output.LoggerPort) (*UseCase, error) {
	if len(tasks) == 0 {
		return nil, fmt.Errorf("pipeline requires at least one task")
	}

	descriptions := make(map[string]string, len(tasks))
	for _, task := range tasks {
		if task.Name == "" {
			return nil, fmt.Errorf("task with description %q has no name", task.Description)
		}
		if _, ok := descriptions[task.Name]; ok {
			return nil, fmt.Errorf("duplicate task name %q", task.Name)
		}
		for _, dep := range task.Dependencies {
			if _, ok := descriptions[dep]; !ok {
				return nil, &entity.DependencyOrderError{Task: task.Name, Dependency: dep}
			}
		}
		descriptions[task.Name] = task.Description
	}

	return &UseCase{
		tasks:        tasks,
		runner:       runner,
		logger:       logger,
		descriptions: descriptions,
	}, nil
}

// Run executes the tasks strictly in declaration order. The first failure
// aborts the run with the failing task's identity attached; no partial report
// is ever assembled.
func (uc *UseCase) Run(ctx context.Context) (*entity.Report, error) {
	runID := uuid.NewString()
	log := uc.logger.WithField("runID", runID)
	log.Info("Pipeline started", "tasks", len(uc.tasks))

	started := time.Now()
	outputs := make(map[string]string, len(uc.tasks))

	for i, task := range uc.tasks {
		log.Info("Task started", "task", task.Name, "position", i+1)

		result, err := uc.runner.Run(ctx, input.AgentRun{
			Task:    task,
			Context: uc.buildContext(task, outputs),
		})
		if err != nil {
			log.Error("Pipeline aborted", "task", task.Name, "error", err)
			return nil, &entity.TaskError{Task: task.Name, Err: err}
		}

		outputs[task.Name] = result.Output
		log.Info("Task completed", "task", task.Name, "rounds", result.Rounds)
	}

	last := uc.tasks[len(uc.tasks)-1]
	log.Info("Pipeline completed", "duration", time.Since(started).String())

	return &entity.Report{
		RunID:       runID,
		Text:        outputs[last.Name],
		CompletedAt: time.Now(),
	}, nil
}

// buildContext concatenates the recorded outputs of the task's dependencies
// in declared order, each prefixed by the source task's description so the
// downstream agent knows where a piece of context came from.
func (uc *UseCase) buildContext(task entity.Task, outputs map[string]string) string {
	if len(task.Dependencies) == 0 {
		return ""
	}

	var b strings.Builder
	for _, dep := range task.Dependencies {
		b.WriteString("### ")
		b.WriteString(uc.descriptions[dep])
		b.WriteString("\n")
		b.WriteString(outputs[dep])
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
