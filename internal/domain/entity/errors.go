package entity

import "fmt"

// ToolError reports a tool-level transport failure. A tool never masks a
// failed call as an empty result, so downstream reasoning can tell "the search
// broke" apart from "the search found nothing".
type ToolError struct {
	Tool ToolName
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// ModelError reports a language-model transport or protocol failure,
// including rate limiting and malformed (empty) responses.
type ModelError struct {
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("language model call failed: %v", e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// UnknownToolError means the model requested a tool the agent was never
// granted. That is a configuration bug, not a recoverable observation.
type UnknownToolError struct {
	Tool ToolName
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("model requested unknown tool %q", e.Tool)
}

// ReasoningLimitError means the model kept requesting tools past the
// configured round budget without producing a final answer.
type ReasoningLimitError struct {
	Rounds int
}

func (e *ReasoningLimitError) Error() string {
	return fmt.Sprintf("reasoning loop exceeded %d tool rounds without a final answer", e.Rounds)
}

// DependencyOrderError is a startup-time validation failure: a task depends
// on a task that is not declared earlier in the sequence.
type DependencyOrderError struct {
	Task       string
	Dependency string
}

func (e *DependencyOrderError) Error() string {
	return fmt.Sprintf("task %q depends on %q, which is not declared earlier in the pipeline", e.Task, e.Dependency)
}

// TaskError attaches the identity of the failing task to the underlying
// error when a pipeline run aborts.
type TaskError struct {
	Task string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %q: %v", e.Task, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }
