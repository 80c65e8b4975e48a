package entity

// Task is one unit of pipeline work. Dependencies reference earlier tasks by
// name; their outputs become this task's context. Task values are shared
// between pipeline runs and are never mutated: per-run outputs live in the
// pipeline, not here.
type Task struct {
	Name           string
	Description    string
	ExpectedOutput string
	Agent          Agent
	Dependencies   []string
}
