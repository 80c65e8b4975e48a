package entity

// Agent is the immutable identity behind a task, plus the set of tools the
// model is allowed to call while working on it.
type Agent struct {
	Role        string
	Goal        string
	Backstory   string
	Tools       []ToolName
	Temperature float32
}

// HasTool reports whether the agent was granted the named tool.
func (a Agent) HasTool(name ToolName) bool {
	for _, t := range a.Tools {
		if t == name {
			return true
		}
	}
	return false
}
