package entity

type ToolName string

const (
	ToolWebSearch ToolName = "web_search"
)

func (t ToolName) String() string {
	return string(t)
}

type ToolDefinition struct {
	Name        ToolName
	Description string
	Parameters  map[string]interface{}
}
