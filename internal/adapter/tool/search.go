package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/tools/duckduckgo"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

var _ output.ToolPort = (*SearchTool)(nil)

const searchUserAgent = "Mozilla/5.0 (compatible; research-agent/1.0)"

// SearchTool exposes DuckDuckGo web search to the agents. Transport failures
// and empty result pages surface as *entity.ToolError rather than an empty
// string, so the reasoning loop never mistakes a broken search for "no
// results found".
type SearchTool struct {
	ddg    *duckduckgo.Tool
	logger output.LoggerPort
}

func NewSearchTool(maxResults int, logger output.LoggerPort) (*SearchTool, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	ddg, err := duckduckgo.New(maxResults, searchUserAgent)
	if err != nil {
		return nil, fmt.Errorf("create duckduckgo client: %w", err)
	}

	return &SearchTool{ddg: ddg, logger: logger}, nil
}

func (t *SearchTool) Name() entity.ToolName { return entity.ToolWebSearch }

func (t *SearchTool) Description() string {
	return "Searches the web for a given query and returns a text summary of the top results."
}

func (t *SearchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Search query",
			},
		},
		"required": []string{"query"},
	}
}

func (t *SearchTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(arguments), &input); err != nil {
		// Some models send the bare query instead of a JSON object.
		input.Query = strings.TrimSpace(arguments)
	}
	if strings.TrimSpace(input.Query) == "" {
		return "", &entity.ToolError{Tool: t.Name(), Err: fmt.Errorf("empty query")}
	}

	t.logger.Debug("Searching", "query", input.Query)

	result, err := t.ddg.Call(ctx, input.Query)
	if err != nil {
		return "", &entity.ToolError{Tool: t.Name(), Err: err}
	}
	if strings.TrimSpace(result) == "" {
		return "", &entity.ToolError{Tool: t.Name(), Err: fmt.Errorf("search returned no content")}
	}

	return result, nil
}
