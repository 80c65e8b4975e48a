// Package prompts composes the messages handed to the language model. The
// identity prompt carries who the agent is; the brief carries the task, the
// expected output and the upstream context, each under an explicit section
// marker so the model can tell the parts apart.
package prompts

import (
	"bytes"
	"text/template"

	"research-agent/internal/domain/entity"
)

const identityTemplate = `## Role
{{.Role}}

## Goal
{{.Goal}}

## Backstory
{{.Backstory}}

Work the task you are given. Use the available tools when you need current
information. When you are done, reply with the final deliverable only.`

const briefTemplate = `## Task
{{.Description}}

## Expected Output
{{.ExpectedOutput}}
{{if .Context}}
## Context
{{.Context}}{{end}}`

var (
	identityTmpl = template.Must(template.New("identity").Parse(identityTemplate))
	briefTmpl    = template.Must(template.New("brief").Parse(briefTemplate))
)

func AgentIdentity(agent entity.Agent) (string, error) {
	var buf bytes.Buffer
	if err := identityTmpl.Execute(&buf, agent); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type briefData struct {
	Description    string
	ExpectedOutput string
	Context        string
}

func TaskBrief(task entity.Task, taskContext string) (string, error) {
	var buf bytes.Buffer
	err := briefTmpl.Execute(&buf, briefData{
		Description:    task.Description,
		ExpectedOutput: task.ExpectedOutput,
		Context:        taskContext,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
