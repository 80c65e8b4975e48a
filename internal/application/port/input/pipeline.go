package input

import (
	"context"

	"research-agent/internal/domain/entity"
)

// PipelineRunner executes every task once, in declaration order, and returns
// the final task's output as a report. Any task failure aborts the run.
type PipelineRunner interface {
	Run(ctx context.Context) (*entity.Report, error)
}

// ReportRefresher is the serving-side view of the report cache.
type ReportRefresher interface {
	Read() (entity.Report, bool)
	Refresh(ctx context.Context) (entity.Report, error)
}
