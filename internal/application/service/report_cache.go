package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"research-agent/internal/application/port/input"
	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

var _ input.ReportRefresher = (*ReportCache)(nil)

// ReportCache holds the last successful pipeline report in a single slot.
//
// Refresh policy: concurrent refreshes collapse into one pipeline execution
// via singleflight; callers that arrive while a run is in flight block and
// receive that run's result. A failed refresh leaves the stored report
// untouched, so readers keep seeing stale-but-valid data. Reads never block
// on an in-flight refresh.
type ReportCache struct {
	pipeline input.PipelineRunner
	logger   output.LoggerPort
	timeout  time.Duration

	flight singleflight.Group

	mu     sync.RWMutex
	report entity.Report
	filled bool
}

func NewReportCache(pipeline input.PipelineRunner, logger output.LoggerPort, timeout time.Duration) *ReportCache {
	return &ReportCache{
		pipeline: pipeline,
		logger:   logger,
		timeout:  timeout,
	}
}

func (c *ReportCache) Read() (entity.Report, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.report, c.filled
}

// Refresh runs the pipeline and replaces the stored report on success.
// The run is detached from the caller's context: an abandoned request must
// not abort an expensive, externally billed run that is already underway.
func (c *ReportCache) Refresh(ctx context.Context) (entity.Report, error) {
	v, err, shared := c.flight.Do("report", func() (interface{}, error) {
		runCtx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(runCtx, c.timeout)
			defer cancel()
		}

		report, err := c.pipeline.Run(runCtx)
		if err != nil {
			c.logger.Error("Refresh failed, keeping previous report", "error", err)
			return nil, err
		}

		c.mu.Lock()
		c.report = *report
		c.filled = true
		c.mu.Unlock()

		c.logger.Info("Report refreshed", "runID", report.RunID, "chars", len(report.Text))
		return *report, nil
	})
	if err != nil {
		return entity.Report{}, err
	}
	if shared {
		c.logger.Debug("Refresh joined an in-flight run")
	}
	return v.(entity.Report), nil
}
