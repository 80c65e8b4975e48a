package entity

import "time"

// Report is the artifact of one fully successful pipeline run: the final
// task's output plus when and under which run it was produced.
type Report struct {
	RunID       string
	Text        string
	CompletedAt time.Time
}
