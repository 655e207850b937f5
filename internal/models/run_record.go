package models

import "time"

// RunRecord is the run-history row for one completed batch run.
type RunRecord struct {
	RunID          string
	InputPath      string
	TotalRequests  int64
	MalformedLines int64
	StartedAt      time.Time
	Duration       time.Duration
}
