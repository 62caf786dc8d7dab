package model

import (
	"time"

	"github.com/google/uuid"
)

// StageStatus represents the current state of a pipeline stage.
type StageStatus string

const (
	StageStatusRunning  StageStatus = "running"
	StageStatusComplete StageStatus = "complete"
	StageStatusFailed   StageStatus = "failed"
	StageStatusSkipped  StageStatus = "skipped"
)

// Stage names used across the workflow.
const (
	StageExtract   = "extract"
	StageTransform = "transform"
	StageLoad      = "load"
)

// StageResult holds the outcome of a pipeline stage: either a success with a
// count of what it produced, or a failure with the reason.
type StageResult struct {
	Name     string         `json:"name"`
	Status   StageStatus    `json:"status"`
	Duration int64          `json:"duration_ms"`
	Count    int            `json:"count"`
	Output   string         `json:"output,omitempty"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RunResult aggregates the stage results of a single workflow run.
type RunResult struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Stages    []StageResult `json:"stages"`
}

// NewRunResult creates an empty run result with a fresh run ID.
func NewRunResult() *RunResult {
	return &RunResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}

// Failed reports whether any stage in the run failed.
func (r *RunResult) Failed() bool {
	for _, s := range r.Stages {
		if s.Status == StageStatusFailed {
			return true
		}
	}
	return false
}

// Stage returns the result for the named stage, or nil if it never ran.
func (r *RunResult) Stage(name string) *StageResult {
	for i := range r.Stages {
		if r.Stages[i].Name == name {
			return &r.Stages[i]
		}
	}
	return nil
}
