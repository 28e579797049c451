// Package store defines the optional run archive. The two CSV files stay
// the canonical pipeline output; the archive exists so past runs can be
// inspected without re-calling the classifier.
package store

import (
	"context"
	"time"
)

// Store persists pipeline runs.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]RunInfo, error)
}

// Run is one archived pipeline execution.
type Run struct {
	ID        string
	StartedAt time.Time
	Model     string
	Docs      []DocRecord
	Topics    []TopicRecord
}

// RunInfo is the listing view of a run.
type RunInfo struct {
	ID        string
	StartedAt time.Time
	Model     string
	DocCount  int
}

// DocRecord mirrors one row of the categorized CSV.
type DocRecord struct {
	DocIndex   int
	FileName   string
	Date       string
	TopicCount int
	Summary    string
	Category   string
	Confidence float64
	Rationale  string
}

// TopicRecord mirrors one row of the distribution CSV.
type TopicRecord struct {
	DocIndex   int
	TopicID    int
	Name       string
	Proportion float64
}
