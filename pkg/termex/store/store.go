package store

import (
	"context"
	"time"
)

// Store persists extraction runs.
type Store interface {
	Close() error

	// SaveRun stores a complete run, replacing any run with the same ID.
	SaveRun(ctx context.Context, r Run) error
	// GetRun returns a run by ID or internalerr.ErrNotFound.
	GetRun(ctx context.Context, id string) (Run, error)
	// LatestRun returns the run with the greatest ID.
	LatestRun(ctx context.Context) (Run, bool, error)
	// ListRuns returns summaries, newest first. limit <= 0 means all.
	ListRuns(ctx context.Context, limit int) ([]RunInfo, error)
}

// Run is the stored result of one extraction. IDs are ULIDs, so they sort
// by creation time.
type Run struct {
	ID        string
	CreatedAt time.Time
	Settings  string // YAML-encoded settings the run used
	Documents int
	Terms     []Term
	Labels    []Label
	Acronyms  []Acronym
}

// Term is a stored scored term.
type Term struct {
	ID       int
	Expanded string
	CValue   float64
	F        int
	DF       int
	IDF      float64
	Variants []Variant
}

// Variant is a surface form of a term with its frequency.
type Variant struct {
	Text      string
	Frequency int
}

// Label is a stored occurrence, in byte offsets.
type Label struct {
	DocID  string
	Start  int
	Length int
	TermID int
}

// Acronym is a stored acronym definition.
type Acronym struct {
	Short string
	Long  string
	Key   string
}

// RunInfo summarizes a run.
type RunInfo struct {
	ID        string
	CreatedAt time.Time
	Documents int
	Terms     int
}
