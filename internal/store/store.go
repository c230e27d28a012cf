package store

import (
	"context"

	"github.com/sells-group/fieldscout/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for report runs and their
// output rows.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, params model.RunParams) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, summary *model.RunSummary) error
	FailRun(ctx context.Context, runID string, reason string) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	LatestRun(ctx context.Context) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Report rows
	SaveRows(ctx context.Context, runID string, rows []model.ReportRow) error
	GetRows(ctx context.Context, runID string) ([]model.ReportRow, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
