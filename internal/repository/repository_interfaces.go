// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"github.com/guttosm/loadsim-service/internal/domain/model"
)

// SimulationsRepositoryInterface defines the interface for simulation repository operations.
type SimulationsRepositoryInterface interface {
	Get(ctx context.Context, simulationID string) (*SimulationDocument, error)
	Create(ctx context.Context, simulationID, name string, batches []*model.Batch) (*SimulationDocument, error)
	SaveBatch(ctx context.Context, simulationID string, batch *model.Batch) (*SimulationDocument, error)
	List(ctx context.Context, limit int) ([]SimulationDocument, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
