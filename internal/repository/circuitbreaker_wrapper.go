// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"github.com/guttosm/loadsim-service/internal/circuitbreaker"
	"github.com/guttosm/loadsim-service/internal/domain/model"
)

// SimulationsRepositoryWithCircuitBreaker wraps SimulationsRepository with circuit breaker protection.
type SimulationsRepositoryWithCircuitBreaker struct {
	repo           *SimulationsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewSimulationsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewSimulationsRepositoryWithCircuitBreaker(repo *SimulationsRepository, cb *circuitbreaker.CircuitBreaker) *SimulationsRepositoryWithCircuitBreaker {
	return &SimulationsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Get returns a simulation with circuit breaker protection. When the
// circuit is open the error propagates: there is no meaningful default
// for a missing batch tree.
func (r *SimulationsRepositoryWithCircuitBreaker) Get(ctx context.Context, simulationID string) (*SimulationDocument, error) {
	var result *SimulationDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Get(ctx, simulationID)
		return cbErr
	})
	return result, err
}

// Create stores a new simulation with circuit breaker protection.
func (r *SimulationsRepositoryWithCircuitBreaker) Create(ctx context.Context, simulationID, name string, batches []*model.Batch) (*SimulationDocument, error) {
	var result *SimulationDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Create(ctx, simulationID, name, batches)
		return cbErr
	})
	return result, err
}

// SaveBatch writes an edited batch back with circuit breaker protection.
func (r *SimulationsRepositoryWithCircuitBreaker) SaveBatch(ctx context.Context, simulationID string, batch *model.Batch) (*SimulationDocument, error) {
	var result *SimulationDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.SaveBatch(ctx, simulationID, batch)
		return cbErr
	})
	return result, err
}

// List returns stored simulations with circuit breaker protection.
func (r *SimulationsRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]SimulationDocument, error) {
	var result []SimulationDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx, limit)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *SimulationsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           *LogsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo *LogsRepository, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - silently fail (logging is non-critical)
		return nil
	}
	return err
}

// CreateMany stores multiple log entries with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - silently fail (logging is non-critical)
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
