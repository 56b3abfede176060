// Package repository provides data access for simulation documents.
package repository

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/loadsim-service/internal/domain/model"
)

// SimulationDocument is one stored simulation: the batches produced by
// the packing backend plus editor writes. The batch trees are stored
// as a JSON snapshot string rather than nested BSON because the detail
// array is heterogeneous (orders and sub-pallets in one list) and must
// round-trip byte-faithfully for the editor.
type SimulationDocument struct {
	ID           primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	SimulationID string                 `bson:"simulation_id" json:"simulation_id"`
	Name         string                 `bson:"name,omitempty" json:"name,omitempty"`
	SnapshotData string                 `bson:"snapshot_data" json:"-"`
	Version      int                    `bson:"version" json:"version"`
	CreatedAt    time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time              `bson:"updated_at" json:"updated_at"`
	Metadata     map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// Batches decodes the snapshot into batch trees.
func (d *SimulationDocument) Batches() ([]*model.Batch, error) {
	var batches []*model.Batch
	if err := json.Unmarshal([]byte(d.SnapshotData), &batches); err != nil {
		return nil, err
	}
	return batches, nil
}

// SimulationsRepository provides methods for simulation operations.
type SimulationsRepository struct {
	collection *mongo.Collection
}

// NewSimulationsRepository creates a new simulations repository.
func NewSimulationsRepository(db *MongoDB) *SimulationsRepository {
	return &SimulationsRepository{
		collection: db.Simulations,
	}
}

// Get returns the simulation with the given external id.
func (r *SimulationsRepository) Get(ctx context.Context, simulationID string) (*SimulationDocument, error) {
	var doc SimulationDocument
	err := r.collection.FindOne(ctx, bson.M{"simulation_id": simulationID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil // Unknown simulation; the service maps this to not-found
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create stores a new simulation with the given batches as version 1.
func (r *SimulationsRepository) Create(ctx context.Context, simulationID, name string, batches []*model.Batch) (*SimulationDocument, error) {
	snapshot, err := json.Marshal(batches)
	if err != nil {
		return nil, err
	}

	doc := SimulationDocument{
		ID:           primitive.NewObjectID(),
		SimulationID: simulationID,
		Name:         name,
		SnapshotData: string(snapshot),
		Version:      1,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
		Metadata:     make(map[string]interface{}),
	}

	_, err = r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// SaveBatch writes one edited batch back into its simulation, replacing
// the stored batch with the same batch id and bumping the document
// version. The whole snapshot is rewritten; per-item deltas are not
// worth it at typical batch sizes.
func (r *SimulationsRepository) SaveBatch(ctx context.Context, simulationID string, batch *model.Batch) (*SimulationDocument, error) {
	current, err := r.Get(ctx, simulationID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	batches, err := current.Batches()
	if err != nil {
		return nil, err
	}
	for i, b := range batches {
		if b.BatchID == batch.BatchID {
			batches[i] = batch
		}
	}
	snapshot, err := json.Marshal(batches)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$set": bson.M{
			"snapshot_data": string(snapshot),
			"updated_at":    time.Now(),
			"version":       current.Version + 1,
		},
	}

	var doc SimulationDocument
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"simulation_id": simulationID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// List returns stored simulations, newest first.
func (r *SimulationsRepository) List(ctx context.Context, limit int) ([]SimulationDocument, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []SimulationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}
