package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayurtrace/regulator/internal/domain/models"
)

const (
	batchCollection    = "batches"
	snapshotCollection = "compliance_snapshots"
)

// BatchRepository implements the batch system of record and the snapshot
// store on MongoDB.
type BatchRepository struct {
	client *mongo.Client
	dbName string
}

// NewBatchRepository connects to MongoDB and verifies the connection.
func NewBatchRepository(ctx context.Context, uri string, dbName string) (*BatchRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &BatchRepository{client: client, dbName: dbName}, nil
}

func (r *BatchRepository) batches() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(batchCollection)
}

// Seed inserts the provided batches when the collection is empty, so a fresh
// database starts with the demo network.
func (r *BatchRepository) Seed(ctx context.Context, batches []models.Batch) error {
	count, err := r.batches().CountDocuments(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("count batches: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(batches))
	for _, b := range batches {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("seed batch %q: %w", b.ID, err)
		}
		docs = append(docs, b)
	}

	if _, err := r.batches().InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed batches: %w", err)
	}
	return nil
}

// ListBatches returns the full collection ordered by id.
func (r *BatchRepository) ListBatches(ctx context.Context) ([]models.Batch, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.batches().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Batch
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode batches: %w", err)
	}
	return out, nil
}

// GetBatch looks up one batch by id.
func (r *BatchRepository) GetBatch(ctx context.Context, id string) (models.Batch, error) {
	var b models.Batch
	err := r.batches().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Batch{}, fmt.Errorf("batch %q: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Batch{}, fmt.Errorf("get batch %q: %w", id, err)
	}
	return b, nil
}

// UpdateStatus sets the status and pushes the history event in one update
// document, so the two writes cannot be observed separately.
func (r *BatchRepository) UpdateStatus(ctx context.Context, id string, status models.BatchStatus, event models.HistoryEvent) (models.Batch, error) {
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "status", Value: status}}},
		{Key: "$push", Value: bson.D{{Key: "history", Value: event}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Batch
	err := r.batches().FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Batch{}, fmt.Errorf("batch %q: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Batch{}, fmt.Errorf("update batch %q: %w", id, err)
	}
	return updated, nil
}

// SaveSnapshot stores a daily compliance snapshot.
func (r *BatchRepository) SaveSnapshot(ctx context.Context, snapshot models.ComplianceSnapshot) error {
	collection := r.client.Database(r.dbName).Collection(snapshotCollection)
	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert compliance snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *BatchRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
