package mongodb

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/abattoir/internal/domain/models"
	"github.com/mamadbah2/abattoir/internal/repository/store"
)

const (
	countersCollection = "counters"
	reportsCollection  = "financial_reports"
)

// Repository defines the interface for report storage.
type Repository interface {
	SaveFinancialReport(ctx context.Context, report models.FinancialReport) error
}

var (
	_ Repository    = (*MongoDBRepository)(nil)
	_ store.Backend = (*MongoDBRepository)(nil)
)

// recordDocument is how an encoded entity record sits in its collection.
type recordDocument struct {
	ID      int64  `bson:"_id"`
	Payload []byte `bson:"payload"`
}

type counterDocument struct {
	Name  string `bson:"_id"`
	Value int64  `bson:"value"`
}

// MongoDBRepository stores entity records (one collection per partition), the
// ID counter and archived financial reports.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Put implements store.Backend.
func (r *MongoDBRepository) Put(ctx context.Context, partition string, id uint64, data []byte) ([]byte, error) {
	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var prev recordDocument
	err := r.db.Collection(partition).
		FindOneAndReplace(ctx, bson.M{"_id": int64(id)}, recordDocument{ID: int64(id), Payload: data}, opts).
		Decode(&prev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert %s record: %w", partition, err)
	}
	return prev.Payload, nil
}

// Get implements store.Backend.
func (r *MongoDBRepository) Get(ctx context.Context, partition string, id uint64) ([]byte, bool, error) {
	var doc recordDocument
	err := r.db.Collection(partition).FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to find %s record: %w", partition, err)
	}
	return doc.Payload, true, nil
}

// Scan implements store.Backend.
func (r *MongoDBRepository) Scan(ctx context.Context, partition string) iter.Seq2[store.RawRow, error] {
	return func(yield func(store.RawRow, error) bool) {
		opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
		cursor, err := r.db.Collection(partition).Find(ctx, bson.D{}, opts)
		if err != nil {
			yield(store.RawRow{}, fmt.Errorf("failed to query %s: %w", partition, err))
			return
		}
		defer func() { _ = cursor.Close(ctx) }()

		for cursor.Next(ctx) {
			var doc recordDocument
			if err := cursor.Decode(&doc); err != nil {
				yield(store.RawRow{}, fmt.Errorf("failed to decode %s document: %w", partition, err))
				return
			}
			if !yield(store.RawRow{ID: uint64(doc.ID), Data: doc.Payload}, nil) {
				return
			}
		}
		if err := cursor.Err(); err != nil {
			yield(store.RawRow{}, err)
		}
	}
}

// Count implements store.Backend.
func (r *MongoDBRepository) Count(ctx context.Context, partition string) (int, error) {
	n, err := r.db.Collection(partition).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", partition, err)
	}
	return int(n), nil
}

// Increment implements store.Backend with an atomic $inc on the counter
// document; the pre-increment value is returned.
func (r *MongoDBRepository) Increment(ctx context.Context, counter string) (uint64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var doc counterDocument
	err := r.db.Collection(countersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": counter}, bson.M{"$inc": bson.M{"value": int64(1)}}, opts).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter %s: %w", counter, err)
	}
	return uint64(doc.Value), nil
}

// SaveFinancialReport archives a report snapshot.
func (r *MongoDBRepository) SaveFinancialReport(ctx context.Context, report models.FinancialReport) error {
	_, err := r.db.Collection(reportsCollection).InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to insert financial report: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
