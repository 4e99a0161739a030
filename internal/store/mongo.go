package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/i474232898/clima/internal/history"
)

const (
	DefaultMongoDatabase   = "HistorialCiudades"
	DefaultMongoCollection = "historials"
)

// MongoStore writes history records as schema-less documents {ciudad}.
// The client is opened once and shared by every request.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ history.Store = (*MongoStore)(nil)

// OpenMongo connects to uri and pings the primary before returning.
func OpenMongo(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// Save inserts rec. The ObjectID generated by the driver becomes the record
// ID and its embedded timestamp the creation time.
func (s *MongoStore) Save(ctx context.Context, rec history.Record) (history.Record, error) {
	res, err := s.collection.InsertOne(ctx, recordDocument(rec))
	if err != nil {
		return history.Record{}, fmt.Errorf("insert history document: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid.Hex()
		rec.CreatedAt = oid.Timestamp().UTC()
	}
	return rec, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// recordDocument leaves ciudad out entirely when the caller sent none.
func recordDocument(rec history.Record) bson.D {
	doc := bson.D{}
	if rec.Ciudad != nil {
		doc = append(doc, bson.E{Key: "ciudad", Value: *rec.Ciudad})
	}
	return doc
}
