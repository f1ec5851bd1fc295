package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mlorenz/asciigram/pkg/errors"
)

const diagramCollection = "diagrams"

// MongoStore is a MongoDB-backed diagram store for persistent server
// deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns a store using the given
// database. The connection is verified with a ping before the store is
// returned.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "pinging mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(diagramCollection),
	}, nil
}

// Put inserts or replaces a diagram by ID.
func (s *MongoStore) Put(ctx context.Context, d *Diagram) error {
	if d.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "diagram ID cannot be empty")
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": d.ID}, d,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "storing diagram")
	}
	return nil
}

// Get retrieves a diagram by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Diagram, error) {
	var d Diagram
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeDiagramNotFound, "diagram %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "loading diagram")
	}
	return &d, nil
}

// List returns all diagrams ordered by creation time.
func (s *MongoStore) List(ctx context.Context) ([]*Diagram, error) {
	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "listing diagrams")
	}
	defer cur.Close(ctx)

	var out []*Diagram
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decoding diagrams")
	}
	return out, nil
}

// Delete removes a diagram. Missing IDs are ignored.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "deleting diagram")
	}
	return nil
}

// Close disconnects the MongoDB client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
