package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures the MongoDB view backend.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string
	// Database name. Defaults to "graphlens".
	Database string
	// Collection name. Defaults to "views".
	Collection string
}

// MongoStore persists views in a MongoDB collection, keyed by the
// (graph_hash, name) pair with an upsert on save.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
// It also ensures the unique index on (graph_hash, name).
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := cfg.Database
	if db == "" {
		db = "graphlens"
	}
	collName := cfg.Collection
	if collName == "" {
		collName = "views"
	}

	coll := client.Database(db).Collection(collName)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "graph_hash", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create view index: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Save stores a view, replacing any existing view with the same key.
func (s *MongoStore) Save(ctx context.Context, v *View) error {
	if v.Name == "" {
		return ErrInvalidName
	}

	filter := bson.M{"graph_hash": v.GraphHash, "name": v.Name}
	_, err := s.coll.ReplaceOne(ctx, filter, v, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save view %s: %w", v.Name, err)
	}
	return nil
}

// Get retrieves a view by graph hash and name.
func (s *MongoStore) Get(ctx context.Context, graphHash, name string) (*View, error) {
	var v View
	err := s.coll.FindOne(ctx, bson.M{"graph_hash": graphHash, "name": name}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get view %s: %w", name, err)
	}
	return &v, nil
}

// List returns all views for a graph, newest first.
func (s *MongoStore) List(ctx context.Context, graphHash string) ([]View, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"graph_hash": graphHash}, opts)
	if err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	defer cur.Close(ctx)

	var views []View
	if err := cur.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("decode views: %w", err)
	}
	return views, nil
}

// Delete removes a view.
func (s *MongoStore) Delete(ctx context.Context, graphHash, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"graph_hash": graphHash, "name": name})
	if err != nil {
		return fmt.Errorf("delete view %s: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
