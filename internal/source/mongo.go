package source

import (
	"context"
	"fmt"
	"io"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dbsmedya/goschema/internal/document"
)

// MongoSource yields documents sampled from one MongoDB collection.
// Sampling uses the server-side $sample stage so the random subset is chosen
// by the database, not streamed and discarded client-side.
type MongoSource struct {
	cursor *mongo.Cursor
}

// NewMongo opens a sampling cursor over the named collection. A sampleSize of
// zero or less scans the full collection instead of sampling.
func NewMongo(ctx context.Context, client *mongo.Client, database, collection string, sampleSize int) (*MongoSource, error) {
	if client == nil {
		return nil, fmt.Errorf("mongo client is nil")
	}
	if database == "" {
		return nil, fmt.Errorf("database name is empty")
	}
	if collection == "" {
		return nil, fmt.Errorf("collection name is empty")
	}

	coll := client.Database(database).Collection(collection)

	var cursor *mongo.Cursor
	var err error
	if sampleSize > 0 {
		pipeline := mongo.Pipeline{
			{{Key: "$sample", Value: bson.D{{Key: "size", Value: sampleSize}}}},
		}
		cursor, err = coll.Aggregate(ctx, pipeline)
	} else {
		cursor, err = coll.Find(ctx, bson.D{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open cursor on %s.%s: %w", database, collection, err)
	}

	return &MongoSource{cursor: cursor}, nil
}

// Next returns the next sampled document, or io.EOF when the cursor drains.
func (s *MongoSource) Next(ctx context.Context) (*document.Document, error) {
	if s.cursor.Next(ctx) {
		var d bson.D
		if err := s.cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		return FromBSON(d), nil
	}

	if err := s.cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return nil, io.EOF
}

// Close releases the cursor.
func (s *MongoSource) Close() error {
	return s.cursor.Close(context.Background())
}

// CollectionInfo describes one collection for listing purposes.
type CollectionInfo struct {
	Name  string
	Count int64
}

// ListCollections enumerates the collections of a database with estimated
// document counts, sorted by name.
func ListCollections(ctx context.Context, client *mongo.Client, database string) ([]CollectionInfo, error) {
	db := client.Database(database)

	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	infos := make([]CollectionInfo, 0, len(names))
	for _, name := range names {
		count, err := db.Collection(name).EstimatedDocumentCount(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", name, err)
		}
		infos = append(infos, CollectionInfo{Name: name, Count: count})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}
