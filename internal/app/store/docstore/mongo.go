// internal/app/store/docstore/mongo.go
package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a Mongo database. Documents are stored
// as-is with their string _id.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore wraps the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func toBSON(m map[string]any) bson.M {
	if m == nil {
		return bson.M{}
	}
	out := make(bson.M, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *MongoStore) Find(ctx context.Context, collection string, filter map[string]any, limit, skip int64) ([]Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.db.Collection(collection).Find(ctx, toBSON(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		docs = append(docs, Document(raw))
	}
	return docs, cur.Err()
}

func (s *MongoStore) Count(ctx context.Context, collection string, filter map[string]any) (int64, error) {
	return s.db.Collection(collection).CountDocuments(ctx, toBSON(filter))
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return Document(raw), nil
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc Document) error {
	_, err := s.db.Collection(collection).InsertOne(ctx, toBSON(doc))
	return err
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, expectVersion int64, fields Document) error {
	set := toBSON(fields)
	delete(set, "_id")
	delete(set, "version")

	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": id, "version": expectVersion},
		bson.M{"$set": set, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing document from a lost version race.
		n, err := s.db.Collection(collection).CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

func (s *MongoStore) Remove(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
