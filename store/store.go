// Package store wraps the MongoDB collections behind the HTTP handlers.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	models "github.com/greenroots/social-server/models"
)

const (
	TreesCollection  = "trees"
	EventsCollection = "events"
	JoinsCollection  = "joinedEvents"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid object id")
)

// Store groups the three collections on one database handle.
type Store struct {
	client *mongo.Client

	Trees  *Trees
	Events *Events
	Joins  *Joins
}

func New(db *mongo.Database) *Store {
	return &Store{
		client: db.Client(),
		Trees:  &Trees{col: db.Collection(TreesCollection)},
		Events: &Events{col: db.Collection(EventsCollection)},
		Joins:  &Joins{col: db.Collection(JoinsCollection)},
	}
}

// Ping checks that the primary answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// ParseID converts a hex path parameter into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

func byID(oid primitive.ObjectID) bson.M {
	return bson.M{"_id": oid}
}

func insertAck(res *mongo.InsertOneResult) models.InsertAck {
	return models.InsertAck{Acknowledged: true, InsertedID: res.InsertedID}
}

// findDocs runs filter and decodes every match, returning an empty slice, not nil.
func findDocs(ctx context.Context, col *mongo.Collection, filter interface{}) ([]bson.M, error) {
	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []bson.M{}
	}
	return docs, nil
}

func findOne(ctx context.Context, col *mongo.Collection, oid primitive.ObjectID, out interface{}) error {
	err := col.FindOne(ctx, byID(oid)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
