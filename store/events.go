package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	models "github.com/greenroots/social-server/models"
)

type Events struct {
	col *mongo.Collection
}

// OverwriteFields builds the $set document for an event update. Every field in
// models.EventFields is written; those missing from body become null.
func OverwriteFields(body map[string]interface{}) bson.M {
	set := bson.M{}
	for _, field := range models.EventFields {
		set[field] = body[field]
	}
	return set
}

func (e *Events) Insert(ctx context.Context, doc bson.M) (models.InsertAck, error) {
	res, err := e.col.InsertOne(ctx, doc)
	if err != nil {
		return models.InsertAck{}, fmt.Errorf("insert event: %w", err)
	}
	return insertAck(res), nil
}

func (e *Events) List(ctx context.Context) ([]bson.M, error) {
	docs, err := findDocs(ctx, e.col, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return docs, nil
}

func (e *Events) FindByID(ctx context.Context, id string) (bson.M, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := findOne(ctx, e.col, oid, &doc); err != nil {
		return nil, fmt.Errorf("find event %s: %w", id, err)
	}
	return doc, nil
}

func (e *Events) UpdateByID(ctx context.Context, id string, body map[string]interface{}) (models.UpdateAck, error) {
	oid, err := ParseID(id)
	if err != nil {
		return models.UpdateAck{}, err
	}
	res, err := e.col.UpdateOne(ctx, byID(oid), bson.M{"$set": OverwriteFields(body)})
	if err != nil {
		return models.UpdateAck{}, fmt.Errorf("update event %s: %w", id, err)
	}
	return models.UpdateAck{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}
