package store

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	models "github.com/greenroots/social-server/models"
)

type Trees struct {
	col *mongo.Collection
}

// UpcomingFilter selects listings dated on or after f.FromDate. event_date is
// compared as a YYYY-MM-DD string, so lexical order is chronological order.
func UpcomingFilter(f models.TreeFilter) bson.M {
	filter := bson.M{"event_date": bson.M{"$gte": f.FromDate}}
	if f.Type != "" && f.Type != models.AllTypes {
		filter["event_type"] = f.Type
	}
	if f.Search != "" {
		filter["event_title"] = bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
	}
	return filter
}

func (t *Trees) Insert(ctx context.Context, doc bson.M) (models.InsertAck, error) {
	res, err := t.col.InsertOne(ctx, doc)
	if err != nil {
		return models.InsertAck{}, fmt.Errorf("insert tree: %w", err)
	}
	return insertAck(res), nil
}

func (t *Trees) ListUpcoming(ctx context.Context, f models.TreeFilter) ([]bson.M, error) {
	docs, err := findDocs(ctx, t.col, UpcomingFilter(f))
	if err != nil {
		return nil, fmt.Errorf("list trees: %w", err)
	}
	return docs, nil
}

func (t *Trees) FindByID(ctx context.Context, id string) (bson.M, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := findOne(ctx, t.col, oid, &doc); err != nil {
		return nil, fmt.Errorf("find tree %s: %w", id, err)
	}
	return doc, nil
}

// DeleteByID reports a zero count, not an error, when nothing matched.
func (t *Trees) DeleteByID(ctx context.Context, id string) (models.DeleteAck, error) {
	oid, err := ParseID(id)
	if err != nil {
		return models.DeleteAck{}, err
	}
	res, err := t.col.DeleteOne(ctx, byID(oid))
	if err != nil {
		return models.DeleteAck{}, fmt.Errorf("delete tree %s: %w", id, err)
	}
	return models.DeleteAck{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
