package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	models "github.com/greenroots/social-server/models"
)

type Joins struct {
	col *mongo.Collection
}

// Insert stores j as given. Duplicate joins are allowed.
func (s *Joins) Insert(ctx context.Context, j models.JoinedEvent) (models.InsertAck, error) {
	res, err := s.col.InsertOne(ctx, j)
	if err != nil {
		return models.InsertAck{}, fmt.Errorf("insert join: %w", err)
	}
	return insertAck(res), nil
}

func (s *Joins) List(ctx context.Context) ([]models.JoinedEvent, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list joins: %w", err)
	}
	joins := []models.JoinedEvent{}
	if err := cursor.All(ctx, &joins); err != nil {
		return nil, fmt.Errorf("decode joins: %w", err)
	}
	return joins, nil
}

func (s *Joins) FindByID(ctx context.Context, id string) (models.JoinedEvent, error) {
	oid, err := ParseID(id)
	if err != nil {
		return models.JoinedEvent{}, err
	}
	var j models.JoinedEvent
	if err := findOne(ctx, s.col, oid, &j); err != nil {
		return models.JoinedEvent{}, fmt.Errorf("find join %s: %w", id, err)
	}
	return j, nil
}
