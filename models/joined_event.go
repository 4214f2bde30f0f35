package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JoinRequest is the body of POST /join-event. Only userId and eventId are
// checked; every other field is stored exactly as the client sent it.
type JoinRequest struct {
	UserID     interface{} `json:"userId" binding:"required"`
	UserName   interface{} `json:"userName"`
	UserEmail  interface{} `json:"userEmail"`
	EventID    interface{} `json:"eventId" binding:"required"`
	EventTitle interface{} `json:"eventTitle"`
	EventDate  interface{} `json:"eventDate"`
}

type JoinedEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID     interface{}        `bson:"userId" json:"userId"`
	UserName   interface{}        `bson:"userName" json:"userName"`
	UserEmail  interface{}        `bson:"userEmail" json:"userEmail"`
	EventID    primitive.ObjectID `bson:"eventId" json:"eventId"`
	EventTitle interface{}        `bson:"eventTitle" json:"eventTitle"`
	EventDate  interface{}        `bson:"eventDate" json:"eventDate"`
	JoinedAt   time.Time          `bson:"joinedAt" json:"joinedAt"`
}

// Text renders a pass-through field for display; nil becomes "".
func Text(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
