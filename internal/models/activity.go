package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is one entry of a user's interaction history stored in MongoDB
type Activity struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EventID    string             `json:"eventId" bson:"event_id"`
	Action     string             `json:"action" bson:"action"`
	UserID     uint               `json:"userId" bson:"user_id"`
	PostID     uint               `json:"postId" bson:"post_id"`
	OccurredAt time.Time          `json:"occurredAt" bson:"occurred_at"`
}
