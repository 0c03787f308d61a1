package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	// Message is a single chat message between two users. Sender and
	// Receiver are opaque user ids; the service never checks that they
	// belong to existing accounts. A persisted message is never mutated.
	Message struct {
		ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
		Sender    string             `bson:"sender" json:"sender"`
		Receiver  string             `bson:"receiver" json:"receiver"`
		Content   string             `bson:"content" json:"content"`
		Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	}
)
