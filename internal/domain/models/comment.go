package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxCommentLength bounds comment content.
const MaxCommentLength = 500

// Comment belongs to an event and an account; listed in creation order.
type Comment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Event   primitive.ObjectID `bson:"event" json:"event"`
	User    primitive.ObjectID `bson:"user" json:"user"`
	Content string             `bson:"content" json:"content"`

	// UserName is filled in on reads by joining against users; not stored.
	UserName string `bson:"userName,omitempty" json:"userName,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
