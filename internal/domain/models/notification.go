package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification type values.
const (
	NotifyJoinRequest  = "join_request"
	NotifyJoinApproved = "join_approved"
)

// Notification is a best-effort message for one account. Delivery never
// blocks or fails the workflow transition that produced it; the client
// polls and the read flag is flipped explicitly.
type Notification struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User    primitive.ObjectID `bson:"user" json:"user"`
	Type    string             `bson:"type" json:"type"`
	Message string             `bson:"message" json:"message"`
	Meta    bson.M             `bson:"meta,omitempty" json:"meta,omitempty"`
	Read    bool               `bson:"read" json:"read"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
