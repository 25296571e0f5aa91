package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RSVP status values.
const (
	RSVPGoing     = "going"
	RSVPCancelled = "cancelled"
)

// RSVP is an account's attendance intent for an event.
// Exactly one document per (user, event); re-RSVP overwrites the status.
type RSVP struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Event  primitive.ObjectID `bson:"event" json:"event"`
	Status string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
