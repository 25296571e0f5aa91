package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Volunteer status values.
const (
	VolunteerPending  = "pending"
	VolunteerApproved = "approved"
	VolunteerRejected = "rejected"
)

// Volunteer is an account's application to help at an event.
// One document per (user, event); re-applying resets status to pending.
type Volunteer struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Event  primitive.ObjectID `bson:"event" json:"event"`
	Status string             `bson:"status" json:"status"`
	Role   string             `bson:"role,omitempty" json:"role,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
