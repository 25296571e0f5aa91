package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event belongs to exactly one club and is created by the club's owner.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Club        primitive.ObjectID `bson:"club" json:"club"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	StartAt     time.Time          `bson:"startAt" json:"startAt"`
	EndAt       *time.Time         `bson:"endAt,omitempty" json:"endAt,omitempty"`

	Location EventLocation `bson:"location" json:"location"`

	Capacity         int    `bson:"capacity,omitempty" json:"capacity,omitempty"`
	VolunteersNeeded int    `bson:"volunteersNeeded" json:"volunteersNeeded"`
	ImageURL         string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`

	CreatedBy primitive.ObjectID `bson:"createdBy" json:"createdBy"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// EventLocation is a GeoJSON point plus the human-readable address fields.
// Address, city, state, and coordinates are all required at creation.
type EventLocation struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [lng, lat]
	Address     string    `bson:"address" json:"address"`
	City        string    `bson:"city" json:"city"`
	State       string    `bson:"state" json:"state"`
}

// Valid reports whether all required location fields are present.
func (l *EventLocation) Valid() bool {
	return l != nil &&
		len(l.Coordinates) == 2 &&
		l.Address != "" && l.City != "" && l.State != ""
}
