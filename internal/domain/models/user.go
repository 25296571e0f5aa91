package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile status values gating full application access.
const (
	ProfileIncomplete = "INCOMPLETE"
	ProfileComplete   = "COMPLETE"
)

// Role values. Every account starts as "user"; "admin" is granted when the
// account creates a club.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account: regular users and club admins.
//
// NOTE:
//   - Password is the bcrypt hash; it is never serialized to JSON.
//   - JoinedClubs is a back-reference maintained by the membership workflow.
//     The authoritative member list lives on the Club document.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`

	Bio       string   `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL string   `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	LogoURL   string   `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	Phone     string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender    string   `bson:"gender,omitempty" json:"gender,omitempty"`
	College   string   `bson:"college,omitempty" json:"college,omitempty"`
	Course    string   `bson:"course,omitempty" json:"course,omitempty"`
	Year      string   `bson:"year,omitempty" json:"year,omitempty"`
	Interests []string `bson:"interests,omitempty" json:"interests,omitempty"`
	ResumeURL string   `bson:"resumeUrl,omitempty" json:"resumeUrl,omitempty"`
	Address   string   `bson:"address,omitempty" json:"address,omitempty"`

	ProfileStatus string `bson:"profileStatus" json:"profileStatus"`
	Role          string `bson:"role" json:"role"`

	Location    *GeoPoint            `bson:"location,omitempty" json:"location,omitempty"`
	JoinedClubs []primitive.ObjectID `bson:"joinedClubs,omitempty" json:"joinedClubs"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// GeoPoint is a GeoJSON point: coordinates are [lng, lat].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Valid reports whether the point is a well-formed GeoJSON Point.
func (p *GeoPoint) Valid() bool {
	return p != nil && p.Type == "Point" && len(p.Coordinates) == 2
}
