// internal/domain/models/club.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Join request status values. Transitions out of pending are terminal.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Club is a community with exactly one owning account.
//
// NOTE:
//   - Members and joinRequests are embedded on the club document so each
//     membership transition is a single atomic update.
//   - joinRequests are append-only history; status flips in place but
//     entries are never removed.
type Club struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CollegeName string             `bson:"collegeName" json:"collegeName"`
	Address     string             `bson:"address" json:"address"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	LogoURL     string             `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`

	Members      []primitive.ObjectID `bson:"members" json:"members"`
	JoinRequests []JoinRequest        `bson:"joinRequests" json:"joinRequests"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// JoinRequest records one account's intent to join the club.
type JoinRequest struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Status      string             `bson:"status" json:"status"`
	RequestedAt time.Time          `bson:"requestedAt" json:"requestedAt"`
}

// HasMember reports whether userID is in the member set.
func (c *Club) HasMember(userID primitive.ObjectID) bool {
	for _, m := range c.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// PendingRequest returns the first pending join request for userID, if any.
// "First found" is the canonical derivation: no denormalized status field
// exists, so callers must not assume any other ordering.
func (c *Club) PendingRequest(userID primitive.ObjectID) (JoinRequest, bool) {
	for _, r := range c.JoinRequests {
		if r.User == userID && r.Status == RequestPending {
			return r, true
		}
	}
	return JoinRequest{}, false
}

// RequestByID returns the join request with the given id, if present.
func (c *Club) RequestByID(reqID primitive.ObjectID) (JoinRequest, bool) {
	for _, r := range c.JoinRequests {
		if r.ID == reqID {
			return r, true
		}
	}
	return JoinRequest{}, false
}
