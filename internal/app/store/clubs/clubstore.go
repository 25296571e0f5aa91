// internal/app/store/clubs/clubstore.go
package clubstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/buzzboard/buzzboard/internal/app/system/mongoerr"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("clubs")}
}

var (
	ErrDuplicateClubName = errors.New("a club with this name already exists")

	// Membership workflow conflicts. Each transition is a single
	// conditional update on the club document; these errors surface when
	// the precondition filter matched nothing.
	ErrAlreadyMember     = errors.New("already a member of this club")
	ErrRequestPending    = errors.New("a join request is already pending")
	ErrRequestNotPending = errors.New("join request is not pending")
)

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Club, error) {
	var c models.Club
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Club{}, err
	}
	return c, nil
}

// Create inserts a new club with the owner seeded into the member set.
func (s *Store) Create(ctx context.Context, c models.Club) (models.Club, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.Name = strings.TrimSpace(c.Name)
	if c.Members == nil {
		c.Members = []primitive.ObjectID{c.Owner}
	}
	if c.JoinRequests == nil {
		c.JoinRequests = []models.JoinRequest{}
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if mongoerr.IsDup(err) {
			return models.Club{}, ErrDuplicateClubName
		}
		return models.Club{}, err
	}
	return c, nil
}

// Filter narrows List results. Zero values mean "no filter".
type Filter struct {
	Query  string              // regex over name/description/collegeName/address
	City   string              // regex over address
	Owner  *primitive.ObjectID // clubs owned by this account
	Joined *primitive.ObjectID // clubs whose member set contains this account
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.Club, error) {
	find := bson.M{}

	if q := strings.TrimSpace(f.Query); q != "" {
		rx := primitive.Regex{Pattern: q, Options: "i"}
		find["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"description": rx},
			bson.M{"collegeName": rx},
			bson.M{"address": rx},
		}
	}
	if city := strings.TrimSpace(f.City); city != "" {
		find["address"] = primitive.Regex{Pattern: city, Options: "i"}
	}
	if f.Owner != nil {
		find["owner"] = *f.Owner
	}
	if f.Joined != nil {
		find["members"] = *f.Joined
	}

	cur, err := s.c.Find(ctx, find, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var clubs []models.Club
	if err := cur.All(ctx, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// SubmitJoinRequest appends a pending request for userID, atomically
// enforcing the two preconditions: the user is not a member and has no
// pending request on this club. Returns the new request on success.
func (s *Store) SubmitJoinRequest(ctx context.Context, clubID, userID primitive.ObjectID) (models.JoinRequest, error) {
	req := models.JoinRequest{
		ID:          primitive.NewObjectID(),
		User:        userID,
		Status:      models.RequestPending,
		RequestedAt: time.Now().UTC(),
	}

	filter := bson.M{
		"_id":     clubID,
		"members": bson.M{"$ne": userID},
		"joinRequests": bson.M{"$not": bson.M{"$elemMatch": bson.M{
			"user":   userID,
			"status": models.RequestPending,
		}}},
	}
	update := bson.M{
		"$push": bson.M{"joinRequests": req},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.JoinRequest{}, err
	}
	if res.MatchedCount > 0 {
		return req, nil
	}

	// Nothing matched: load the club to tell the caller which
	// precondition failed.
	club, err := s.GetByID(ctx, clubID)
	if err != nil {
		return models.JoinRequest{}, err
	}
	if club.HasMember(userID) {
		return models.JoinRequest{}, ErrAlreadyMember
	}
	// Either a pending request exists, or a concurrent writer slipped one
	// in between our update and the reload. Same answer either way.
	return models.JoinRequest{}, ErrRequestPending
}

// ApproveJoinRequest flips the request to approved and adds the
// requester to the member set in one atomic update. Only a request that
// is still pending matches; double approval returns ErrRequestNotPending.
// The caller supplies the requester (resolved from the loaded club) so
// the member add can ride on the same write.
func (s *Store) ApproveJoinRequest(ctx context.Context, clubID, reqID, requester primitive.ObjectID) error {
	filter := bson.M{
		"_id":          clubID,
		"joinRequests": bson.M{"$elemMatch": bson.M{"_id": reqID, "status": models.RequestPending}},
	}
	update := bson.M{
		"$set": bson.M{
			"joinRequests.$.status": models.RequestApproved,
			"updatedAt":             time.Now().UTC(),
		},
		"$addToSet": bson.M{"members": requester},
	}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRequestNotPending
	}
	return nil
}

// RejectJoinRequest flips the request to rejected. No membership or
// notification side effect. Also used when the requester withdraws their
// own request.
func (s *Store) RejectJoinRequest(ctx context.Context, clubID, reqID primitive.ObjectID) error {
	filter := bson.M{
		"_id":          clubID,
		"joinRequests": bson.M{"$elemMatch": bson.M{"_id": reqID, "status": models.RequestPending}},
	}
	update := bson.M{
		"$set": bson.M{
			"joinRequests.$.status": models.RequestRejected,
			"updatedAt":             time.Now().UTC(),
		},
	}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRequestNotPending
	}
	return nil
}

// ListByRequester returns the clubs holding at least one join request
// from userID. Used to report the caller's request history across clubs.
func (s *Store) ListByRequester(ctx context.Context, userID primitive.ObjectID) ([]models.Club, error) {
	cur, err := s.c.Find(ctx, bson.M{"joinRequests.user": userID},
		options.Find().SetProjection(bson.M{"name": 1, "joinRequests": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var clubs []models.Club
	if err := cur.All(ctx, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}
