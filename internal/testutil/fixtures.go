package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/buzzboard/buzzboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given role and profile status. The
// password is always "password123".
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role, profileStatus string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Email:         email,
		Password:      string(hash),
		Role:          role,
		ProfileStatus: profileStatus,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateOnboardedUser inserts a regular user with a completed profile.
func (f *Fixtures) CreateOnboardedUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleUser, models.ProfileComplete)
}

// CreateAdmin inserts an onboarded admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleAdmin, models.ProfileComplete)
}

// CreateClub inserts a club owned by ownerID, with the owner as its
// only member.
func (f *Fixtures) CreateClub(ctx context.Context, name string, ownerID primitive.ObjectID) models.Club {
	f.t.Helper()

	now := time.Now().UTC()
	club := models.Club{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: "Test club description",
		CollegeName: "Test College",
		Address:     "1 Test Way, Test City",
		Owner:       ownerID,
		Members:     []primitive.ObjectID{ownerID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("clubs").InsertOne(ctx, club); err != nil {
		f.t.Fatalf("failed to create test club: %v", err)
	}
	return club
}

// CreateEvent inserts an upcoming event for the club, starting 24h from
// now, located in Test City.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, clubID, createdBy primitive.ObjectID) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	event := models.Event{
		ID:          primitive.NewObjectID(),
		Club:        clubID,
		Title:       title,
		Description: "Test event description",
		StartAt:     now.Add(24 * time.Hour),
		Location: models.EventLocation{
			Type:        "Point",
			Coordinates: []float64{-92.3341, 38.9517},
			Address:     "1 Test Way",
			City:        "Test City",
			State:       "MO",
		},
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, event); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return event
}
