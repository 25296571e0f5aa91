package rsvpstore_test

import (
	"testing"

	rsvpstore "github.com/buzzboard/buzzboard/internal/app/store/rsvps"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"github.com/buzzboard/buzzboard/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Upsert_SingleRowPerPair(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rsvpstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := primitive.NewObjectID()
	event := primitive.NewObjectID()

	first, err := store.Upsert(ctx, user, event, "")
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if first.Status != models.RSVPGoing {
		t.Errorf("default status: got %q, want %q", first.Status, models.RSVPGoing)
	}

	second, err := store.Upsert(ctx, user, event, models.RSVPCancelled)
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Error("re-RSVP must update the existing document, not create a new one")
	}
	if second.Status != models.RSVPCancelled {
		t.Errorf("status: got %q, want %q", second.Status, models.RSVPCancelled)
	}

	count, err := db.Collection("rsvps").CountDocuments(ctx, bson.M{"user": user, "event": event})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("documents for pair: got %d, want 1", count)
	}
}

func TestStore_Cancel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rsvpstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := primitive.NewObjectID()
	event := primitive.NewObjectID()

	if _, err := store.Upsert(ctx, user, event, models.RSVPGoing); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Cancel(ctx, user, event); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	list, err := store.ListByUser(ctx, user)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("rsvps: got %d, want 1", len(list))
	}
	if list[0].Status != models.RSVPCancelled {
		t.Errorf("status: got %q, want %q", list[0].Status, models.RSVPCancelled)
	}

	// Re-RSVP after cancelling flips the same row back.
	again, err := store.Upsert(ctx, user, event, "")
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if again.Status != models.RSVPGoing {
		t.Errorf("status: got %q, want %q", again.Status, models.RSVPGoing)
	}
}

func TestStore_Cancel_MissingIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rsvpstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Cancel(ctx, primitive.NewObjectID(), primitive.NewObjectID()); err != nil {
		t.Fatalf("Cancel of a missing RSVP must not error, got %v", err)
	}
}
