package volunteerstore_test

import (
	"testing"

	volunteerstore "github.com/buzzboard/buzzboard/internal/app/store/volunteers"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"github.com/buzzboard/buzzboard/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Apply_ReapplyResetsToPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := primitive.NewObjectID()
	event := primitive.NewObjectID()

	first, err := store.Apply(ctx, user, event, "usher")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if first.Status != models.VolunteerPending {
		t.Errorf("status: got %q, want %q", first.Status, models.VolunteerPending)
	}

	if _, err := store.SetStatus(ctx, first.ID, models.VolunteerRejected); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	second, err := store.Apply(ctx, user, event, "stage crew")
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if second.ID != first.ID {
		t.Error("re-applying must reuse the existing document")
	}
	if second.Status != models.VolunteerPending {
		t.Errorf("status after re-apply: got %q, want %q", second.Status, models.VolunteerPending)
	}
	if second.Role != "stage crew" {
		t.Errorf("role: got %q, want %q", second.Role, "stage crew")
	}
}

func TestStore_List_ScopedToEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	eventA := primitive.NewObjectID()
	eventB := primitive.NewObjectID()

	if _, err := store.Apply(ctx, primitive.NewObjectID(), eventA, ""); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, err := store.Apply(ctx, primitive.NewObjectID(), eventA, ""); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, err := store.Apply(ctx, primitive.NewObjectID(), eventB, ""); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	scoped, err := store.List(ctx, &eventA)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(scoped) != 2 {
		t.Errorf("volunteers for event A: got %d, want 2", len(scoped))
	}

	all, err := store.List(ctx, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all volunteers: got %d, want 3", len(all))
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	v, err := store.Apply(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	updated, err := store.SetStatus(ctx, v.ID, models.VolunteerApproved)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if updated.Status != models.VolunteerApproved {
		t.Errorf("status: got %q, want %q", updated.Status, models.VolunteerApproved)
	}
}
