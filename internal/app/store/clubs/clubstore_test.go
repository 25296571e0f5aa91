package clubstore_test

import (
	"testing"

	clubstore "github.com/buzzboard/buzzboard/internal/app/store/clubs"
	"github.com/buzzboard/buzzboard/internal/app/system/indexes"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"github.com/buzzboard/buzzboard/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestStore_Create_SeedsOwnerAsMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	club, err := store.Create(ctx, models.Club{
		Name:        "Robotics Club",
		CollegeName: "Test College",
		Address:     "1 Test Way",
		Owner:       owner,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !club.HasMember(owner) {
		t.Error("expected owner to be seeded into members")
	}
	if club.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("index setup failed: %v", err)
	}

	owner := primitive.NewObjectID()
	if _, err := store.Create(ctx, models.Club{Name: "Chess Club", CollegeName: "TC", Address: "1 Test Way", Owner: owner}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := store.Create(ctx, models.Club{Name: "Chess Club", CollegeName: "TC", Address: "2 Test Way", Owner: primitive.NewObjectID()})
	if err != clubstore.ErrDuplicateClubName {
		t.Errorf("expected ErrDuplicateClubName, got %v", err)
	}
}

func TestStore_SubmitJoinRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateAdmin(ctx, "Owner", "owner@test.com")
	club := fx.CreateClub(ctx, "Hiking Club", owner.ID)
	requester := primitive.NewObjectID()

	req, err := store.SubmitJoinRequest(ctx, club.ID, requester)
	if err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}
	if req.Status != models.RequestPending {
		t.Errorf("status: got %q, want %q", req.Status, models.RequestPending)
	}
	if req.User != requester {
		t.Errorf("user: got %v, want %v", req.User, requester)
	}

	// The request must be visible through the canonical derivation.
	loaded, err := store.GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	pending, ok := loaded.PendingRequest(requester)
	if !ok {
		t.Fatal("expected a pending request for the requester")
	}
	if pending.ID != req.ID {
		t.Errorf("pending request id: got %v, want %v", pending.ID, req.ID)
	}
}

func TestStore_SubmitJoinRequest_DoubleJoinConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateAdmin(ctx, "Owner", "owner@test.com")
	club := fx.CreateClub(ctx, "Hiking Club", owner.ID)
	requester := primitive.NewObjectID()

	if _, err := store.SubmitJoinRequest(ctx, club.ID, requester); err != nil {
		t.Fatalf("first SubmitJoinRequest failed: %v", err)
	}
	if _, err := store.SubmitJoinRequest(ctx, club.ID, requester); err != clubstore.ErrRequestPending {
		t.Errorf("expected ErrRequestPending, got %v", err)
	}

	// Still exactly one request on the document.
	loaded, err := store.GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(loaded.JoinRequests) != 1 {
		t.Errorf("join requests: got %d, want 1", len(loaded.JoinRequests))
	}
}

func TestStore_SubmitJoinRequest_AlreadyMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateAdmin(ctx, "Owner", "owner@test.com")
	club := fx.CreateClub(ctx, "Hiking Club", owner.ID)

	// The owner is a member via seeding.
	if _, err := store.SubmitJoinRequest(ctx, club.ID, owner.ID); err != clubstore.ErrAlreadyMember {
		t.Errorf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestStore_ApproveJoinRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateAdmin(ctx, "Owner", "owner@test.com")
	club := fx.CreateClub(ctx, "Hiking Club", owner.ID)
	requester := primitive.NewObjectID()

	req, err := store.SubmitJoinRequest(ctx, club.ID, requester)
	if err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}

	if err := store.ApproveJoinRequest(ctx, club.ID, req.ID, requester); err != nil {
		t.Fatalf("ApproveJoinRequest failed: %v", err)
	}

	loaded, err := store.GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !loaded.HasMember(requester) {
		t.Error("expected requester to be a member after approval")
	}
	got, ok := loaded.RequestByID(req.ID)
	if !ok {
		t.Fatal("request disappeared after approval")
	}
	if got.Status != models.RequestApproved {
		t.Errorf("status: got %q, want %q", got.Status, models.RequestApproved)
	}
	if _, pending := loaded.PendingRequest(requester); pending {
		t.Error("no pending request should remain after approval")
	}
}

func TestStore_ApproveJoinRequest_DoubleApproval(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateAdmin(ctx, "Owner", "owner@test.com")
	club := fx.CreateClub(ctx, "Hiking Club", owner.ID)
	requester := primitive.NewObjectID()

	req, err := store.SubmitJoinRequest(ctx, club.ID, requester)
	if err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}
	if err := store.ApproveJoinRequest(ctx, club.ID, req.ID, requester); err != nil {
		t.Fatalf("first ApproveJoinRequest failed: %v", err)
	}

	if err := store.ApproveJoinRequest(ctx, club.ID, req.ID, requester); err != clubstore.ErrRequestNotPending {
		t.Errorf("expected ErrRequestNotPending, got %v", err)
	}

	// The member set must not grow.
	loaded, err := store.GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	count := 0
	for _, m := range loaded.Members {
		if m == requester {
			count++
		}
	}
	if count != 1 {
		t.Errorf("requester appears %d times in members, want 1", count)
	}
}

func TestStore_RejectJoinRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateAdmin(ctx, "Owner", "owner@test.com")
	club := fx.CreateClub(ctx, "Hiking Club", owner.ID)
	requester := primitive.NewObjectID()

	req, err := store.SubmitJoinRequest(ctx, club.ID, requester)
	if err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}
	if err := store.RejectJoinRequest(ctx, club.ID, req.ID); err != nil {
		t.Fatalf("RejectJoinRequest failed: %v", err)
	}

	loaded, err := store.GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if loaded.HasMember(requester) {
		t.Error("rejection must not add the requester to members")
	}
	got, _ := loaded.RequestByID(req.ID)
	if got.Status != models.RequestRejected {
		t.Errorf("status: got %q, want %q", got.Status, models.RequestRejected)
	}

	// Rejection is terminal for the request, not for the user: a fresh
	// request is allowed and history keeps both entries.
	fresh, err := store.SubmitJoinRequest(ctx, club.ID, requester)
	if err != nil {
		t.Fatalf("fresh SubmitJoinRequest failed: %v", err)
	}
	if fresh.ID == req.ID {
		t.Error("fresh request must be a new entry")
	}
	loaded, err = store.GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(loaded.JoinRequests) != 2 {
		t.Errorf("join requests: got %d, want 2", len(loaded.JoinRequests))
	}

	// Approving the rejected entry later must fail.
	if err := store.ApproveJoinRequest(ctx, club.ID, req.ID, requester); err != clubstore.ErrRequestNotPending {
		t.Errorf("expected ErrRequestNotPending for terminal request, got %v", err)
	}
}

func TestStore_ListByRequester(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateAdmin(ctx, "Owner", "owner@test.com")
	clubA := fx.CreateClub(ctx, "Club A", owner.ID)
	clubB := fx.CreateClub(ctx, "Club B", owner.ID)
	fx.CreateClub(ctx, "Club C", owner.ID)
	requester := primitive.NewObjectID()

	if _, err := store.SubmitJoinRequest(ctx, clubA.ID, requester); err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}
	if _, err := store.SubmitJoinRequest(ctx, clubB.ID, requester); err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}

	clubs, err := store.ListByRequester(ctx, requester)
	if err != nil {
		t.Fatalf("ListByRequester failed: %v", err)
	}
	if len(clubs) != 2 {
		t.Errorf("clubs with requests: got %d, want 2", len(clubs))
	}
}
