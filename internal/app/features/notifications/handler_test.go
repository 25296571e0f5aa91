package notifications_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/buzzboard/buzzboard/internal/app/features/notifications"
	notificationstore "github.com/buzzboard/buzzboard/internal/app/store/notifications"
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"github.com/buzzboard/buzzboard/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	testKey    = "test-signing-key"
	testIssuer = "buzzboard-test"
)

// stubFetcher returns fixed role/profileStatus for any account.
type stubFetcher struct {
	role   string
	status string
}

func (f stubFetcher) FetchAuthInfo(ctx context.Context, id primitive.ObjectID) (string, string, error) {
	return f.role, f.status, nil
}

func TestRoutes_BlockIncompleteProfiles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := notifications.NewHandler(notificationstore.New(db), zap.NewNop())
	tokens := auth.NewTokenAuth(testKey, testIssuer, stubFetcher{"user", "INCOMPLETE"}, zap.NewNop())
	router := notifications.Routes(h, tokens)

	tok, err := auth.Issue(primitive.NewObjectID(), "user", "INCOMPLETE", testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusForbidden, rec.Body.String())
	}
	var body struct {
		Message    string `json:"message"`
		RedirectTo string `json:"redirectTo"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if body.RedirectTo != "/onboarding/role" {
		t.Errorf("redirectTo: got %q, want %q", body.RedirectTo, "/onboarding/role")
	}
}

func TestHandleMine(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	h := notifications.NewHandler(store, zap.NewNop())
	tokens := auth.NewTokenAuth(testKey, testIssuer, stubFetcher{"user", "COMPLETE"}, zap.NewNop())
	router := notifications.Routes(h, tokens)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	if err := store.Notify(ctx, userID, models.NotifyJoinApproved, "Your request to join Chess Club was approved", nil); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	tok, err := auth.Issue(userID, "user", "COMPLETE", testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var list []models.Notification
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("notifications: got %d, want 1", len(list))
	}
	if list[0].Type != models.NotifyJoinApproved {
		t.Errorf("type: got %q, want %q", list[0].Type, models.NotifyJoinApproved)
	}
}
