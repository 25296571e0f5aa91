package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	testKey    = "test-signing-key"
	testIssuer = "buzzboard-test"
)

func TestIssueAndParse(t *testing.T) {
	userID := primitive.NewObjectID()

	tok, err := auth.Issue(userID, "user", "INCOMPLETE", testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := auth.Parse(tok, testKey, testIssuer)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.UserID != userID.Hex() {
		t.Errorf("userId: got %q, want %q", claims.UserID, userID.Hex())
	}
	if claims.Role != "user" {
		t.Errorf("role: got %q, want %q", claims.Role, "user")
	}
	if claims.ProfileStatus != "INCOMPLETE" {
		t.Errorf("profileStatus: got %q, want %q", claims.ProfileStatus, "INCOMPLETE")
	}
}

func TestParse_WrongKey(t *testing.T) {
	tok, err := auth.Issue(primitive.NewObjectID(), "user", "COMPLETE", testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := auth.Parse(tok, "another-key", testIssuer); err == nil {
		t.Error("expected an error for a token signed with a different key")
	}
}

func TestParse_WrongIssuer(t *testing.T) {
	tok, err := auth.Issue(primitive.NewObjectID(), "user", "COMPLETE", "someone-else", testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := auth.Parse(tok, testKey, testIssuer); err == nil {
		t.Error("expected an issuer mismatch error")
	}
}

func TestParse_Expired(t *testing.T) {
	tok, err := auth.Issue(primitive.NewObjectID(), "user", "COMPLETE", testIssuer, testKey, -time.Minute)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := auth.Parse(tok, testKey, testIssuer); err == nil {
		t.Error("expected an expiry error")
	}
}

// stubFetcher returns fixed role/profileStatus for any account.
type stubFetcher struct {
	role   string
	status string
}

func (f stubFetcher) FetchAuthInfo(ctx context.Context, id primitive.ObjectID) (string, string, error) {
	return f.role, f.status, nil
}

func gateChain(fetcher auth.UserFetcher) (*auth.TokenAuth, http.Handler) {
	tokens := auth.NewTokenAuth(testKey, testIssuer, fetcher, zap.NewNop())
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return tokens, tokens.RequireAuth(tokens.RequireOnboarded(inner))
}

func TestRequireAuth_MissingToken(t *testing.T) {
	_, handler := gateChain(stubFetcher{"user", "COMPLETE"})

	req := httptest.NewRequest("GET", "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireOnboarded_IncompleteProfile(t *testing.T) {
	_, handler := gateChain(stubFetcher{"user", "INCOMPLETE"})

	tok, err := auth.Issue(primitive.NewObjectID(), "user", "INCOMPLETE", testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	var body struct {
		Message    string `json:"message"`
		RedirectTo string `json:"redirectTo"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Message != "profile incomplete" {
		t.Errorf("message: got %q, want %q", body.Message, "profile incomplete")
	}
	if body.RedirectTo != "/onboarding/role" {
		t.Errorf("redirectTo: got %q, want %q", body.RedirectTo, "/onboarding/role")
	}
}

func TestRequireOnboarded_StoredStatusWins(t *testing.T) {
	// The token still claims INCOMPLETE but the store says COMPLETE: the
	// gate must trust the store, letting the request through without a
	// token refresh.
	_, handler := gateChain(stubFetcher{"user", "COMPLETE"})

	tok, err := auth.Issue(primitive.NewObjectID(), "user", "INCOMPLETE", testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}
