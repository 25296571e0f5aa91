package accounts_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	accounts "github.com/buzzboard/buzzboard/internal/app/features/accounts"
	userstore "github.com/buzzboard/buzzboard/internal/app/store/users"
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/buzzboard/buzzboard/internal/app/system/indexes"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"github.com/buzzboard/buzzboard/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	testKey    = "test-signing-key"
	testIssuer = "buzzboard-test"
)

func newRouter(t *testing.T, db *mongo.Database) chi.Router {
	t.Helper()
	users := userstore.New(db, bcrypt.MinCost)
	tokens := auth.NewTokenAuth(testKey, testIssuer, users, zap.NewNop())
	h := accounts.NewHandler(users, testKey, testIssuer, time.Hour, zap.NewNop())

	r := chi.NewRouter()
	r.Mount("/auth", accounts.Routes(h, tokens))
	return r
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func TestRegisterLoginMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	// Register.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/auth/register", map[string]string{
		"name":     "Jamie Park",
		"email":    "jamie@test.com",
		"password": "hunter22",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var reg tokenResponse
	testutil.DecodeJSON(t, rec, &reg)
	if reg.Token == "" {
		t.Fatal("register must return a token")
	}
	if reg.User.ProfileStatus != models.ProfileIncomplete {
		t.Errorf("profileStatus: got %q, want %q", reg.User.ProfileStatus, models.ProfileIncomplete)
	}
	if reg.User.Role != models.RoleUser {
		t.Errorf("role: got %q, want %q", reg.User.Role, models.RoleUser)
	}

	// Login.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/auth/login", map[string]string{
		"email":    "jamie@test.com",
		"password": "hunter22",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var login tokenResponse
	testutil.DecodeJSON(t, rec, &login)

	// Me with the bearer token from login.
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var me models.User
	testutil.DecodeJSON(t, rec, &me)
	if me.Email != "jamie@test.com" {
		t.Errorf("me email: got %q, want %q", me.Email, "jamie@test.com")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	// Duplicate detection rides on the unique email index.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("index setup failed: %v", err)
	}

	body := map[string]string{"name": "A", "email": "dup@test.com", "password": "pw"}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/auth/register", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register status: got %d, want %d", rec.Code, http.StatusCreated)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/auth/register", body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var errBody struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &errBody)
	if errBody.Message != "Email already in use" {
		t.Errorf("message: got %q, want %q", errBody.Message, "Email already in use")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/auth/login", map[string]string{
		"email":    "nobody@test.com",
		"password": "whatever",
	}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var errBody struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &errBody)
	if errBody.Message != "Invalid credentials" {
		t.Errorf("message: got %q, want %q", errBody.Message, "Invalid credentials")
	}
}

func TestUpdateMe_CompletesUserOnboarding(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/auth/register", map[string]string{
		"name": "Jamie", "email": "jamie@test.com", "password": "pw",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status: got %d, want %d", rec.Code, http.StatusCreated)
	}
	var reg tokenResponse
	testutil.DecodeJSON(t, rec, &reg)

	req := testutil.NewJSONRequest(t, "PUT", "/auth/me", map[string]any{
		"role":          "user",
		"bio":           "hello",
		"profileStatus": "COMPLETE",
	})
	req.Header.Set("Authorization", "Bearer "+reg.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var updated models.User
	testutil.DecodeJSON(t, rec, &updated)
	if updated.ProfileStatus != models.ProfileComplete {
		t.Errorf("profileStatus: got %q, want %q", updated.ProfileStatus, models.ProfileComplete)
	}
	if updated.Bio != "hello" {
		t.Errorf("bio: got %q, want %q", updated.Bio, "hello")
	}
}
