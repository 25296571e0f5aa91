package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/buzzboard/buzzboard/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AuthUser is what we inject into r.Context() for authenticated requests.
type AuthUser struct {
	ID            primitive.ObjectID
	Role          string
	ProfileStatus string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user and a found flag.
func CurrentUser(r *http.Request) (*AuthUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*AuthUser)
	return u, ok
}

func withUser(r *http.Request, u *AuthUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user into the request context, bypassing token
// verification. For handler tests only.
func WithTestUser(r *http.Request, u *AuthUser) *http.Request {
	return withUser(r, u)
}

// UserFetcher loads fresh auth-relevant fields for an account. The
// onboarding gate uses it so profile completion takes effect immediately,
// without waiting for the client to obtain a new token.
type UserFetcher interface {
	FetchAuthInfo(ctx context.Context, id primitive.ObjectID) (role, profileStatus string, err error)
}

// TokenAuth holds token verification settings and the middleware built
// from them.
type TokenAuth struct {
	Key     string
	Issuer  string
	Fetcher UserFetcher
	Log     *zap.Logger
}

// NewTokenAuth constructs a TokenAuth middleware provider.
func NewTokenAuth(key, issuer string, fetcher UserFetcher, logger *zap.Logger) *TokenAuth {
	return &TokenAuth{Key: key, Issuer: issuer, Fetcher: fetcher, Log: logger}
}

// bearerToken extracts the token from the Authorization header, or "".
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("bearer "):])
}

// RequireAuth rejects requests without a valid bearer token and injects
// the token's account into context.
func (a *TokenAuth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerToken(r)
		if tok == "" {
			httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims, err := Parse(tok, a.Key, a.Issuer)
		if err != nil {
			httpjson.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		uid, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			httpjson.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, withUser(r, &AuthUser{
			ID:            uid,
			Role:          claims.Role,
			ProfileStatus: claims.ProfileStatus,
		}))
	})
}

// OptionalAuth injects the account when a valid token is present and
// continues anonymously otherwise. Used by public listings that support
// owner=me / joined=me filters.
func (a *TokenAuth) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := bearerToken(r); tok != "" {
			if claims, err := Parse(tok, a.Key, a.Issuer); err == nil {
				if uid, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
					r = withUser(r, &AuthUser{
						ID:            uid,
						Role:          claims.Role,
						ProfileStatus: claims.ProfileStatus,
					})
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOnboarded gates protected resources until the account's stored
// profile status is COMPLETE. The status is re-read through the Fetcher
// rather than trusted from the token. While incomplete, the response is
// 403 with a redirect hint the client follows to the onboarding flow.
//
// Must run after RequireAuth.
func (a *TokenAuth) RequireOnboarded(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		role, profileStatus, err := a.Fetcher.FetchAuthInfo(r.Context(), u.ID)
		if err != nil {
			a.Log.Warn("onboarding gate: user lookup failed", zap.Error(err))
			httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		u.Role = role
		u.ProfileStatus = profileStatus

		if profileStatus != "COMPLETE" {
			httpjson.JSON(w, http.StatusForbidden, map[string]string{
				"message":    "profile incomplete",
				"redirectTo": "/onboarding/role",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
