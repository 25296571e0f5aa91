// Package authz contains request-context role helpers.
package authz

import (
	"net/http"
	"strings"

	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's role (lowercased), Mongo ObjectID, and a
// found flag. ok=true means a valid, authenticated account.
func UserCtx(r *http.Request) (role string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.ID, true
}

// IsAdmin reports whether the caller has the admin role.
func IsAdmin(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == "admin"
}
