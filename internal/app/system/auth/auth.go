// Package auth issues and verifies the bearer tokens that authenticate
// API requests, and provides the middleware that loads the token's
// account into the request context.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Claims is the JWT payload. Role and profile status are snapshots from
// token issue time; middleware that must see fresh values (the onboarding
// gate) re-reads the user document instead of trusting these.
type Claims struct {
	UserID        string `json:"userId"`
	Role          string `json:"role"`
	ProfileStatus string `json:"profileStatus"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given account, valid for ttl.
func Issue(userID primitive.ObjectID, role, profileStatus, issuer, key string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:        userID.Hex(),
		Role:          role,
		ProfileStatus: profileStatus,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
}

// Parse validates a token signed with HS256 and returns its claims.
func Parse(tokenStr, key, issuer string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(key), nil
	})
	if err != nil {
		return Claims{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if issuer != "" && claims.Issuer != issuer {
		return Claims{}, errors.New("issuer mismatch")
	}
	return *claims, nil
}
