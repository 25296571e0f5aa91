// Package accounts serves registration, login, and the caller's own
// profile, including the onboarding-sensitive role/profile updates.
package accounts

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/buzzboard/buzzboard/internal/app/store/users"
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/buzzboard/buzzboard/internal/app/system/httpjson"
	"github.com/buzzboard/buzzboard/internal/app/system/mongoerr"
	"github.com/buzzboard/buzzboard/internal/app/system/timeouts"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Users    *userstore.Store
	TokenKey string
	Issuer   string
	TokenTTL time.Duration
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, tokenKey, issuer string, tokenTTL time.Duration, logger *zap.Logger) *Handler {
	return &Handler{Users: users, TokenKey: tokenKey, Issuer: issuer, TokenTTL: tokenTTL, Log: logger}
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (h *Handler) issue(u *models.User) (string, error) {
	return auth.Issue(u.ID, u.Role, u.ProfileStatus, h.Issuer, h.TokenKey, h.TokenTTL)
}

type registerRequest struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Bio      string           `json:"bio"`
	Location *models.GeoPoint `json:"location"`
}

// HandleRegister creates an account in the role-unset onboarding state
// and returns a token plus the full user so the client knows where the
// onboarding flow stands.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Register(ctx, models.User{
		Name:     req.Name,
		Email:    req.Email,
		Bio:      req.Bio,
		Location: req.Location,
	}, req.Password)
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httpjson.Error(w, http.StatusBadRequest, "Email already in use")
			return
		}
		h.Log.Error("register failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	token, err := h.issue(&user)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	httpjson.Created(w, tokenResponse{Token: token, User: user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and returns a token plus the user.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if err == userstore.ErrInvalidCredentials {
			httpjson.Error(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		h.Log.Error("login failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := h.issue(user)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}
	httpjson.OK(w, tokenResponse{Token: token, User: *user})
}

// HandleMe returns the caller's own profile.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		if mongoerr.IsNotFound(err) {
			httpjson.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("me lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	httpjson.OK(w, user)
}

type updateMeRequest struct {
	Name          *string          `json:"name"`
	Bio           *string          `json:"bio"`
	Phone         *string          `json:"phone"`
	Gender        *string          `json:"gender"`
	College       *string          `json:"college"`
	Course        *string          `json:"course"`
	Year          *string          `json:"year"`
	Interests     []string         `json:"interests"`
	ResumeURL     *string          `json:"resumeUrl"`
	Address       *string          `json:"address"`
	AvatarURL     *string          `json:"avatarUrl"`
	LogoURL       *string          `json:"logoUrl"`
	ProfileStatus *string          `json:"profileStatus"`
	Role          *string          `json:"role"`
	Location      *models.GeoPoint `json:"location"`
}

// HandleUpdateMe applies a whitelisted profile update. Role changes are
// only honored while the stored profile status is INCOMPLETE; setting
// profileStatus to COMPLETE finishes the user onboarding path.
func (h *Handler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req updateMeRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{
		Name:          req.Name,
		Bio:           req.Bio,
		Phone:         req.Phone,
		Gender:        req.Gender,
		College:       req.College,
		Course:        req.Course,
		Year:          req.Year,
		Interests:     req.Interests,
		ResumeURL:     req.ResumeURL,
		Address:       req.Address,
		AvatarURL:     req.AvatarURL,
		LogoURL:       req.LogoURL,
		ProfileStatus: req.ProfileStatus,
		Role:          req.Role,
		Location:      req.Location,
	})
	if err != nil {
		h.Log.Error("profile update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Update failed")
		return
	}
	httpjson.OK(w, user)
}
