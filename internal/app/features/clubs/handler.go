// Package clubs serves club listing/creation and hosts the club
// membership workflow: join requests, owner review, and the resulting
// membership and notification side effects.
package clubs

import (
	"context"
	"net/http"
	"strings"

	"github.com/buzzboard/buzzboard/internal/app/store/clubs"
	"github.com/buzzboard/buzzboard/internal/app/store/notifications"
	"github.com/buzzboard/buzzboard/internal/app/store/users"
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/buzzboard/buzzboard/internal/app/system/httpjson"
	"github.com/buzzboard/buzzboard/internal/app/system/sanitize"
	"github.com/buzzboard/buzzboard/internal/app/system/timeouts"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Clubs         *clubstore.Store
	Users         *userstore.Store
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

func NewHandler(clubs *clubstore.Store, users *userstore.Store, notifications *notificationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Clubs: clubs, Users: users, Notifications: notifications, Log: logger}
}

// HandleList serves GET /clubs. Public; a bearer token, when present,
// enables the owner=me and joined=me filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f := clubstore.Filter{
		Query: r.URL.Query().Get("q"),
		City:  r.URL.Query().Get("city"),
	}

	me, authed := auth.CurrentUser(r)
	switch owner := strings.TrimSpace(r.URL.Query().Get("owner")); {
	case owner == "me" && authed:
		f.Owner = &me.ID
	case owner != "" && owner != "me":
		oid, err := primitive.ObjectIDFromHex(owner)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Invalid owner id")
			return
		}
		f.Owner = &oid
	}
	if r.URL.Query().Get("joined") == "me" && authed {
		f.Joined = &me.ID
	}

	clubs, err := h.Clubs.List(ctx, f)
	if err != nil {
		h.Log.Error("club list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not list clubs")
		return
	}
	if clubs == nil {
		clubs = []models.Club{}
	}
	httpjson.OK(w, clubs)
}

type createClubRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CollegeName string `json:"collegeName"`
	Address     string `json:"address"`
	LogoURL     string `json:"logoUrl"`
}

// HandleCreate serves POST /clubs. Creating a club is the admin
// onboarding path: the creator becomes the owner and first member, and
// a single follow-up write promotes them to admin with a complete
// profile (CompleteAdminOnboarding).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createClubRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.CollegeName) == "" || strings.TrimSpace(req.Address) == "" {
		httpjson.Error(w, http.StatusBadRequest, "name, collegeName and address are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	club, err := h.Clubs.Create(ctx, models.Club{
		Name:        req.Name,
		Description: sanitize.Text(req.Description),
		CollegeName: req.CollegeName,
		Address:     req.Address,
		Owner:       me.ID,
		LogoURL:     req.LogoURL,
		Members:     []primitive.ObjectID{me.ID},
	})
	if err != nil {
		if err == clubstore.ErrDuplicateClubName {
			httpjson.Error(w, http.StatusConflict, "A club with this name already exists")
			return
		}
		h.Log.Error("club create failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadRequest, "Could not create club")
		return
	}

	if err := h.Users.CompleteAdminOnboarding(ctx, me.ID, club.ID); err != nil {
		// The club exists; the creator's promotion is the second write of
		// the coupled pair. Surface the failure: without it the creator
		// stays gated out of their own club.
		h.Log.Error("admin onboarding completion failed",
			zap.String("club", club.ID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create club")
		return
	}

	httpjson.Created(w, club)
}

// HandleMembers serves GET /clubs/{id}/members. Owner only.
func (h *Handler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	club, ok := h.loadClub(ctx, w, r)
	if !ok {
		return
	}
	if club.Owner != me.ID {
		httpjson.Error(w, http.StatusForbidden, "Only the club owner can view members")
		return
	}

	members, err := h.Users.GetManyBrief(ctx, club.Members)
	if err != nil {
		h.Log.Error("member list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not list members")
		return
	}
	httpjson.OK(w, members)
}
