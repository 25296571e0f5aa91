// Package volunteers serves volunteer signups for events and the club
// owner's review of them. Re-applying for the same event resets the
// signup to pending rather than creating a second row.
package volunteers

import (
	"context"
	"net/http"

	"github.com/buzzboard/buzzboard/internal/app/store/clubs"
	"github.com/buzzboard/buzzboard/internal/app/store/events"
	"github.com/buzzboard/buzzboard/internal/app/store/volunteers"
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/buzzboard/buzzboard/internal/app/system/httpjson"
	"github.com/buzzboard/buzzboard/internal/app/system/mongoerr"
	"github.com/buzzboard/buzzboard/internal/app/system/timeouts"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Volunteers *volunteerstore.Store
	Events     *eventstore.Store
	Clubs      *clubstore.Store
	Log        *zap.Logger
}

func NewHandler(volunteers *volunteerstore.Store, events *eventstore.Store, clubs *clubstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Volunteers: volunteers, Events: events, Clubs: clubs, Log: logger}
}

type applyRequest struct {
	EventID string `json:"eventId"`
	Role    string `json:"role"`
}

// HandleApply serves POST /volunteers.
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req applyRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Events.GetByID(ctx, eventID); err != nil {
		if mongoerr.IsNotFound(err) {
			httpjson.Error(w, http.StatusNotFound, "Event not found")
			return
		}
		h.Log.Error("event lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	v, err := h.Volunteers.Apply(ctx, me.ID, eventID, req.Role)
	if err != nil {
		h.Log.Error("volunteer apply failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not apply")
		return
	}
	httpjson.Created(w, v)
}

// HandleList serves GET /volunteers?eventId=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var eventID *primitive.ObjectID
	if raw := r.URL.Query().Get("eventId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Invalid event id")
			return
		}
		eventID = &id
	}

	list, err := h.Volunteers.List(ctx, eventID)
	if err != nil {
		h.Log.Error("volunteer list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not list volunteers")
		return
	}
	if list == nil {
		list = []models.Volunteer{}
	}
	httpjson.OK(w, list)
}

type statusRequest struct {
	Status string `json:"status"`
}

// HandleSetStatus serves PATCH /volunteers/{id}. Only the owner of the
// club behind the volunteer's event may review signups.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid volunteer id")
		return
	}
	var req statusRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	switch req.Status {
	case models.VolunteerPending, models.VolunteerApproved, models.VolunteerRejected:
	default:
		httpjson.Error(w, http.StatusBadRequest, "status must be pending, approved or rejected")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	v, err := h.Volunteers.GetByID(ctx, id)
	if err != nil {
		if mongoerr.IsNotFound(err) {
			httpjson.Error(w, http.StatusNotFound, "Volunteer not found")
			return
		}
		h.Log.Error("volunteer lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	event, err := h.Events.GetByID(ctx, v.Event)
	if err != nil {
		h.Log.Error("event lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	club, err := h.Clubs.GetByID(ctx, event.Club)
	if err != nil {
		h.Log.Error("club lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	if club.Owner != me.ID {
		httpjson.Error(w, http.StatusForbidden, "Only the club owner can review volunteers")
		return
	}

	updated, err := h.Volunteers.SetStatus(ctx, id, req.Status)
	if err != nil {
		h.Log.Error("volunteer status update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update status")
		return
	}
	httpjson.OK(w, updated)
}
