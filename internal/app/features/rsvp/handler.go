// Package rsvp serves attendance: one RSVP row per (user, event),
// re-posting updates it in place, cancelling keeps the row with status
// cancelled so a later re-RSVP flips it back.
package rsvp

import (
	"context"
	"net/http"

	"github.com/buzzboard/buzzboard/internal/app/store/events"
	"github.com/buzzboard/buzzboard/internal/app/store/rsvps"
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
	RSVPs  *rsvpstore.Store
	Events *eventstore.Store
	Log    *zap.Logger
}

func NewHandler(rsvps *rsvpstore.Store, events *eventstore.Store, logger *zap.Logger) *Handler {
	return &Handler{RSVPs: rsvps, Events: events, Log: logger}
}

type rsvpRequest struct {
	EventID string `json:"eventId"`
	Status  string `json:"status"`
}

// HandleUpsert serves POST /rsvp. Status defaults to going; an existing
// row for the pair is updated rather than duplicated.
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req rsvpRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid event id")
		return
	}
	if req.Status != "" && req.Status != models.RSVPGoing && req.Status != models.RSVPCancelled {
		httpjson.Error(w, http.StatusBadRequest, "status must be going or cancelled")
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

	res, err := h.RSVPs.Upsert(ctx, me.ID, eventID, req.Status)
	if err != nil {
		h.Log.Error("rsvp upsert failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadRequest, "Could not save RSVP")
		return
	}
	httpjson.Created(w, res)
}

// HandleMine serves GET /rsvp: the caller's RSVPs, cancelled included.
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.RSVPs.ListByUser(ctx, me.ID)
	if err != nil {
		h.Log.Error("rsvp list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not list RSVPs")
		return
	}
	if list == nil {
		list = []models.RSVP{}
	}
	httpjson.OK(w, list)
}

// HandleCancel serves DELETE /rsvp/{eventId}. Cancelling an RSVP that
// does not exist is a no-op, not an error.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "eventId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.RSVPs.Cancel(ctx, me.ID, eventID); err != nil {
		h.Log.Error("rsvp cancel failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not cancel RSVP")
		return
	}
	httpjson.OK(w, map[string]bool{"ok": true})
}
