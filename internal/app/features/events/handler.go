// Package events serves event discovery and the club-owner event
// lifecycle: create, partial update, delete.
package events

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/buzzboard/buzzboard/internal/app/store/clubs"
	"github.com/buzzboard/buzzboard/internal/app/store/events"
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/buzzboard/buzzboard/internal/app/system/httpjson"
	"github.com/buzzboard/buzzboard/internal/app/system/mongoerr"
	"github.com/buzzboard/buzzboard/internal/app/system/sanitize"
	"github.com/buzzboard/buzzboard/internal/app/system/timeouts"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Events *eventstore.Store
	Clubs  *clubstore.Store
	Log    *zap.Logger
}

func NewHandler(events *eventstore.Store, clubs *clubstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Events: events, Clubs: clubs, Log: logger}
}

func queryFloat(r *http.Request, key string) *float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// HandleList serves GET /events. Public. Geo filtering kicks in when
// lat, lng, and radiusKm are all present and parseable.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f := eventstore.Filter{
		Lat:      queryFloat(r, "lat"),
		Lng:      queryFloat(r, "lng"),
		RadiusKm: queryFloat(r, "radiusKm"),
		City:     r.URL.Query().Get("city"),
		State:    r.URL.Query().Get("state"),
	}

	list, err := h.Events.List(ctx, f)
	if err != nil {
		h.Log.Error("event list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not list events")
		return
	}
	if list == nil {
		list = []models.Event{}
	}
	httpjson.OK(w, list)
}

type createEventRequest struct {
	ClubID           string               `json:"clubId"`
	Title            string               `json:"title"`
	Description      string               `json:"description"`
	StartAt          time.Time            `json:"startAt"`
	EndAt            *time.Time           `json:"endAt"`
	Location         models.EventLocation `json:"location"`
	Capacity         int                  `json:"capacity"`
	VolunteersNeeded int                  `json:"volunteersNeeded"`
	ImageURL         string               `json:"imageUrl"`
}

// HandleCreate serves POST /events. Only the owning club's owner may
// create events, and the location must carry coordinates plus the full
// address so geo queries and listings both work.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createEventRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	clubID, err := primitive.ObjectIDFromHex(req.ClubID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid club id")
		return
	}
	if strings.TrimSpace(req.Title) == "" || req.StartAt.IsZero() {
		httpjson.Error(w, http.StatusBadRequest, "title and startAt are required")
		return
	}
	if !req.Location.Valid() {
		httpjson.Error(w, http.StatusBadRequest, "location coordinates, address, city and state are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	club, err := h.Clubs.GetByID(ctx, clubID)
	if err != nil {
		if mongoerr.IsNotFound(err) {
			httpjson.Error(w, http.StatusNotFound, "Club not found")
			return
		}
		h.Log.Error("club lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	if club.Owner != me.ID {
		httpjson.Error(w, http.StatusForbidden, "Only the club owner can create events")
		return
	}

	event, err := h.Events.Create(ctx, models.Event{
		Club:             clubID,
		Title:            strings.TrimSpace(req.Title),
		Description:      sanitize.Text(req.Description),
		StartAt:          req.StartAt,
		EndAt:            req.EndAt,
		Location:         req.Location,
		Capacity:         req.Capacity,
		VolunteersNeeded: req.VolunteersNeeded,
		ImageURL:         req.ImageURL,
		CreatedBy:        me.ID,
	})
	if err != nil {
		h.Log.Error("event create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create event")
		return
	}
	httpjson.Created(w, event)
}

// loadForWrite fetches the event from {id} and checks that the caller
// is its creator or the owner of its club, writing the error response
// when either step fails.
func (h *Handler) loadForWrite(ctx context.Context, w http.ResponseWriter, r *http.Request, me *auth.AuthUser) (models.Event, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid event id")
		return models.Event{}, false
	}
	event, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if mongoerr.IsNotFound(err) {
			httpjson.Error(w, http.StatusNotFound, "Event not found")
			return models.Event{}, false
		}
		h.Log.Error("event lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Lookup failed")
		return models.Event{}, false
	}
	if event.CreatedBy != me.ID {
		club, cerr := h.Clubs.GetByID(ctx, event.Club)
		if cerr != nil || club.Owner != me.ID {
			httpjson.Error(w, http.StatusForbidden, "Only the event creator or club owner can modify this event")
			return models.Event{}, false
		}
	}
	return event, true
}

type updateEventRequest struct {
	Title            *string               `json:"title"`
	Description      *string               `json:"description"`
	StartAt          *time.Time            `json:"startAt"`
	EndAt            *time.Time            `json:"endAt"`
	Location         *models.EventLocation `json:"location"`
	Capacity         *int                  `json:"capacity"`
	VolunteersNeeded *int                  `json:"volunteersNeeded"`
	ImageURL         *string               `json:"imageUrl"`
}

// HandleUpdate serves PATCH /events/{id}: partial update, absent fields
// untouched.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req updateEventRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	event, ok := h.loadForWrite(ctx, w, r, me)
	if !ok {
		return
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		set["description"] = sanitize.Text(*req.Description)
	}
	if req.StartAt != nil {
		set["startAt"] = *req.StartAt
	}
	if req.EndAt != nil {
		set["endAt"] = *req.EndAt
	}
	if req.Location != nil {
		if !req.Location.Valid() {
			httpjson.Error(w, http.StatusBadRequest, "location coordinates, address, city and state are required")
			return
		}
		req.Location.Type = "Point"
		set["location"] = *req.Location
	}
	if req.Capacity != nil {
		set["capacity"] = *req.Capacity
	}
	if req.VolunteersNeeded != nil {
		set["volunteersNeeded"] = *req.VolunteersNeeded
	}
	if req.ImageURL != nil {
		set["imageUrl"] = *req.ImageURL
	}
	if len(set) == 0 {
		httpjson.OK(w, event)
		return
	}

	updated, err := h.Events.Update(ctx, event.ID, set)
	if err != nil {
		h.Log.Error("event update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update event")
		return
	}
	httpjson.OK(w, updated)
}

// HandleDelete serves DELETE /events/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	event, ok := h.loadForWrite(ctx, w, r, me)
	if !ok {
		return
	}

	if _, err := h.Events.Delete(ctx, event.ID); err != nil {
		h.Log.Error("event delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete event")
		return
	}
	httpjson.OK(w, map[string]string{"message": "Event deleted"})
}
