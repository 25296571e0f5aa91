// Package gallery serves per-event photo galleries. Each event has at
// most one gallery document; posting appends to it, creating it on
// first use.
package gallery

import (
	"context"
	"net/http"

	"github.com/buzzboard/buzzboard/internal/app/store/events"
	"github.com/buzzboard/buzzboard/internal/app/store/gallery"
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/buzzboard/buzzboard/internal/app/system/httpjson"
	"github.com/buzzboard/buzzboard/internal/app/system/mongoerr"
	"github.com/buzzboard/buzzboard/internal/app/system/sanitize"
	"github.com/buzzboard/buzzboard/internal/app/system/timeouts"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Galleries *gallerystore.Store
	Events    *eventstore.Store
	Log       *zap.Logger
}

func NewHandler(galleries *gallerystore.Store, events *eventstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Galleries: galleries, Events: events, Log: logger}
}

type appendRequest struct {
	EventID string `json:"eventId"`
	Images  []struct {
		URL     string `json:"url"`
		Caption string `json:"caption"`
	} `json:"images"`
}

// HandleAppend serves POST /gallery.
func (h *Handler) HandleAppend(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req appendRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid event id")
		return
	}
	if len(req.Images) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "images are required")
		return
	}
	images := make([]models.GalleryImage, 0, len(req.Images))
	for _, img := range req.Images {
		if img.URL == "" {
			httpjson.Error(w, http.StatusBadRequest, "every image needs a url")
			return
		}
		images = append(images, models.GalleryImage{
			URL:     img.URL,
			Caption: sanitize.Text(img.Caption),
		})
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

	g, err := h.Galleries.Append(ctx, eventID, me.ID, images)
	if err != nil {
		h.Log.Error("gallery append failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not save images")
		return
	}
	httpjson.Created(w, g)
}

// HandleList serves GET /gallery?eventId=. Public, newest first.
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

	list, err := h.Galleries.List(ctx, eventID)
	if err != nil {
		h.Log.Error("gallery list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not list galleries")
		return
	}
	if list == nil {
		list = []models.Gallery{}
	}
	httpjson.OK(w, list)
}
