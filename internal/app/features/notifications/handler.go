// Package notifications serves the caller's notification feed.
package notifications

import (
	"context"
	"net/http"

	"github.com/buzzboard/buzzboard/internal/app/store/notifications"
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
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

func NewHandler(notifications *notificationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Notifications: notifications, Log: logger}
}

// HandleMine serves GET /notifications: newest first.
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Notifications.ListByUser(ctx, me.ID)
	if err != nil {
		h.Log.Error("notification list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not list notifications")
		return
	}
	if list == nil {
		list = []models.Notification{}
	}
	httpjson.OK(w, list)
}

// HandleMarkRead serves PATCH /notifications/{id}/read. The update is
// scoped to the caller, so another user's notification reads as absent.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid notification id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Notifications.MarkRead(ctx, id, me.ID)
	if err != nil {
		if mongoerr.IsNotFound(err) {
			httpjson.Error(w, http.StatusNotFound, "Notification not found")
			return
		}
		h.Log.Error("notification update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update notification")
		return
	}
	httpjson.OK(w, n)
}
