// Package comments serves event discussion threads.
package comments

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/buzzboard/buzzboard/internal/app/store/comments"
	"github.com/buzzboard/buzzboard/internal/app/store/events"
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/buzzboard/buzzboard/internal/app/system/authz"
	"github.com/buzzboard/buzzboard/internal/app/system/httpjson"
	"github.com/buzzboard/buzzboard/internal/app/system/mongoerr"
	"github.com/buzzboard/buzzboard/internal/app/system/sanitize"
	"github.com/buzzboard/buzzboard/internal/app/system/timeouts"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Comments *commentstore.Store
	Events   *eventstore.Store
	Log      *zap.Logger
}

func NewHandler(comments *commentstore.Store, events *eventstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Comments: comments, Events: events, Log: logger}
}

type createCommentRequest struct {
	EventID string `json:"eventId"`
	Content string `json:"content"`
}

// HandleCreate serves POST /comments. Content is sanitized before the
// length check so markup does not smuggle length past the cap.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req createCommentRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid event id")
		return
	}
	content := sanitize.Text(req.Content)
	if strings.TrimSpace(content) == "" {
		httpjson.Error(w, http.StatusBadRequest, "content is required")
		return
	}
	if utf8.RuneCountInString(content) > models.MaxCommentLength {
		httpjson.Error(w, http.StatusBadRequest,
			fmt.Sprintf("content must be at most %d characters", models.MaxCommentLength))
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

	c, err := h.Comments.Create(ctx, models.Comment{
		Event:   eventID,
		User:    me.ID,
		Content: content,
	})
	if err != nil {
		h.Log.Error("comment create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not post comment")
		return
	}
	httpjson.Created(w, c)
}

// HandleList serves GET /comments?eventId=. Public, oldest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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

	list, err := h.Comments.List(ctx, eventID)
	if err != nil {
		h.Log.Error("comment list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not list comments")
		return
	}
	if list == nil {
		list = []models.Comment{}
	}
	httpjson.OK(w, list)
}

// HandleDelete serves DELETE /comments/{id}. Allowed for the comment's
// author or an admin.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid comment id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Comments.GetByID(ctx, id)
	if err != nil {
		if mongoerr.IsNotFound(err) {
			httpjson.Error(w, http.StatusNotFound, "Comment not found")
			return
		}
		h.Log.Error("comment lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	if c.User != me.ID && !authz.IsAdmin(r) {
		httpjson.Error(w, http.StatusForbidden, "Only the author or an admin can delete this comment")
		return
	}

	if err := h.Comments.Delete(ctx, id); err != nil {
		h.Log.Error("comment delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete comment")
		return
	}
	httpjson.OK(w, map[string]string{"message": "Comment deleted"})
}
