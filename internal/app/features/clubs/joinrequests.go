// internal/app/features/clubs/joinrequests.go
//
// The membership workflow. Per (club, requester) the request lifecycle is
// none -> pending -> approved|rejected, with approved/rejected terminal.
// Every transition is one conditional update on the club document (see
// clubstore); this file owns the authorization rules and the best-effort
// notification side effects around those transitions.
package clubs

import (
	"context"
	"net/http"
	"time"

	"github.com/buzzboard/buzzboard/internal/app/store/clubs"
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/buzzboard/buzzboard/internal/app/system/httpjson"
	"github.com/buzzboard/buzzboard/internal/app/system/mongoerr"
	"github.com/buzzboard/buzzboard/internal/app/system/timeouts"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// loadClub parses {id} and fetches the club, writing the error response
// on failure.
func (h *Handler) loadClub(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Club, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid club id")
		return models.Club{}, false
	}
	club, err := h.Clubs.GetByID(ctx, id)
	if err != nil {
		if mongoerr.IsNotFound(err) {
			httpjson.Error(w, http.StatusNotFound, "Club not found")
			return models.Club{}, false
		}
		h.Log.Error("club lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Lookup failed")
		return models.Club{}, false
	}
	return club, true
}

// notify writes a notification without letting failure propagate: the
// delivery contract is best-effort and the membership transition it
// follows must stand regardless.
func (h *Handler) notify(ctx context.Context, userID primitive.ObjectID, typ, message string, meta bson.M) {
	if err := h.Notifications.Notify(ctx, userID, typ, message, meta); err != nil {
		h.Log.Warn("notification write failed",
			zap.String("type", typ), zap.String("user", userID.Hex()), zap.Error(err))
	}
}

// HandleJoin serves POST /clubs/{id}/join: none -> pending. Fails with
// 409 when the caller is already a member or already has a pending
// request; on success the owner is notified.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	clubID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid club id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	req, err := h.Clubs.SubmitJoinRequest(ctx, clubID, me.ID)
	if err != nil {
		switch {
		case mongoerr.IsNotFound(err):
			httpjson.Error(w, http.StatusNotFound, "Club not found")
		case err == clubstore.ErrAlreadyMember:
			httpjson.Error(w, http.StatusConflict, "Already a member")
		case err == clubstore.ErrRequestPending:
			httpjson.Error(w, http.StatusConflict, "Request already pending")
		default:
			h.Log.Error("join request failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Could not submit join request")
		}
		return
	}

	// Owner notification rides outside the transition.
	if club, lerr := h.Clubs.GetByID(ctx, clubID); lerr == nil {
		h.notify(ctx, club.Owner, models.NotifyJoinRequest, "New join request received",
			bson.M{"clubId": clubID, "requesterId": me.ID, "requestId": req.ID})
	}

	httpjson.OK(w, map[string]string{"message": "Join request sent"})
}

// HandleListJoinRequests serves GET /clubs/{id}/join-requests. Owner only.
func (h *Handler) HandleListJoinRequests(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	club, ok := h.loadClub(ctx, w, r)
	if !ok {
		return
	}
	if club.Owner != me.ID {
		httpjson.Error(w, http.StatusForbidden, "Only the club owner can view requests")
		return
	}
	httpjson.OK(w, club.JoinRequests)
}

type reviewRequest struct {
	Status string `json:"status"`
}

// HandleReviewJoinRequest serves PATCH /clubs/{id}/join-requests/{reqId}
// with {"status": "approved"|"rejected"}.
//
// Approval is owner-only: pending -> approved adds the requester to the
// member set atomically, then writes the joinedClubs back-reference and
// notifies the requester. Rejection is allowed for the owner or for the
// requester withdrawing their own request; both produce the same
// rejected status with no side effects.
func (h *Handler) HandleReviewJoinRequest(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	reqID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "reqId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	var body reviewRequest
	if !httpjson.Decode(w, r, &body) {
		return
	}
	if body.Status != models.RequestApproved && body.Status != models.RequestRejected {
		httpjson.Error(w, http.StatusBadRequest, "status must be approved or rejected")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	club, ok := h.loadClub(ctx, w, r)
	if !ok {
		return
	}
	request, found := club.RequestByID(reqID)
	if !found {
		httpjson.Error(w, http.StatusNotFound, "Join request not found")
		return
	}

	if body.Status == models.RequestApproved {
		h.approve(ctx, w, me, club, request)
		return
	}
	h.reject(ctx, w, me, club, request)
}

func (h *Handler) approve(ctx context.Context, w http.ResponseWriter, me *auth.AuthUser, club models.Club, request models.JoinRequest) {
	if club.Owner != me.ID {
		httpjson.Error(w, http.StatusForbidden, "Only the club owner can approve joins")
		return
	}

	if err := h.Clubs.ApproveJoinRequest(ctx, club.ID, request.ID, request.User); err != nil {
		if err == clubstore.ErrRequestNotPending {
			httpjson.Error(w, http.StatusConflict, "Join request is not pending")
			return
		}
		h.Log.Error("approve failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not approve request")
		return
	}

	// Second write of the approval pair. No compensating rollback: a
	// failure here leaves member-without-backref, which reads tolerate.
	if err := h.Users.AddJoinedClub(ctx, request.User, club.ID); err != nil {
		h.Log.Warn("joinedClubs back-reference failed",
			zap.String("user", request.User.Hex()), zap.String("club", club.ID.Hex()), zap.Error(err))
	}

	h.notify(ctx, request.User, models.NotifyJoinApproved,
		"Your request to join "+club.Name+" was approved",
		bson.M{"clubId": club.ID})

	httpjson.OK(w, map[string]string{"message": "User approved and added to club"})
}

func (h *Handler) reject(ctx context.Context, w http.ResponseWriter, me *auth.AuthUser, club models.Club, request models.JoinRequest) {
	if club.Owner != me.ID && request.User != me.ID {
		httpjson.Error(w, http.StatusForbidden, "Only the club owner or the requester can reject")
		return
	}

	if err := h.Clubs.RejectJoinRequest(ctx, club.ID, request.ID); err != nil {
		if err == clubstore.ErrRequestNotPending {
			httpjson.Error(w, http.StatusConflict, "Join request is not pending")
			return
		}
		h.Log.Error("reject failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not reject request")
		return
	}
	httpjson.OK(w, map[string]string{"message": "Join request rejected"})
}

// myRequestEntry is one row of GET /clubs/me/requests.
type myRequestEntry struct {
	ClubID      primitive.ObjectID `json:"clubId"`
	ClubName    string             `json:"clubName"`
	RequestID   primitive.ObjectID `json:"requestId"`
	Status      string             `json:"status"`
	RequestedAt time.Time          `json:"requestedAt"`
}

// HandleMyRequests serves GET /clubs/me/requests: the caller's join
// request history across all clubs.
func (h *Handler) HandleMyRequests(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	clubs, err := h.Clubs.ListByRequester(ctx, me.ID)
	if err != nil {
		h.Log.Error("my requests failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not list requests")
		return
	}

	out := []myRequestEntry{}
	for _, c := range clubs {
		for _, req := range c.JoinRequests {
			if req.User == me.ID {
				out = append(out, myRequestEntry{
					ClubID:      c.ID,
					ClubName:    c.Name,
					RequestID:   req.ID,
					Status:      req.Status,
					RequestedAt: req.RequestedAt,
				})
			}
		}
	}
	httpjson.OK(w, out)
}
