package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/api/responses"
	"github.com/clubmate-app/clubmate-backend/api/validators"
	"github.com/clubmate-app/clubmate-backend/internal/friends"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
	"github.com/clubmate-app/clubmate-backend/pkg/pagination"
)

type friendRequestBody struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
}

type friendRespondBody struct {
	Accept *bool `json:"accept" validate:"required"`
}

type friendsPage struct {
	Friends    []friends.FriendDTO `json:"friends"`
	NextCursor string              `json:"next_cursor,omitempty"`
}

func friendListParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")}, nil
}

// RequestFriend creates a pending friend request from the caller to another member.
func RequestFriend(svc friends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "friend service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req friendRequestBody
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		relationship, err := svc.RequestFriend(r.Context(), caller, req.MemberID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, relationship)
	}
}

// RespondFriend accepts or rejects a pending friend request addressed to the caller.
func RespondFriend(svc friends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "friend service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		friendID, err := pathUUID(chi.URLParam(r, "friendID"), "friend id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req friendRespondBody
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		relationship, err := svc.RespondFriend(r.Context(), caller, friendID, *req.Accept)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, relationship)
	}
}

// ListFriends returns the caller's accepted friendships.
func ListFriends(svc friends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "friend service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := friendListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, next, err := svc.ListFriends(r.Context(), caller, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, friendsPage{Friends: list, NextCursor: next})
	}
}

// ListPendingFriendRequests returns pending requests waiting on the caller.
func ListPendingFriendRequests(svc friends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "friend service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := friendListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, next, err := svc.ListPendingRequests(r.Context(), caller, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, friendsPage{Friends: list, NextCursor: next})
	}
}
