package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/api/responses"
	"github.com/clubmate-app/clubmate-backend/api/validators"
	"github.com/clubmate-app/clubmate-backend/internal/clubs"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
	"github.com/clubmate-app/clubmate-backend/pkg/pagination"
)

type addMemberRequest struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
	Role     string    `json:"role" validate:"required,oneof=manager participant"`
}

type respondInvitationRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

type clubMembersPage struct {
	Members    []clubs.ClubMemberDTO `json:"members"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

// AddClubMember invites a member into a club. Host or manager only.
func AddClubMember(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "club service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		clubID, err := pathUUID(chi.URLParam(r, "clubID"), "club id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req addMemberRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		membership, err := svc.AddMember(r.Context(), caller, clubID, req.MemberID, enums.ClubRole(req.Role))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, membership)
	}
}

// ApplyToClub records the caller's application to join a club.
func ApplyToClub(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "club service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		clubID, err := pathUUID(chi.URLParam(r, "clubID"), "club id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		membership, err := svc.Apply(r.Context(), caller, clubID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, membership)
	}
}

// RespondToInvitation lets the invited member accept or reject an invitation.
// Rejecting removes the membership row; the response body is empty in that case.
func RespondToInvitation(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "club service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		clubID, err := pathUUID(chi.URLParam(r, "clubID"), "club id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req respondInvitationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		membership, err := svc.RespondToInvitation(r.Context(), caller, clubID, *req.Accept)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if membership == nil {
			responses.WriteSuccess(w, map[string]string{"status": "rejected"})
			return
		}
		responses.WriteSuccess(w, membership)
	}
}

// ApproveApplication moves an applying member to joining. Host or manager only.
func ApproveApplication(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "club service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		clubID, err := pathUUID(chi.URLParam(r, "clubID"), "club id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		memberID, err := pathUUID(chi.URLParam(r, "memberID"), "member id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		membership, err := svc.ApproveApplication(r.Context(), caller, clubID, memberID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, membership)
	}
}

// WithdrawFromClub marks the caller's joined membership as withdrawn.
func WithdrawFromClub(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "club service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		clubID, err := pathUUID(chi.URLParam(r, "clubID"), "club id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Withdraw(r.Context(), caller, clubID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "withdrawn"})
	}
}

// ListClubMembers returns a club's roster. Host or any member of the club.
func ListClubMembers(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "club service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		clubID, err := pathUUID(chi.URLParam(r, "clubID"), "club id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")}
		roster, next, err := svc.ListMembers(r.Context(), caller, clubID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, clubMembersPage{Members: roster, NextCursor: next})
	}
}
