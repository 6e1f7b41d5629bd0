package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clubmate-app/clubmate-backend/api/responses"
	"github.com/clubmate-app/clubmate-backend/api/validators"
	"github.com/clubmate-app/clubmate-backend/internal/clubs"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
)

type createClubRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

func (r createClubRequest) toInput() clubs.CreateClubInput {
	return clubs.CreateClubInput{
		Name:        r.Name,
		Description: r.Description,
	}
}

type setClubActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// CreateClub founds a club with the caller as leader.
func CreateClub(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
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
		var req createClubRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		club, err := svc.CreateClub(r.Context(), caller, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, club)
	}
}

// GetClub returns a club by id.
func GetClub(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "club service unavailable"))
			return
		}
		clubID, err := pathUUID(chi.URLParam(r, "clubID"), "club id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		club, err := svc.GetClub(r.Context(), clubID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, club)
	}
}

// SetClubActive toggles a club's active flag. Leader only.
func SetClubActive(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
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
		var req setClubActiveRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		club, err := svc.SetClubActive(r.Context(), caller, clubID, *req.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, club)
	}
}

// ListMyClubs returns the caller's memberships joined with club info.
func ListMyClubs(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
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
		memberships, err := svc.ListMyClubs(r.Context(), caller)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, memberships)
	}
}
