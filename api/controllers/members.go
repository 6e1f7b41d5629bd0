package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/api/responses"
	"github.com/clubmate-app/clubmate-backend/internal/members"
	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
)

type memberFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
}

// MemberMe returns the authenticated member's profile.
func MemberMe(repo memberFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member repository unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		member, err := repo.FindByID(r.Context(), caller)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "member not found"))
			return
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member"))
			return
		}
		responses.WriteSuccess(w, members.FromModel(member))
	}
}
