package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/api/middleware"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
)

// callerID resolves the authenticated member id seeded by the auth middleware.
func callerID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.MemberIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "member context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid member id")
	}
	return id, nil
}

// pathUUID parses a UUID route parameter.
func pathUUID(raw, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+label)
	}
	return id, nil
}
