package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/clubmate-app/clubmate-backend/api/responses"
	pkgAuth "github.com/clubmate-app/clubmate-backend/pkg/auth"
	"github.com/clubmate-app/clubmate-backend/pkg/auth/session"
	"github.com/clubmate-app/clubmate-backend/pkg/config"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// resolved member identity. Downstream handlers only ever see the member id,
// never the raw token.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxMemberID, claims.MemberID.String())
			if claims.Nickname != "" {
				ctx = context.WithValue(ctx, ctxNickname, claims.Nickname)
			}

			if logg != nil {
				ctx = logg.WithMemberID(ctx, claims.MemberID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
