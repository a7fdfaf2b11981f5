package middleware

import (
	"context"
	"crypto/rsa"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils"
)

type actorKey string

const ActorKey actorKey = "actor"

// JWTAuth verifies the bearer token and stores the resolved actor in the
// request context. Tokens are issued elsewhere; we only verify.
func JWTAuth(publicKey *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAppError(w, app_error.NewAppError(http.StatusUnauthorized, "Missing Authorization header", "auth"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				writeAppError(w, app_error.NewAppError(http.StatusUnauthorized, "Invalid Authorization header format", "auth"))
				return
			}

			claims, err := utils.ParseAndVerifySign(parts[1], publicKey)
			if err != nil {
				log.Error().Err(err).Msg("jwt verify failed")
				writeAppError(w, app_error.NewAppError(http.StatusUnauthorized, "Invalid or expired token", "auth"))
				return
			}

			if claims.Role != entity.RoleAdmin && claims.Role != entity.RoleResident {
				writeAppError(w, app_error.NewAppError(http.StatusUnauthorized, "Unknown role in token", "auth"))
				return
			}
			if claims.Role == entity.RoleResident && claims.Building == "" {
				writeAppError(w, app_error.NewAppError(http.StatusUnauthorized, "Resident token without building", "auth"))
				return
			}

			actor := entity.Actor{
				ID:       claims.Sub,
				Role:     claims.Role,
				Building: claims.Building,
			}
			ctx := context.WithValue(r.Context(), ActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin sits behind JWTAuth on admin-only routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := r.Context().Value(ActorKey).(entity.Actor)
		if !ok || !actor.IsAdmin() {
			writeAppError(w, app_error.NewAuthorizationError("admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ActorFromContext(ctx context.Context) (entity.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(entity.Actor)
	return actor, ok
}

func writeAppError(w http.ResponseWriter, appErr *app_error.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	_ = appErr.JSON(w)
}
