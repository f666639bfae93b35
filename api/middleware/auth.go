package middleware

import (
	"context"
	"net/http"

	"merchantdesk_server/lib"
	"merchantdesk_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// Context keys for storing auth data in request context
type contextKey string

const ClaimsContextKey contextKey = "claims"

// BusinessAuthMiddleware requires a valid access token and puts its claims on
// the request context. Every authenticated route is partitioned by the
// business_id claim the token carries.
func (mw *Middleware) BusinessAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := lib.ExtractClaims(r, mw.cfg.Auth.AccessTokenSecret)
		if err != nil {
			mw.logger.Warn("Failed to extract claims from request", gecho.Field("error", err))
			gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaimsFromContext extracts the claims stored by BusinessAuthMiddleware.
func GetClaimsFromContext(ctx context.Context) (*structs.AuthClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	return claims, ok
}

// BusinessIdFromContext is a shorthand for the tenant id on authed routes.
func BusinessIdFromContext(ctx context.Context) (uuid.UUID, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return claims.BusinessId, true
}
