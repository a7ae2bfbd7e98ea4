package middleware

import (
	"context"
	"net/http"

	"github.com/MonkyMars/gecho"

	"github.com/muhammadMilon/FruitPanda-sub001/lib"
	"github.com/muhammadMilon/FruitPanda-sub001/structs"
)

// Context keys for storing auth data in the request context
type contextKey string

const ClaimsContextKey contextKey = "claims"

// UserAuth restricts a route to authenticated users and stores the verified
// claims in the request context.
func (mw *Middleware) UserAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := lib.ExtractClaims(r, mw.cfg.Auth.AccessTokenSecret)
		if err != nil {
			mw.logger.Warn("Failed to extract claims from request", gecho.Field("error", err))
			gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuth restricts a route to admin users. Non-admins get 403 without
// detail about the resource.
func (mw *Middleware) AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := lib.ExtractClaims(r, mw.cfg.Auth.AccessTokenSecret)
		if err != nil {
			mw.logger.Warn("Failed to extract claims from request", gecho.Field("error", err))
			gecho.Forbidden(w, gecho.WithMessage("error.auth.accessDenied"), gecho.Send())
			return
		}

		if !claims.IsAdmin() {
			mw.logger.Warn("Non-admin user attempted to access admin route",
				gecho.Field("user_id", claims.Sub),
				gecho.Field("role", claims.Role))
			gecho.Forbidden(w, gecho.WithMessage("error.auth.adminRequired"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaimsFromContext extracts the verified claims stored by UserAuth or
// AdminAuth.
func GetClaimsFromContext(ctx context.Context) (*structs.AuthClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	return claims, ok
}
