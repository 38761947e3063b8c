package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/damda-platform/damda-admin/internal/api"
)

type contextKey string

const adminClaimsKey contextKey = "admin_claims"

func Middleware(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.HandleError(w, api.ErrUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				api.HandleError(w, api.ErrUnauthorized)
				return
			}

			claims, err := svc.ValidateAccessToken(parts[1])
			if err != nil {
				api.HandleError(w, api.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminClaims returns the authenticated admin's claims, or nil.
func GetAdminClaims(ctx context.Context) *AccessClaims {
	claims, _ := ctx.Value(adminClaimsKey).(*AccessClaims)
	return claims
}

// ActorID parses the authenticated admin's ID out of the request context.
// Returns uuid.Nil when unauthenticated or malformed.
func ActorID(ctx context.Context) uuid.UUID {
	claims := GetAdminClaims(ctx)
	if claims == nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(claims.AdminID)
	if err != nil {
		return uuid.Nil
	}
	return id
}
