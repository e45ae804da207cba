package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/giaphaapp/giapha-server/internal/errors"
	"github.com/giaphaapp/giapha-server/internal/policy"
	"github.com/giaphaapp/giapha-server/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// actorKey is the context key for the resolved policy actor.
const actorKey ctxKey = "actor"

// GetActor returns the policy actor resolved for the request.
// A request without a valid token carries the anonymous actor; the zero
// value of policy.Actor is also anonymous, so a missing context entry can
// never grant access.
func GetActor(ctx context.Context) policy.Actor {
	if actor, ok := ctx.Value(actorKey).(policy.Actor); ok {
		return actor
	}
	return policy.Anonymous()
}

// setActor stores the actor in context.
func setActor(ctx context.Context, actor policy.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// actorMiddleware resolves the Bearer token to a policy actor and stores it
// in the request context. Invalid or missing tokens resolve to anonymous;
// requests are never rejected here.
func actorMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				token = h[7:]
			}

			actor := auth.ResolveActor(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(setActor(r.Context(), actor)))
		})
	}
}

// RequireAuthenticated returns the actor if it is authenticated.
func RequireAuthenticated(ctx context.Context) (policy.Actor, error) {
	actor := GetActor(ctx)
	if !actor.Authenticated() {
		return policy.Anonymous(), huma.Error401Unauthorized("Authentication required")
	}
	return actor, nil
}

// RequireAdmin returns the actor if it has admin privileges.
func RequireAdmin(ctx context.Context) (policy.Actor, error) {
	actor, err := RequireAuthenticated(ctx)
	if err != nil {
		return policy.Anonymous(), err
	}
	if !actor.IsAdmin() {
		return policy.Anonymous(), domainerrors.Forbidden("Admin access required")
	}
	return actor, nil
}
