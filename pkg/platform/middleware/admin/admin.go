package admin

import (
	"log/slog"
	"net/http"

	request "backoffice/pkg/platform/middleware/request"
	"backoffice/pkg/requestcontext"
)

// RoleAdmin is the role allowed through RequireAdmin.
const RoleAdmin = "ADMIN"

// RequireAdmin only lets principals holding the ADMIN role through. It must be
// mounted after auth.RequireAuth.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			actor := requestcontext.Actor(ctx)
			if actor.Role != RoleAdmin {
				logger.WarnContext(ctx, "admin route denied",
					"request_id", request.GetRequestID(ctx),
					"user_id", actor.UserID,
					"role", actor.Role,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"admin role required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
