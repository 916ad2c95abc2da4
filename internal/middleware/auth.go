package middleware

import (
	"net/http"

	"codespace-shop/internal/auth"
	"codespace-shop/internal/logger"
	"codespace-shop/internal/utils"

	"go.uber.org/zap"
)

// RequireAdmin rejects the request unless it carries a valid admin token.
// With no admin credential configured every request is rejected.
func RequireAdmin(admin *auth.Admin) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := admin.Authorize(auth.ExtractAccessToken(r))
			if err != nil {
				logger.FromCtx(r.Context()).Warn("admin request rejected",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := utils.WithRole(r.Context(), claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
