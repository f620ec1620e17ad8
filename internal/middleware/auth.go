package middleware

import (
	"net/http"

	"chronopay-gw/internal/auth"
	"chronopay-gw/internal/logger"
	"chronopay-gw/internal/utils"

	"go.uber.org/zap"
)

// AdminOnly rejects requests without a valid admin token and stores the
// token subject and role in the request context.
func AdminOnly(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := auth.ParseToken(auth.ExtractAccessToken(r), secret)
			if err != nil {
				logger.FromCtx(r.Context()).Warn("admin request rejected",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if claims.Role != utils.RoleAdmin {
				utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.Subject, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
