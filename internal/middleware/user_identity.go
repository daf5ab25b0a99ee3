package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the acting user. It is set by the upstream gateway after authentication.
const UserIDHeader = "X-User-ID"

// UserIdentity copies the trusted user header into the Gin and request contexts
// and enriches the request logger with it. Requests without the header are rejected.
func UserIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			logger.Warn("User header missing", slog.String("header", UserIDHeader))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": UserIDHeader + " header required"})
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctx := WithLogger(WithUserID(c.Request.Context(), userID), enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userIDKey), userID)
		c.Set(string(loggerCtxKey), enrichedLogger)

		c.Next()
	}
}
