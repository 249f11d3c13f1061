package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/motorline/dealership-backend/internal/domain/repository"
	"github.com/motorline/dealership-backend/pkg/helpers"
	"github.com/motorline/dealership-backend/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the access token cookie and ensures an active session
// exists in Redis for the user. The token carries a session ID claim that
// must match the one stored server-side, so logout and rotation revoke
// tokens before they expire. Sets userID in the Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			response.Abort(c, http.StatusUnauthorized, "session not found", nil)
			return
		}
		if data["sid"] != claims.SessionID {
			response.Abort(c, http.StatusUnauthorized, "session revoked", nil)
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// AdminOnly loads the authenticated user and rejects non-admins. It runs
// after Auth and reads the role from the database rather than the session,
// so demotions take effect immediately.
func AdminOnly(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(CtxUserIDKey)
		if userID == "" {
			response.Abort(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		if !user.IsAdmin() {
			response.Abort(c, http.StatusForbidden, "admin access required", nil)
			return
		}
		c.Next()
	}
}
