package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/growthroad/internal/server/auth"
)

const userIDContextKey = "userID"

// requireUser authenticates the bearer token and stores the caller's user id
// in the request context. Every failure looks the same to the caller:
// missing, malformed, and expired tokens all produce an identical 401.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")

		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		// A token may outlive its account; confirm the user still exists.
		if _, err := s.users.GetByID(c.Request.Context(), userID); err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authentication token"})
}

// currentUserID returns the id stored by requireUser.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDContextKey)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
