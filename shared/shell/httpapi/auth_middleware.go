package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const userIDKey = "bookswap_user_id"

// requireUser verifies the bearer token and stores the user id for the handlers.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			s.abortWithError(c, core.ErrUnauthenticated)
			return
		}

		subject, err := s.deps.Tokens.Verify(token)
		if err != nil {
			s.abortWithError(c, core.ErrUnauthenticated)
			return
		}

		userID, err := uuid.Parse(subject)
		if err != nil {
			s.abortWithError(c, core.ErrUnauthenticated)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// currentUser returns the id stored by requireUser.
func currentUser(c *gin.Context) uuid.UUID {
	if userID, ok := c.Get(userIDKey); ok {
		if id, ok := userID.(uuid.UUID); ok {
			return id
		}
	}

	return uuid.Nil
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
// The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
