package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"finetune-gateway/internal/domain"
)

const contextUserID = "user_id"

// Auth resolves the bearer token to a principal via the identity service and
// stores the principal id in the request context.
func Auth(verifier domain.IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
			return
		}

		userID, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			log.WithError(err).Debug("token verification failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
			return
		}

		c.Set(contextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated principal id set by Auth.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	val, ok := c.Get(contextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
