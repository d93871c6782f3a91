package jwtmw

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/account/domain/entity"
)

// TokenHeader is the request header carrying the session token.
const TokenHeader = "x-access-token"

// Context keys under which the resolved identity is stored for handlers.
const (
	ContextUserID = "userID"
	ContextEmail  = "userEmail"
)

// UserResolver looks up the account a verified token refers to.
// Goの慣例に従い、インターフェースはプロバイダーではなくコンシューマーが定義します。
type UserResolver interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// AuthRequired returns a Gin middleware that verifies the x-access-token
// header and resolves the claim to a stored user. Requests without a token or
// whose identity no longer resolves are rejected with 403; bad or expired
// tokens with 401. On success the resolved id and email are stored on the
// context for handlers.
func AuthRequired(verifier Verifier, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader(TokenHeader)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Token is required."})
			return
		}

		claims, err := verifier.VerifyToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		// The token alone is not enough: the identity must still resolve to
		// a stored record.
		user, err := users.FindByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. User is invalid."})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextEmail, user.Email)
		c.Next()
	}
}
