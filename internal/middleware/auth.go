package middleware

import (
	"context"
	"net/http"
	"strings"

	"Bitta/internal/pkg"

	"github.com/gin-gonic/gin"
)

const ContextMemberIDKey = "member_id"

type AccessParser interface {
	ParseAccess(token string) (*pkg.Claims, error)
}

// SessionStore redis 中保存的当前会话
type SessionStore interface {
	Get(ctx context.Context, memberID uint64) (string, error)
	Extend(ctx context.Context, memberID uint64) error
}

func AuthMiddleware(parser AccessParser, sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != pkg.GrantType {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			return
		}
		tokenStr := parts[1]

		claims, err := parser.ParseAccess(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			return
		}

		// 只有 redis 中的最新 token 有效
		ctx := c.Request.Context()
		current, err := sessions.Get(ctx, claims.MemberID)
		if err != nil || current != tokenStr {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "account has been signed in elsewhere"})
			return
		}

		if err := sessions.Extend(ctx, claims.MemberID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		c.Set(ContextMemberIDKey, claims.MemberID)
		c.Next()
	}
}
