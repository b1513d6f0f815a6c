package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sohei-site/portfolio-api/utils"
)

// ContextAdminIDKey is the key used to store the authenticated admin ID in Gin context.
const ContextAdminIDKey = "admin_id"

// AuthRequired ensures the request carries a valid bearer JWT. A missing
// credential is 401; a credential that is present but bad in any way
// (signature, expiry, shape) collapses to a single 403 outcome.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.FailCode(ctx, http.StatusUnauthorized, "authorization header missing", "UNAUTHORIZED", false)
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			utils.FailCode(ctx, http.StatusUnauthorized, "invalid authorization header format", "UNAUTHORIZED", false)
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			utils.FailCode(ctx, http.StatusForbidden, "invalid or expired token", "FORBIDDEN", false)
			ctx.Abort()
			return
		}

		ctx.Set(ContextAdminIDKey, claims.AdminID)
		ctx.Next()
	}
}

// AdminID returns the authenticated admin ID stored by AuthRequired.
func AdminID(ctx *gin.Context) uint {
	if v, ok := ctx.Get(ContextAdminIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
