package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sohei-site/portfolio-api/utils"
)

// RequestID tags every request with a UUID, echoed in the X-Request-ID
// response header and carried into access logs.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(utils.RequestIDKey, id)
		ctx.Header("X-Request-ID", id)
		ctx.Next()
	}
}
