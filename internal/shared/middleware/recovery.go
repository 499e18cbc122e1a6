package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// Recovery turns a handler panic into a 500 with the shared error
// envelope instead of a dropped connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered", fmt.Errorf("%s %s [%s]: %v",
					c.Request.Method, c.Request.URL.Path, c.GetString("request_id"), rec))

				response.InternalServerError(c, "internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
