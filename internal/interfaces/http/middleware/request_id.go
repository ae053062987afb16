package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"merchant-kita.onboarding/pkg/utils"
)

const RequestIDKey = "request_id"

// RequestIDMiddleware tags each request with a unique ID. An incoming
// X-Request-ID header is honored so IDs survive proxy hops.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = utils.GenerateUUIDv7().String()
		}

		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)

		// Mirror into the request context so logger.WithContext finds it.
		ctx := context.WithValue(c.Request.Context(), "request_id", id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
