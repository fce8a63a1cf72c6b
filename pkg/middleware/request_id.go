package middleware

import (
	"context"

	"github.com/NeuralTrust/SpamShield/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type requestIDMiddleware struct{}

func NewRequestIDMiddleware() Middleware {
	return &requestIDMiddleware{}
}

// Middleware keeps a valid incoming X-Request-Id and generates one otherwise.
func (m *requestIDMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(common.RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Locals(string(common.RequestIDKey), requestID)
		c.SetUserContext(context.WithValue(c.UserContext(), common.RequestIDKey, requestID))
		c.Set(common.RequestIDHeader, requestID)
		return c.Next()
	}
}
