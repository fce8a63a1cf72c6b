package http

import (
	"errors"

	"github.com/NeuralTrust/SpamShield/pkg/app/blockpage"
	"github.com/NeuralTrust/SpamShield/pkg/app/integration"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	headerXForwardedFor = "X-Forwarded-For"
	headerXRealIP       = "X-Real-IP"
)

// storefrontRequest collects the submitted form fields (body first, then
// query string) and the client metadata the spam check forwards.
func storefrontRequest(c *fiber.Ctx, controller integration.Controller) *integration.Request {
	values := make(map[string]string)
	c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		values[string(key)] = string(value)
	})
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		values[string(key)] = string(value)
	})
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for key, vs := range form.Value {
			if len(vs) > 0 {
				values[key] = vs[0]
			}
		}
	}

	return &integration.Request{
		Values:        values,
		Controller:    controller,
		IP:            c.IP(),
		XForwardedFor: c.Get(headerXForwardedFor),
		XRealIP:       c.Get(headerXRealIP),
		Referer:       c.Get(fiber.HeaderReferer),
		UserAgent:     c.Get(fiber.HeaderUserAgent),
	}
}

// handlePluginError writes the block page for a *integration.BlockedError and
// a JSON error for anything else.
func handlePluginError(c *fiber.Ctx, logger *logrus.Logger, err error) error {
	if blocked, ok := integration.AsBlocked(err); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Status(fiber.StatusForbidden).SendString(blocked.Page)
	}
	if errors.Is(err, blockpage.ErrTemplateUnavailable) {
		logger.WithError(err).Error("failed to render block page")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrBlockPageUnavailable})
	}
	logger.WithError(err).Error("storefront submission failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternalServer})
}
