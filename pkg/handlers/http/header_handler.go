package http

import (
	"github.com/NeuralTrust/SpamShield/pkg/app/integration"
	"github.com/gofiber/fiber/v2"
)

type headerHandler struct {
	plugin integration.Plugin
}

func NewHeaderHandler(plugin integration.Plugin) Handler {
	return &headerHandler{plugin: plugin}
}

// Handle returns the HTML the storefront injects into every page header.
func (h *headerHandler) Handle(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(h.plugin.DisplayHeader(c.UserContext()))
}
