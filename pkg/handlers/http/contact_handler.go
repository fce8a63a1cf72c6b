package http

import (
	"github.com/NeuralTrust/SpamShield/pkg/app/integration"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type contactHandler struct {
	logger *logrus.Logger
	plugin integration.Plugin
}

func NewContactHandler(logger *logrus.Logger, plugin integration.Plugin) Handler {
	return &contactHandler{
		logger: logger,
		plugin: plugin,
	}
}

// Handle runs the front-controller hook for the contact controller. Requests
// without submitMessage pass through unchecked, as on the storefront.
func (h *contactHandler) Handle(c *fiber.Ctx) error {
	req := storefrontRequest(c, integration.ControllerContact)

	if err := h.plugin.FrontControllerInitAfter(c.UserContext(), req); err != nil {
		return handlePluginError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "sent"})
}
