package http

import (
	"github.com/NeuralTrust/SpamShield/pkg/app/integration"
	"github.com/NeuralTrust/SpamShield/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type newsletterHandler struct {
	logger *logrus.Logger
	plugin integration.Plugin
}

func NewNewsletterHandler(logger *logrus.Logger, plugin integration.Plugin) Handler {
	return &newsletterHandler{
		logger: logger,
		plugin: plugin,
	}
}

// Handle subscribes an email. Callers that render their own form errors
// (the subscription widget) send hook_error=1 and get the verdict comment
// back as JSON instead of the block page.
func (h *newsletterHandler) Handle(c *fiber.Ctx) error {
	req := storefrontRequest(c, integration.ControllerOther)

	var form request.NewsletterForm
	if err := request.DecodeForm(req.Values, &form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidFormPayload})
	}

	hookError, err := h.plugin.NewsletterRegistrationBefore(c.UserContext(), form.Email, req, form.HookError)
	if err != nil {
		return handlePluginError(c, h.logger, err)
	}
	if hookError != "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": hookError})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "subscribed"})
}
