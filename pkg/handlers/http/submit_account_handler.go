package http

import (
	"github.com/NeuralTrust/SpamShield/pkg/app/integration"
	"github.com/NeuralTrust/SpamShield/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type submitAccountHandler struct {
	logger *logrus.Logger
	plugin integration.Plugin
}

func NewSubmitAccountHandler(logger *logrus.Logger, plugin integration.Plugin) Handler {
	return &submitAccountHandler{
		logger: logger,
		plugin: plugin,
	}
}

// Handle checks an account registration before the account is created.
func (h *submitAccountHandler) Handle(c *fiber.Ctx) error {
	req := storefrontRequest(c, integration.ControllerOther)

	var form request.RegistrationForm
	if err := request.DecodeForm(req.Values, &form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidFormPayload})
	}

	if err := h.plugin.SubmitAccountBefore(c.UserContext(), req); err != nil {
		return handlePluginError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "registered", "email": form.Email})
}
