package http

import (
	appSettings "github.com/NeuralTrust/SpamShield/pkg/app/settings"
	"github.com/NeuralTrust/SpamShield/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type getSettingsHandler struct {
	logger  *logrus.Logger
	manager appSettings.Manager
}

func NewGetSettingsHandler(logger *logrus.Logger, manager appSettings.Manager) Handler {
	return &getSettingsHandler{
		logger:  logger,
		manager: manager,
	}
}

// Handle @Summary Get antispam settings
// @Tags Settings
// @Produce json
// @Param Authorization header string true "Authorization token"
// @Success 200 {object} response.SettingsResponse
// @Router /api/v1/settings [get]
func (h *getSettingsHandler) Handle(c *fiber.Ctx) error {
	s, err := h.manager.Get(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("failed to read settings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternalServer})
	}
	return c.Status(fiber.StatusOK).JSON(response.NewSettingsResponse(s))
}
