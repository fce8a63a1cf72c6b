package http

import (
	"errors"

	appSettings "github.com/NeuralTrust/SpamShield/pkg/app/settings"
	domain "github.com/NeuralTrust/SpamShield/pkg/domain/settings"
	"github.com/NeuralTrust/SpamShield/pkg/handlers/http/request"
	"github.com/NeuralTrust/SpamShield/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type updateSettingsHandler struct {
	logger  *logrus.Logger
	manager appSettings.Manager
}

func NewUpdateSettingsHandler(logger *logrus.Logger, manager appSettings.Manager) Handler {
	return &updateSettingsHandler{
		logger:  logger,
		manager: manager,
	}
}

// Handle @Summary Update antispam settings
// @Description Invalid values are rejected and the stored settings stay unchanged
// @Tags Settings
// @Accept json
// @Produce json
// @Param Authorization header string true "Authorization token"
// @Param payload body request.UpdateSettingsRequest true "Settings"
// @Success 200 {object} response.SettingsResponse
// @Failure 400 {object} map[string]interface{} "Invalid Configuration value"
// @Router /api/v1/settings [put]
func (h *updateSettingsHandler) Handle(c *fiber.Ctx) error {
	var req request.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	s := req.ToSettings()
	if err := h.manager.Update(c.UserContext(), s); err != nil {
		if errors.Is(err, domain.ErrInvalidConfiguration) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidConfiguration})
		}
		h.logger.WithError(err).Error("failed to update settings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternalServer})
	}
	return c.Status(fiber.StatusOK).JSON(response.NewSettingsResponse(s))
}
