package http

import (
	"context"

	appSettings "github.com/NeuralTrust/SpamShield/pkg/app/settings"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type lifecycleHandler struct {
	logger *logrus.Logger
	action string
	run    func(ctx context.Context) error
}

// NewInstallHandler seeds default settings.
func NewInstallHandler(logger *logrus.Logger, manager appSettings.Manager) Handler {
	return &lifecycleHandler{logger: logger, action: "install", run: manager.Install}
}

// NewUninstallHandler removes every stored setting.
func NewUninstallHandler(logger *logrus.Logger, manager appSettings.Manager) Handler {
	return &lifecycleHandler{logger: logger, action: "uninstall", run: manager.Uninstall}
}

func (h *lifecycleHandler) Handle(c *fiber.Ctx) error {
	if err := h.run(c.UserContext()); err != nil {
		h.logger.WithError(err).WithField("action", h.action).Error("settings lifecycle action failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternalServer})
	}
	h.logger.WithField("action", h.action).Info("settings lifecycle action completed")
	return c.SendStatus(fiber.StatusNoContent)
}
