package http

import (
	"github.com/NeuralTrust/SpamShield/pkg/app/integration"
	"github.com/NeuralTrust/SpamShield/pkg/domain/order"
	"github.com/NeuralTrust/SpamShield/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type orderHandler struct {
	logger *logrus.Logger
	plugin integration.Plugin
	orders order.Repository
}

func NewOrderHandler(logger *logrus.Logger, plugin integration.Plugin, orders order.Repository) Handler {
	return &orderHandler{
		logger: logger,
		plugin: plugin,
		orders: orders,
	}
}

// Handle covers checkout: the front-controller hook may check a guest
// registration, then the order is created and validated.
func (h *orderHandler) Handle(c *fiber.Ctx) error {
	req := storefrontRequest(c, integration.ControllerOrder)

	var form request.OrderForm
	if err := request.DecodeForm(req.Values, &form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidFormPayload})
	}

	ctx := c.UserContext()
	if err := h.plugin.FrontControllerInitAfter(ctx, req); err != nil {
		return handlePluginError(c, h.logger, err)
	}

	o := order.New(form.Email, form.FirstName, form.LastName, form.Note)
	if err := h.orders.Create(ctx, o); err != nil {
		h.logger.WithError(err).Error("failed to create order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternalServer})
	}

	if err := h.plugin.ValidateOrder(ctx, o, req); err != nil {
		return handlePluginError(c, h.logger, err)
	}

	if o.IsNew() {
		if err := h.orders.ChangeState(ctx, o, order.StateAwaitingPayment); err != nil {
			h.logger.WithError(err).Error("failed to move order to awaiting payment")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternalServer})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}
