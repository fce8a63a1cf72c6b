package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Storefront
	SubmitAccountHandler Handler
	ContactHandler       Handler
	OrderHandler         Handler
	NewsletterHandler    Handler
	HeaderHandler        Handler
	HealthHandler        Handler

	// Admin
	GetVersionHandler     Handler
	GetSettingsHandler    Handler
	UpdateSettingsHandler Handler
	InstallHandler        Handler
	UninstallHandler      Handler
}
