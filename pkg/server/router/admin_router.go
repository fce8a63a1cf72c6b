package router

import (
	handlers "github.com/NeuralTrust/SpamShield/pkg/handlers/http"
	"github.com/NeuralTrust/SpamShield/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

type adminRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

func NewAdminRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &adminRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *adminRouter) BuildRoutes(router *fiber.App) error {
	if r.handlerTransport == nil || r.middlewareTransport == nil {
		return ErrInvalidTransport
	}
	h := r.handlerTransport
	m := r.middlewareTransport

	router.Use(
		m.PanicRecoverMiddleware.Middleware(),
		m.RequestIDMiddleware.Middleware(),
	)

	router.Get("/version", h.GetVersionHandler.Handle)

	v1 := router.Group("/api/v1")
	{
		v1.Use(m.AdminAuthMiddleware.Middleware())

		v1.Get("/settings", h.GetSettingsHandler.Handle)
		v1.Put("/settings", h.UpdateSettingsHandler.Handle)

		v1.Post("/install", h.InstallHandler.Handle)
		v1.Post("/uninstall", h.UninstallHandler.Handle)
	}
	return nil
}
