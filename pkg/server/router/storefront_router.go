package router

import (
	"errors"

	handlers "github.com/NeuralTrust/SpamShield/pkg/handlers/http"
	"github.com/NeuralTrust/SpamShield/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

const (
	HealthPath         = "/health"
	AuthenticationPath = "/authentication"
	ContactPath        = "/contact"
	OrderPath          = "/order"
	NewsletterPath     = "/newsletter"
	HeaderPath         = "/header"
)

var ErrInvalidTransport = errors.New("invalid handler transport")

type storefrontRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

func NewStorefrontRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &storefrontRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *storefrontRouter) BuildRoutes(router *fiber.App) error {
	if r.handlerTransport == nil || r.middlewareTransport == nil {
		return ErrInvalidTransport
	}
	h := r.handlerTransport
	m := r.middlewareTransport

	router.Get(HealthPath, h.HealthHandler.Handle)

	router.Use(
		m.PanicRecoverMiddleware.Middleware(),
		m.RequestIDMiddleware.Middleware(),
		m.SecurityMiddleware.Middleware(),
		m.MetricsMiddleware.Middleware(),
	)

	router.Get(HeaderPath, h.HeaderHandler.Handle)
	router.Post(AuthenticationPath, h.SubmitAccountHandler.Handle)
	router.Post(ContactPath, h.ContactHandler.Handle)
	router.Post(OrderPath, h.OrderHandler.Handle)
	router.Post(NewsletterPath, h.NewsletterHandler.Handle)
	return nil
}
