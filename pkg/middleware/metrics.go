package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/NeuralTrust/SpamShield/pkg/infra/prometheus"
	"github.com/NeuralTrust/SpamShield/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

// Middleware counts storefront requests per form and logs the client class.
func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		form := strings.TrimPrefix(c.Route().Path, "/")
		prometheus.StorefrontRequestsTotal.WithLabelValues(form, strconv.Itoa(status)).Inc()

		fields := logrus.Fields{
			"form":     form,
			"status":   status,
			"duration": time.Since(start).String(),
		}
		if ua := utils.ParseUserAgent(c.Get(fiber.HeaderUserAgent), c.Get(fiber.HeaderAcceptLanguage)); ua != nil {
			fields["device"] = ua.Device
			fields["os"] = ua.OS
			fields["browser"] = ua.Browser
			fields["locale"] = ua.Locale
		}
		m.logger.WithFields(fields).Debug("storefront request")
		return err
	}
}
