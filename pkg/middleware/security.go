package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type SecurityConfig struct {
	STSSeconds            int
	FrameDeny             bool
	ContentTypeNosniff    bool
	ReferrerPolicy        string
	ContentSecurityPolicy string
}

// DefaultSecurityConfig suits the block page: it runs one inline script and
// loads the detector script from the verdict service.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline' https://moderate.cleantalk.org; style-src 'self' 'unsafe-inline'",
	}
}

type securityMiddleware struct {
	cfg SecurityConfig
}

func NewSecurityMiddleware(cfg SecurityConfig) Middleware {
	return &securityMiddleware{cfg: cfg}
}

func (m *securityMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg := m.cfg

		if cfg.STSSeconds > 0 && c.Protocol() == "https" {
			c.Set("Strict-Transport-Security", "max-age="+strconv.Itoa(cfg.STSSeconds))
		}
		if cfg.FrameDeny {
			c.Set("X-Frame-Options", "DENY")
		}
		if cfg.ContentTypeNosniff {
			c.Set("X-Content-Type-Options", "nosniff")
		}
		if cfg.ReferrerPolicy != "" {
			c.Set("Referrer-Policy", cfg.ReferrerPolicy)
		}
		if cfg.ContentSecurityPolicy != "" {
			c.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
		}

		return c.Next()
	}
}
