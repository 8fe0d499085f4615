// Package webapi provides the HTTP API for the Zakat calculator.
// It is organized into sub-packages:
// - zakat: calculation, Nisab and price endpoints
// - reference: units, purity standards, presets and currencies
// - common: response envelope, problem details and request binding
package webapi

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/zakat/pkg/app"
	"github.com/amirasaad/zakat/webapi/common"
	"github.com/amirasaad/zakat/webapi/reference"
	zakatweb "github.com/amirasaad/zakat/webapi/zakat"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "zakat",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	maxRequests, window := 100, time.Minute
	if rl := a.Config.RateLimit; rl != nil {
		if rl.MaxRequests > 0 {
			maxRequests = rl.MaxRequests
		}
		if rl.Window > 0 {
			window = rl.Window
		}
	}

	// Uses X-Forwarded-For when behind a proxy, then X-Real-IP, then the peer address
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	if a.Config.Env != "test" {
		fiberApp.Use(logger.New())
	}

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Zakat API is running! 🚀")
	})

	fiberApp.Get("/debug/routes", func(c *fiber.Ctx) error {
		var routeList []map[string]string
		for _, route := range fiberApp.GetRoutes(true) {
			routeList = append(routeList, map[string]string{
				"method": route.Method,
				"path":   route.Path,
			})
		}
		return c.JSON(routeList)
	})

	zakatweb.Routes(fiberApp, a.ZakatService)
	reference.Routes(fiberApp, a.ZakatService)
	return fiberApp
}
