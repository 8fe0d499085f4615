// Package zakat exposes the calculation service over HTTP.
package zakat

import (
	"github.com/amirasaad/zakat/pkg/money"
	zakatsvc "github.com/amirasaad/zakat/pkg/service/zakat"
	"github.com/amirasaad/zakat/pkg/zakat"
	"github.com/amirasaad/zakat/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers HTTP routes for calculations.
func Routes(app *fiber.App, svc *zakatsvc.Service) {
	group := app.Group("/api/zakat")
	group.Post("/calculate", Calculate(svc))
	group.Get("/nisab", Nisab(svc))
	group.Get("/defaults", Defaults(svc))
	group.Get("/prices", Prices(svc))
}

// Calculate returns a Fiber handler that computes the Zakat obligation.
func Calculate(svc *zakatsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := common.BindAndValidate[CalculateRequest](c)
		if err != nil {
			return nil
		}
		in, err := req.ToInput()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid preset", err)
		}
		out, err := svc.Calculate(c.UserContext(), in)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Calculation failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Zakat calculated", out)
	}
}

// Nisab returns a Fiber handler that quotes the current threshold.
func Nisab(svc *zakatsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q NisabQuery
		if err := c.QueryParser(&q); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err, fiber.StatusBadRequest)
		}
		if err := common.Validate(q); err != nil {
			return common.ProblemDetailsJSON(c, "Validation failed", err)
		}
		quote, err := svc.Nisab(c.UserContext(), q.Currency, zakat.NisabBasis(q.Basis))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to quote nisab", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Nisab fetched successfully", quote)
	}
}

// Defaults returns a Fiber handler that reports the configured defaults.
func Defaults(svc *zakatsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		base, home, m := svc.Defaults()
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Defaults fetched successfully", DefaultsResponse{
			BaseCurrency: base,
			HomeCurrency: home,
			Methodology:  m,
			ZakatRate:    money.ZakatRate.String(),
		})
	}
}

// Prices returns a Fiber handler that reports the snapshot in use.
func Prices(svc *zakatsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		quote, err := svc.Prices(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load prices", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Prices fetched successfully", quote)
	}
}
