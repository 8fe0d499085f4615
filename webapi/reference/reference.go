// Package reference serves the static catalogs a client needs to build a
// calculation request: units, purity standards, presets and currencies.
package reference

import (
	"fmt"

	zakatsvc "github.com/amirasaad/zakat/pkg/service/zakat"
	"github.com/amirasaad/zakat/pkg/units"
	"github.com/amirasaad/zakat/pkg/zakat"
	"github.com/amirasaad/zakat/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers HTTP routes for the reference catalogs.
func Routes(app *fiber.App, svc *zakatsvc.Service) {
	app.Get("/api/units", ListUnits())
	app.Get("/api/purity", ListPurityStandards(svc))
	app.Get("/api/presets", ListPresets())
	app.Get("/api/presets/:id", GetPreset())
	app.Get("/api/currencies", ListCurrencies(svc))
	app.Get("/api/currencies/:code", GetCurrency(svc))
}

// ListUnits returns every supported weight unit.
func ListUnits() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Units fetched successfully", units.Units())
	}
}

// ListPurityStandards returns the karat to purity tables by region.
func ListPurityStandards(svc *zakatsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Purity standards fetched successfully", svc.PurityTable().Standards(),
		)
	}
}

// ListPresets returns the regional presets.
func ListPresets() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Presets fetched successfully", zakat.Presets())
	}
}

// GetPreset returns one regional preset.
func GetPreset() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := zakat.PresetByID(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Preset not found", err, fiber.StatusNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Preset fetched successfully", p)
	}
}

// ListCurrencies returns the active currencies.
func ListCurrencies(svc *zakatsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Currencies fetched successfully", svc.Registry().ListSupported(),
		)
	}
}

// GetCurrency returns currency information by code.
func GetCurrency(svc *zakatsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params("code")
		if err := common.Validate(struct {
			Code string `validate:"len=3,alpha"`
		}{code}); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency code", err)
		}
		meta, err := svc.Registry().Get(code)
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Currency not found", fmt.Errorf("%w: %s", err, code), fiber.StatusNotFound,
			)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency fetched successfully", meta)
	}
}
