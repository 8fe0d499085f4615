// Package common holds the response envelope, RFC 9457 problem details and
// request binding shared by every route group.
package common

import (
	"context"
	"errors"

	"github.com/amirasaad/zakat/pkg/currency"
	"github.com/amirasaad/zakat/pkg/money"
	"github.com/amirasaad/zakat/pkg/provider"
	zakatsvc "github.com/amirasaad/zakat/pkg/service/zakat"
	"github.com/amirasaad/zakat/pkg/zakat"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes err as application/problem+json. The status is
// derived from err unless one is given.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, status ...int) error {
	code := ErrorToStatusCode(err)
	if len(status) > 0 {
		code = status[0]
	}
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   code,
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Detail = err.Error()
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]FieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, FieldError{Field: fe.Namespace(), Rule: fe.Tag(), Param: fe.Param()})
			}
			pd.Errors = fields
		}
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(code).JSON(pd)
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &fe):
		return fe.Code
	case errors.As(err, &verrs):
		return fiber.StatusBadRequest
	case errors.Is(err, zakat.ErrInvalidHolding),
		errors.Is(err, zakat.ErrInvalidMethodology),
		errors.Is(err, zakat.ErrInvalidBaseCurrency),
		errors.Is(err, zakat.ErrUnknownPreset),
		errors.Is(err, money.ErrInvalidCurrency),
		errors.Is(err, currency.ErrUnsupportedCurrency),
		errors.Is(err, zakatsvc.ErrMissingRate):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, provider.ErrSnapshotUnavailable),
		errors.Is(err, provider.ErrProviderUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		_ = ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
		return nil, err
	}
	return &input, nil
}

// Validate checks a struct that was not bound from the body, such as a parsed query.
func Validate(v any) error {
	return validate.Struct(v)
}
