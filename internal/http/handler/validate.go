package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LawUtilities/ADMS.API-sub003/internal/validation"
)

// validatable is the shape shared by all request DTOs.
type validatable interface {
	Validate() validation.Failures
}

// parseAndValidate decodes the JSON request body into req and runs its staged
// validation rules. On failure the response has already been written; the
// handler returns the second value and stops.
func parseAndValidate(c *fiber.Ctx, req validatable) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}
	if failures := req.Validate(); len(failures) > 0 {
		return false, writeValidationError(c, failures)
	}
	return true, nil
}
