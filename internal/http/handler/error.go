package handler

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/LawUtilities/ADMS.API-sub003/internal/http/middleware"
	"github.com/LawUtilities/ADMS.API-sub003/internal/service"
	"github.com/LawUtilities/ADMS.API-sub003/internal/validation"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// validationPayload extends the error body with the individual rule failures
// so a client can show per-field messages.
type validationPayload struct {
	RequestID string              `json:"request_id"`
	Error     errorEnvelope       `json:"error"`
	Failures  validation.Failures `json:"failures"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeValidationError writes the failure list collected by the request DTOs.
func writeValidationError(c *fiber.Ctx, failures validation.Failures) error {
	res := validationPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    "VALIDATION_FAILED",
			Message: "request failed validation",
		},
		Failures: failures,
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(res)
}

// writeServiceError translates service-layer errors into standardized responses.
// Unrecognized errors collapse to a generic 500 so internals never leak.
func writeServiceError(c *fiber.Ctx, err error) error {
	if failures, ok := validation.AsFailures(err); ok {
		return writeValidationError(c, failures)
	}

	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrRevisionNumberMismatch):
		return writeError(c, fiber.StatusBadRequest, "REVISION_NUMBER_MISMATCH", "revision number does not match the request path")
	case errors.Is(err, service.ErrMatterNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "matter not found")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrRevisionNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "revision not found")
	case errors.Is(err, sql.ErrNoRows):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrMatterArchived):
		return writeError(c, fiber.StatusConflict, "MATTER_ARCHIVED", "matter is archived")
	case errors.Is(err, service.ErrMatterNotArchived):
		return writeError(c, fiber.StatusConflict, "MATTER_NOT_ARCHIVED", "matter is not archived")
	case errors.Is(err, service.ErrMatterNotEmpty):
		return writeError(c, fiber.StatusConflict, "MATTER_NOT_EMPTY", "matter still owns documents")
	case errors.Is(err, service.ErrAlreadyCheckedOut):
		return writeError(c, fiber.StatusConflict, "ALREADY_CHECKED_OUT", "document is already checked out")
	case errors.Is(err, service.ErrNotCheckedOut):
		return writeError(c, fiber.StatusConflict, "NOT_CHECKED_OUT", "document is not checked out")
	case errors.Is(err, service.ErrDocumentCheckedOut):
		return writeError(c, fiber.StatusConflict, "DOCUMENT_CHECKED_OUT", "document is checked out")
	case errors.Is(err, service.ErrChecksumMismatch):
		return writeError(c, fiber.StatusUnprocessableEntity, "CHECKSUM_MISMATCH", "stored content does not match the declared checksum")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
