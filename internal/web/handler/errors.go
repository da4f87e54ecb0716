package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dreamboard/dreamboard/internal/apperr"
)

var (
	// ErrInvalidBody is returned for request bodies that cannot be decoded.
	ErrInvalidBody = apperr.New(apperr.ErrValidation, "Invalid request body")
	// ErrNilDependency is returned by Init when app, cfg or a required dependency is nil.
	ErrNilDependency = errors.New(ErrNilACDFatalLogMsg)
)

// ErrorResponse is the body of every failed JSON request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler renders errors as JSON {"error": message}.
// Internal failures are logged and answered with an opaque message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse{Error: fiberErr.Message})
	}

	status, message := apperr.Status(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}

// ParseBody decodes the request body, decode failures are validation errors.
func ParseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		log.Debug().Err(err).Str("path", c.Path()).Msg("invalid request body")
		return ErrInvalidBody
	}

	return nil
}
