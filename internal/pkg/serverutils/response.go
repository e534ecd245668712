package serverutils

import (
	"errors"

	"ai-pitch-evaluator-be/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the JSON shape of every error reply.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func ErrorResponse(message string) ErrorBody {
	return ErrorBody{Error: message}
}

func ErrorWithDetails(message, details string) ErrorBody {
	return ErrorBody{Error: message, Details: details}
}

// StatusFor maps an error onto an HTTP status.
func StatusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	if apperr.Is(err, apperr.KindValidation) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// RespondError renders err. Validation failures show their own message;
// everything else shows publicMessage, with the error text as details
// when withDetails is set.
func RespondError(ctx *fiber.Ctx, err error, publicMessage string, withDetails bool) error {
	status := StatusFor(err)
	if status < fiber.StatusInternalServerError {
		return ctx.Status(status).JSON(ErrorResponse(clientMessage(err)))
	}
	body := ErrorResponse(publicMessage)
	if withDetails {
		body.Details = err.Error()
	}
	return ctx.Status(status).JSON(body)
}

func clientMessage(err error) string {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}
