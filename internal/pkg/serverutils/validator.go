package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"ai-pitch-evaluator-be/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest runs struct tags and reports failures as a validation
// error naming every offending field.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.New(apperr.KindValidation, "request.Validate", "invalid request", err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return apperr.Validation("request.Validate", strings.Join(parts, "; "))
}

// ParseAndValidate decodes the JSON body into req and validates it.
func ParseAndValidate(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperr.New(apperr.KindValidation, "request.Parse", "invalid request body", err)
	}
	return ValidateRequest(req)
}
