package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	errorCodeSessionNotFound    = "session_not_found"
	errorCodeSubmissionNotFound = "submission_not_found"
	errorCodeValidation         = "validation"
	errorCodeMinimumBabies      = "minimum_babies"
	errorCodeBabyNotFound       = "baby_not_found"
	errorCodeCompleted          = "completed"
	errorCodeInvalidInput       = "invalid_input"
	errorCodeUnknownConcern     = "unknown_concern"
	errorCodeTooManySessions    = "too_many_sessions"
	errorCodeGeneric            = "generic"
)

// apiError renders {"error": code, "message": localized text}.
func apiError(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": errorMessage(currentMessages(c), code),
	})
}

func errorMessage(messages map[string]string, code string) string {
	key := "onboarding.error." + code
	if message := translateMessage(messages, key); message != key {
		return message
	}
	return strings.ReplaceAll(code, "_", " ")
}
