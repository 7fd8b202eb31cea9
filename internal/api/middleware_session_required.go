package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// SessionRequired resolves the onboarding session from the signed cookie.
func (handler *Handler) SessionRequired(c *fiber.Ctx) error {
	sessionID, err := handler.parseSessionToken(c.Cookies(sessionCookieName))
	if err != nil {
		if !errors.Is(err, errMissingSessionCookie) {
			handler.clearSessionCookie(c)
		}
		return apiError(c, fiber.StatusUnauthorized, errorCodeSessionNotFound)
	}

	c.Locals(contextSessionKey, sessionID)
	return c.Next()
}

func (handler *Handler) optionalSessionID(c *fiber.Ctx) string {
	sessionID, err := handler.parseSessionToken(c.Cookies(sessionCookieName))
	if err != nil {
		return ""
	}
	return sessionID
}
