package api

import (
	"github.com/gofiber/fiber/v2"
)

const (
	sessionCookieName  = "parentsphere_onboarding"
	languageCookieName = "parentsphere_lang"
	contextSessionKey  = "onboarding_session"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)

func currentSessionID(c *fiber.Ctx) (string, bool) {
	sessionID, ok := c.Locals(contextSessionKey).(string)
	return sessionID, ok && sessionID != ""
}
