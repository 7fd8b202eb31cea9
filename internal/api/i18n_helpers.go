package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

// localizeFieldErrors turns {"name[1]": "required"} into
// {"name[1]": "Baby's name is required"} using onboarding.error.<field>.<problem>.
func localizeFieldErrors(messages map[string]string, problems map[string]string) map[string]string {
	localized := make(map[string]string, len(problems))
	for key, problem := range problems {
		field := key
		if bracket := strings.Index(field, "["); bracket >= 0 {
			field = field[:bracket]
		}
		translationKey := "onboarding.error." + field + "." + problem
		message := translateMessage(messages, translationKey)
		if message == translationKey {
			message = problem
		}
		localized[key] = message
	}
	return localized
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return ""
	}
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, ok := c.Locals(contextMessagesKey).(map[string]string)
	if !ok || messages == nil {
		return map[string]string{}
	}
	return messages
}
