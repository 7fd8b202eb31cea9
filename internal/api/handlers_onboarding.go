package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/parentsphere/internal/onboarding"
	"github.com/terraincognita07/parentsphere/internal/services"
	"go.uber.org/zap"
)

const (
	inputDateLayout = "2006-01-02"
	inputTimeLayout = "15:04"
)

func (handler *Handler) GetConcerns(c *fiber.Ctx) error {
	handler.ensureDependencies()

	selected := map[string]bool{}
	if sessionID := handler.optionalSessionID(c); sessionID != "" {
		if snapshot, err := handler.onboardingService.Snapshot(sessionID); err == nil {
			for _, tag := range snapshot.Record.Concerns {
				selected[tag] = true
			}
		}
	}

	catalog := onboarding.ConcernCatalog()
	response := make([]concernResponse, 0, len(catalog))
	for _, concern := range catalog {
		response = append(response, concernResponse{Concern: concern, Selected: selected[concern.Tag]})
	}
	return c.JSON(response)
}

func (handler *Handler) StartOnboarding(c *fiber.Ctx) error {
	handler.ensureDependencies()

	client, now := clientKey(c), handler.now()
	if handler.sessionStarts.exceeded(client, now, sessionStartLimit, sessionStartWindow) {
		handler.logger.Warn("onboarding session start rate limited", zap.String("client", client))
		return apiError(c, fiber.StatusTooManyRequests, errorCodeTooManySessions)
	}

	sessionID, snapshot, err := handler.onboardingService.Start(currentLanguage(c))
	if err != nil {
		handler.logger.Error("start onboarding session failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, errorCodeGeneric)
	}
	if err := handler.setSessionCookie(c, sessionID); err != nil {
		handler.logger.Error("sign onboarding session failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, errorCodeGeneric)
	}
	handler.sessionStarts.record(client, now, sessionStartWindow)
	return c.Status(fiber.StatusCreated).JSON(snapshot)
}

func (handler *Handler) GetOnboarding(c *fiber.Ctx) error {
	handler.ensureDependencies()

	sessionID, ok := currentSessionID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, errorCodeSessionNotFound)
	}
	snapshot, err := handler.onboardingService.Snapshot(sessionID)
	return handler.respondSnapshot(c, snapshot, err)
}

func (handler *Handler) UpdateRecord(c *fiber.Ctx) error {
	patch := onboarding.Patch{}
	if err := c.BodyParser(&patch); err != nil {
		return apiError(c, fiber.StatusBadRequest, errorCodeInvalidInput)
	}
	if code := validatePatchInput(patch); code != "" {
		return apiError(c, fiber.StatusBadRequest, code)
	}
	return handler.dispatch(c, onboarding.Update{Patch: patch})
}

func (handler *Handler) AddBaby(c *fiber.Ctx) error {
	return handler.dispatch(c, onboarding.AddBaby{})
}

func (handler *Handler) UpdateBaby(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, errorCodeInvalidInput)
	}

	patch := onboarding.BabyPatch{}
	if err := c.BodyParser(&patch); err != nil {
		return apiError(c, fiber.StatusBadRequest, errorCodeInvalidInput)
	}
	if !validBabyPatchInput(patch) {
		return apiError(c, fiber.StatusBadRequest, errorCodeInvalidInput)
	}
	return handler.dispatch(c, onboarding.UpdateBaby{Index: index, Patch: patch})
}

func (handler *Handler) RemoveBaby(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, errorCodeInvalidInput)
	}
	return handler.dispatch(c, onboarding.RemoveBaby{Index: index})
}

func (handler *Handler) ToggleConcern(c *fiber.Ctx) error {
	input := toggleConcernInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, errorCodeInvalidInput)
	}
	if !onboarding.IsCatalogConcern(input.Tag) {
		return apiError(c, fiber.StatusBadRequest, errorCodeUnknownConcern)
	}
	return handler.dispatch(c, onboarding.ToggleConcern{Tag: input.Tag})
}

func (handler *Handler) NextStep(c *fiber.Ctx) error {
	handler.ensureDependencies()

	// The submission is stored in whatever language the client finishes in.
	if sessionID, ok := currentSessionID(c); ok {
		if err := handler.onboardingService.SetLanguage(sessionID, currentLanguage(c)); err != nil {
			return handler.respondSnapshot(c, services.SessionSnapshot{}, err)
		}
	}
	return handler.dispatch(c, onboarding.Advance{})
}

func (handler *Handler) PreviousStep(c *fiber.Ctx) error {
	return handler.dispatch(c, onboarding.Retreat{})
}

func (handler *Handler) dispatch(c *fiber.Ctx, event onboarding.Event) error {
	handler.ensureDependencies()

	sessionID, ok := currentSessionID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, errorCodeSessionNotFound)
	}
	snapshot, err := handler.onboardingService.Dispatch(sessionID, event)
	return handler.respondSnapshot(c, snapshot, err)
}

func (handler *Handler) respondSnapshot(c *fiber.Ctx, snapshot services.SessionSnapshot, err error) error {
	if err == nil {
		return c.JSON(snapshot)
	}

	var validation *onboarding.ValidationErrors
	switch {
	case errors.As(err, &validation):
		messages := currentMessages(c)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(validationErrorResponse{
			Error:    errorCodeValidation,
			Message:  errorMessage(messages, errorCodeValidation),
			Step:     validation.Step.String(),
			Fields:   localizeFieldErrors(messages, snapshot.Errors),
			Problems: snapshot.Errors,
			Snapshot: snapshot,
		})
	case errors.Is(err, services.ErrSessionNotFound):
		handler.clearSessionCookie(c)
		return apiError(c, fiber.StatusNotFound, errorCodeSessionNotFound)
	case errors.Is(err, onboarding.ErrMinimumViolation):
		return apiError(c, fiber.StatusConflict, errorCodeMinimumBabies)
	case errors.Is(err, onboarding.ErrBabyIndexOutOfRange):
		return apiError(c, fiber.StatusNotFound, errorCodeBabyNotFound)
	case errors.Is(err, onboarding.ErrCompleted):
		return apiError(c, fiber.StatusConflict, errorCodeCompleted)
	default:
		handler.logger.Error("onboarding request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return apiError(c, fiber.StatusInternalServerError, errorCodeGeneric)
	}
}

// validatePatchInput rejects values the wizard would accept but no client
// control can produce. It returns an error code or "".
func validatePatchInput(patch onboarding.Patch) string {
	if patch.ParentLevel != nil && !patch.ParentLevel.Valid() {
		return errorCodeInvalidInput
	}
	if patch.DateOfBirth != nil && !validOptionalDate(*patch.DateOfBirth) {
		return errorCodeInvalidInput
	}
	if patch.CheckInTime != nil {
		if _, err := time.Parse(inputTimeLayout, *patch.CheckInTime); err != nil {
			return errorCodeInvalidInput
		}
	}
	for _, baby := range patch.Babies {
		if !baby.Gender.Valid() || !validOptionalDate(baby.Birthdate) {
			return errorCodeInvalidInput
		}
	}
	for _, tag := range patch.Concerns {
		if !onboarding.IsCatalogConcern(tag) {
			return errorCodeUnknownConcern
		}
	}
	return ""
}

func validBabyPatchInput(patch onboarding.BabyPatch) bool {
	if patch.Gender != nil && !patch.Gender.Valid() {
		return false
	}
	if patch.Birthdate != nil && !validOptionalDate(*patch.Birthdate) {
		return false
	}
	return true
}

// Blank dates are allowed so a field can be cleared; step validation reports them.
func validOptionalDate(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}
	_, err := time.Parse(inputDateLayout, raw)
	return err == nil
}
