package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/parentsphere/internal/services"
	"go.uber.org/zap"
)

func (handler *Handler) GetSubmission(c *fiber.Ctx) error {
	handler.ensureDependencies()

	submission, err := handler.submissionService.Find(c.Params("id"))
	if errors.Is(err, services.ErrSubmissionNotFound) {
		return apiError(c, fiber.StatusNotFound, errorCodeSubmissionNotFound)
	}
	if err != nil {
		handler.logger.Error("load submission failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, errorCodeGeneric)
	}
	return c.JSON(submission)
}
