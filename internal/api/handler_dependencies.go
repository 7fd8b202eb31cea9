package api

import (
	"time"

	"github.com/terraincognita07/parentsphere/internal/db"
	"github.com/terraincognita07/parentsphere/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.submissionService = services.NewSubmissionService(handler.repositories.Submissions, handler.logger)
	handler.onboardingService = services.NewOnboardingService(handler.submissionService, handler.logger, handler.sessionTTL)
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.now == nil {
		handler.now = time.Now
	}
	if handler.sessionStarts == nil {
		handler.sessionStarts = newAttemptLimiter()
	}
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.submissionService == nil {
		handler.submissionService = services.NewSubmissionService(handler.repositories.Submissions, handler.logger)
	}
	if handler.onboardingService == nil {
		handler.onboardingService = services.NewOnboardingService(handler.submissionService, handler.logger, handler.sessionTTL)
	}
}

// OnboardingService exposes the session registry so the host can run its janitor.
func (handler *Handler) OnboardingService() *services.OnboardingService {
	handler.ensureDependencies()
	return handler.onboardingService
}
