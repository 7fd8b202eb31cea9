package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/parentsphere/internal/db"
	"github.com/terraincognita07/parentsphere/internal/i18n"
	"github.com/terraincognita07/parentsphere/internal/onboarding"
	"github.com/terraincognita07/parentsphere/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool
	sessionTTL   time.Duration
	i18n         *i18n.Manager
	logger       *zap.Logger
	now          func() time.Time

	sessionStarts *attemptLimiter

	repositories      *db.Repositories
	submissionService *services.SubmissionService
	onboardingService *services.OnboardingService
}

const defaultSessionTokenTTL = 7 * 24 * time.Hour

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type toggleConcernInput struct {
	Tag string `json:"tag" form:"tag"`
}

type validationErrorResponse struct {
	Error    string                   `json:"error"`
	Message  string                   `json:"message"`
	Step     string                   `json:"step"`
	Fields   map[string]string        `json:"fields"`
	Problems map[string]string        `json:"problems"`
	Snapshot services.SessionSnapshot `json:"snapshot"`
}

type concernResponse struct {
	onboarding.Concern
	Selected bool `json:"selected,omitempty"`
}
