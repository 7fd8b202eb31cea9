package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/parentsphere/internal/i18n"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secret string, i18nManager *i18n.Manager, cookieSecure bool, sessionTTL time.Duration, logger *zap.Logger) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if secret == "" {
		return nil, errors.New("secret key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		cookieSecure: cookieSecure,
		sessionTTL:   sessionTTL,
		i18n:         i18nManager,
		logger:       logger.Named("api"),
		now:          time.Now,

		sessionStarts: newAttemptLimiter(),
	}
	return handler.withDependencies(database), nil
}
