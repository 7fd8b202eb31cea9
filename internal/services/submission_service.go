package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/parentsphere/internal/models"
	"github.com/terraincognita07/parentsphere/internal/onboarding"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound    = errors.New("submission not found")
	ErrSubmissionPersistFail = errors.New("persist submission failed")
)

const DefaultSubmissionLanguage = "en"

type SubmissionRepository interface {
	Create(submission *models.Submission) error
	FindByPublicID(publicID string) (models.Submission, error)
	ListRecent(limit int) ([]models.Submission, error)
}

type SubmissionService struct {
	submissions SubmissionRepository
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
}

func NewSubmissionService(submissions SubmissionRepository, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		submissions: submissions,
		logger:      logger.Named("submissions"),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Submit stores a finished onboarding record and returns the persisted row.
func (service *SubmissionService) Submit(record onboarding.Record, language string) (models.Submission, error) {
	submission := SubmissionFromRecord(record)
	submission.PublicID = service.newID()
	submission.Language = normalizeSubmissionLanguage(language)
	submission.CreatedAt = service.now().UTC()

	service.logger.Info("onboarding submitted",
		zap.String("submission_id", submission.PublicID),
		zap.String("full_name", submission.FullName),
		zap.String("parent_level", submission.ParentLevel),
		zap.Int("babies", len(submission.Babies)),
		zap.Strings("concerns", submission.Concerns),
		zap.String("check_in_time", submission.CheckInTime),
		zap.Bool("email_notifications", submission.EmailNotifications),
		zap.Bool("push_notifications", submission.PushNotifications),
	)

	if err := service.submissions.Create(&submission); err != nil {
		service.logger.Error("persist submission failed",
			zap.String("submission_id", submission.PublicID),
			zap.Error(err),
		)
		return models.Submission{}, fmt.Errorf("%w: %v", ErrSubmissionPersistFail, err)
	}
	return submission, nil
}

func (service *SubmissionService) Find(publicID string) (models.Submission, error) {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return models.Submission{}, ErrSubmissionNotFound
	}

	submission, err := service.submissions.FindByPublicID(publicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Submission{}, ErrSubmissionNotFound
	}
	if err != nil {
		return models.Submission{}, fmt.Errorf("find submission %s: %w", publicID, err)
	}
	return submission, nil
}

// List returns stored submissions newest first; limit <= 0 means no limit.
func (service *SubmissionService) List(limit int) ([]models.Submission, error) {
	submissions, err := service.submissions.ListRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

func SubmissionFromRecord(record onboarding.Record) models.Submission {
	babies := make([]models.SubmissionBaby, 0, len(record.Babies))
	for _, baby := range record.Babies {
		babies = append(babies, models.SubmissionBaby{
			Name:      strings.TrimSpace(baby.Name),
			Gender:    string(baby.Gender),
			Birthdate: baby.Birthdate,
			Weight:    strings.TrimSpace(baby.Weight),
			Height:    strings.TrimSpace(baby.Height),
		})
	}

	concerns := make([]string, len(record.Concerns))
	copy(concerns, record.Concerns)

	return models.Submission{
		FullName:           strings.TrimSpace(record.FullName),
		DateOfBirth:        record.DateOfBirth,
		ParentLevel:        string(record.ParentLevel),
		Babies:             babies,
		Concerns:           concerns,
		CheckInTime:        record.CheckInTime,
		EmailNotifications: record.EmailNotifications,
		PushNotifications:  record.PushNotifications,
	}
}

func normalizeSubmissionLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return DefaultSubmissionLanguage
	}
	return language
}
