package db

import (
	"github.com/terraincognita07/parentsphere/internal/models"
	"gorm.io/gorm"
)

type SubmissionRepository struct {
	database *gorm.DB
}

func NewSubmissionRepository(database *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{database: database}
}

func (repo *SubmissionRepository) Create(submission *models.Submission) error {
	return repo.database.Create(submission).Error
}

func (repo *SubmissionRepository) FindByPublicID(publicID string) (models.Submission, error) {
	var submission models.Submission
	if err := repo.database.Where("public_id = ?", publicID).First(&submission).Error; err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

// ListRecent returns submissions newest first. A non-positive limit returns all rows.
func (repo *SubmissionRepository) ListRecent(limit int) ([]models.Submission, error) {
	query := repo.database.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	submissions := make([]models.Submission, 0)
	if err := query.Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (repo *SubmissionRepository) Count() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Submission{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
