package db

import "gorm.io/gorm"

type Repositories struct {
	Submissions *SubmissionRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Submissions: NewSubmissionRepository(database),
	}
}
