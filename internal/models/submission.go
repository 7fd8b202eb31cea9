package models

import "time"

type SubmissionBaby struct {
	Name      string `json:"name" yaml:"name"`
	Gender    string `json:"gender" yaml:"gender"`
	Birthdate string `json:"birthdate,omitempty" yaml:"birthdate,omitempty"`
	Weight    string `json:"weight,omitempty" yaml:"weight,omitempty"`
	Height    string `json:"height,omitempty" yaml:"height,omitempty"`
}

// Submission is a finished onboarding profile as stored after the wizard completes.
type Submission struct {
	ID                 uint             `gorm:"primaryKey" json:"-" yaml:"-"`
	PublicID           string           `gorm:"uniqueIndex;not null" json:"id" yaml:"id"`
	FullName           string           `gorm:"not null" json:"full_name" yaml:"full_name"`
	DateOfBirth        string           `gorm:"not null" json:"date_of_birth" yaml:"date_of_birth"`
	ParentLevel        string           `gorm:"not null" json:"parent_level" yaml:"parent_level"`
	Babies             []SubmissionBaby `gorm:"serializer:json" json:"babies" yaml:"babies"`
	Concerns           []string         `gorm:"serializer:json" json:"concerns" yaml:"concerns"`
	CheckInTime        string           `gorm:"not null" json:"check_in_time" yaml:"check_in_time"`
	EmailNotifications bool             `gorm:"not null" json:"email_notifications" yaml:"email_notifications"`
	PushNotifications  bool             `gorm:"not null" json:"push_notifications" yaml:"push_notifications"`
	Language           string           `gorm:"not null;default:en" json:"language" yaml:"language"`
	CreatedAt          time.Time        `json:"created_at" yaml:"created_at"`
}
