package models

import (
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusApplied   ApplicationStatus = "applied"
	ApplicationStatusScreening ApplicationStatus = "screening"
	ApplicationStatusInterview ApplicationStatus = "interview"
	ApplicationStatusOffer     ApplicationStatus = "offer"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

// ValidApplicationStatus reports whether s is a known pipeline stage.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusScreening,
		ApplicationStatusInterview, ApplicationStatusOffer, ApplicationStatusRejected:
		return true
	}
	return false
}

// JobApplication tracks one application through the hiring pipeline.
type JobApplication struct {
	ID        string            `gorm:"type:uuid;primarykey" json:"id"`
	UserID    uint64            `gorm:"not null;index" json:"user_id"`
	Company   string            `gorm:"not null" json:"company"`
	Role      string            `gorm:"not null" json:"role"`
	Status    ApplicationStatus `gorm:"type:varchar(20);not null;default:'applied'" json:"status"`
	URL       string            `json:"url"`
	Notes     string            `gorm:"type:text" json:"notes"`
	AppliedAt time.Time         `gorm:"type:date;not null" json:"applied_at"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
