package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// TutorApplication doubles as the live tutor profile once approved.
// One row per user; re-applying after a decision resets the same row.
type TutorApplication struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`
	Bio         string    `gorm:"type:text;not null" json:"bio"`
	Experiences string    `gorm:"type:text" json:"experiences"`
	HourlyRate  float64   `gorm:"type:numeric(10,2);not null" json:"hourly_rate"`
	GPA         *float64  `gorm:"type:numeric(3,2)" json:"gpa,omitempty"`
	Location    *string   `gorm:"size:255" json:"location,omitempty"`

	TeachingApproach *string        `gorm:"type:text" json:"teaching_approach,omitempty"`
	StudentBenefits  pq.StringArray `gorm:"type:text[]" json:"student_benefits,omitempty"`
	CertificateURLs  pq.StringArray `gorm:"type:text[]" json:"certificate_urls,omitempty"`
	IDCardURL        *string        `gorm:"size:512" json:"id_card_url,omitempty"`

	Status        string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	AdminFeedback *string    `gorm:"type:text" json:"admin_feedback,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy    *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`

	AvgRating   float32 `gorm:"default:0" json:"avg_rating"`
	RatingCount int     `gorm:"default:0" json:"rating_count"`

	Subjects     []ApplicationSubject `gorm:"foreignkey:ApplicationID" json:"subjects"`
	Availability []AvailabilitySlot   `gorm:"foreignkey:ApplicationID" json:"availability"`
	User         User                 `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ApplicationSubject struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null" json:"-"`
	Code          string    `gorm:"size:20;not null" json:"code"`
	Name          string    `gorm:"size:100;not null" json:"name"`
}
