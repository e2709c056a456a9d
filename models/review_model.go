package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TutorID   uuid.UUID `gorm:"type:uuid;not null;index:idx_reviews_tutor_student,unique" json:"tutor_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_reviews_tutor_student,unique" json:"student_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`

	Student User `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
