package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	RoleLearner = "learner"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'learner'" json:"role"`
	Verified bool      `gorm:"default:false" json:"verified"`

	Major    *string        `gorm:"size:100" json:"major,omitempty"`
	Year     *int           `json:"year,omitempty"`
	Subjects pq.StringArray `gorm:"type:text[]" json:"subjects,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
