package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCanceled  = "canceled"
)

// ActiveBookingStatuses are the statuses that hold a slot against
// further bookings.
var ActiveBookingStatuses = []string{BookingPending, BookingConfirmed}

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TutorID   uuid.UUID `gorm:"type:uuid;not null" json:"tutor_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`

	// Slot copied by value at booking time, not a live reference.
	Day  string `gorm:"size:10;not null" json:"day"`
	From string `gorm:"column:start_time;size:5;not null" json:"from"`
	To   string `gorm:"column:end_time;size:5;not null" json:"to"`

	Subject     string  `gorm:"size:100;not null" json:"subject"`
	Duration    int     `gorm:"not null" json:"duration"`
	Notes       *string `gorm:"type:text" json:"notes,omitempty"`
	TotalAmount float64 `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Status      string  `gorm:"size:20;not null;default:'pending'" json:"status"`

	Tutor   TutorApplication `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`
	Student User             `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
