package models

import "github.com/google/uuid"

// AvailabilitySlot is one weekly bookable window on a tutor's profile.
// Times are wall-clock "HH:MM" strings; the list is replaced wholesale
// whenever the tutor edits their profile.
type AvailabilitySlot struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null" json:"-"`
	Day           string    `gorm:"size:10;not null" json:"day"`
	From          string    `gorm:"size:5;not null" json:"from"`
	To            string    `gorm:"size:5;not null" json:"to"`
}
