package jobs

import (
	"log"
	"time"

	"github.com/levelupke/peer_tutor/database"
	"github.com/levelupke/peer_tutor/models"
)

// Confirmed bookings are treated as held for one weekly cycle; after that
// the session has happened and the slot should open up again.
const completionAge = 7 * 24 * time.Hour

func CompleteElapsedBookings() {
	log.Println("Running job: CompleteElapsedBookings...")

	cutoff := time.Now().Add(-completionAge)

	result := database.DB.Model(&models.Booking{}).
		Where("status = ? AND created_at < ?", models.BookingConfirmed, cutoff).
		Update("status", models.BookingCompleted)
	if result.Error != nil {
		log.Printf("Error completing elapsed bookings: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Marked %d booking(s) as completed", result.RowsAffected)
	}
}
