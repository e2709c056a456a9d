package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/levelupke/peer_tutor/database"
	"github.com/levelupke/peer_tutor/models"
	"github.com/levelupke/peer_tutor/notifications"
	"github.com/levelupke/peer_tutor/services"
)

// SendPendingBookingReminders nudges tutors about booking requests they
// have not answered in a day. The job runs hourly, so the one-hour window
// guarantees each booking triggers exactly one nudge.
func SendPendingBookingReminders() {
	log.Println("Running job: SendPendingBookingReminders...")

	now := time.Now()
	upperBound := now.Add(-24 * time.Hour)
	lowerBound := now.Add(-25 * time.Hour)

	var staleBookings []models.Booking
	err := database.DB.
		Preload("Tutor.User").
		Where("status = ? AND created_at BETWEEN ? AND ?", models.BookingPending, lowerBound, upperBound).
		Find(&staleBookings).Error
	if err != nil {
		log.Printf("Error checking for stale pending bookings: %v", err)
		return
	}

	for _, booking := range staleBookings {
		log.Printf("Sending pending-booking reminder for booking ID: %s", booking.ID)

		when := booking.Day + " at " + booking.From
		if next, err := services.NextOccurrence(booking.Day, booking.From, now); err == nil {
			when = next.Format("Monday, Jan 2 at 15:04")
		}

		emailBody := fmt.Sprintf(
			"<h1>Booking Awaiting Your Response</h1><p>A student requested a %s session for %s over a day ago. Please accept or decline it so they can plan ahead.</p>",
			booking.Subject, when,
		)

		go notifications.SendEmail(
			booking.Tutor.User.FullName,
			booking.Tutor.User.Email,
			"Reminder: You Have a Pending Booking Request",
			emailBody,
		)
	}
}
