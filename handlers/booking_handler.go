package handlers

import (
	"errors"
	"fmt"

	"github.com/levelupke/peer_tutor/database"
	"github.com/levelupke/peer_tutor/models"
	"github.com/levelupke/peer_tutor/notifications"
	"github.com/levelupke/peer_tutor/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	Slot        SlotPayload `json:"slot" validate:"required"`
	Subject     string      `json:"subject" validate:"required,min=2,max=100"`
	Duration    int         `json:"duration" validate:"required,min=15,max=480"`
	TotalAmount float64     `json:"totalAmount" validate:"required,gte=0"`
	Notes       *string     `json:"notes,omitempty"`
}

var errSlotTaken = errors.New("this slot is already booked, please choose another time")

func CreateBooking(c *fiber.Ctx) error {
	studentID := callerID(c)
	tutorID := c.Params("tutorId")

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := services.ValidateSlot(req.Slot.Day, req.Slot.From, req.Slot.To); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var tutor models.TutorApplication
	err := database.DB.Preload("User").
		First(&tutor, "id = ? AND status = ?", tutorID, models.ApplicationApproved).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Approved tutor not found"})
	}

	if tutor.UserID == studentID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot book a session with yourself"})
	}

	// The client sends its own total, but the price is derived from the
	// tutor's current hourly rate, never from the payload.
	expected := services.ComputeTotalAmount(tutor.HourlyRate, req.Duration)
	if !services.AmountMatches(req.TotalAmount, expected) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("total amount mismatch: expected %.2f for %d minutes at %.2f/hr", expected, req.Duration, tutor.HourlyRate),
		})
	}

	booking := models.Booking{
		TutorID:     tutor.ID,
		StudentID:   studentID,
		Day:         req.Slot.Day,
		From:        req.Slot.From,
		To:          req.Slot.To,
		Subject:     req.Subject,
		Duration:    req.Duration,
		Notes:       req.Notes,
		TotalAmount: expected,
		Status:      models.BookingPending,
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var held int64
		if err := tx.Model(&models.Booking{}).
			Where("tutor_id = ? AND day = ? AND start_time = ? AND status IN ?",
				tutor.ID, req.Slot.Day, req.Slot.From, models.ActiveBookingStatuses).
			Count(&held).Error; err != nil {
			return err
		}
		if held > 0 {
			return errSlotTaken
		}
		return tx.Create(&booking).Error
	})
	if txErr != nil {
		// Two racing requests can both pass the count; the partial unique
		// index rejects the loser and it surfaces as the same conflict.
		if errors.Is(txErr, errSlotTaken) || errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errSlotTaken.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	go notifications.SendEmail(
		tutor.User.FullName,
		tutor.User.Email,
		"You Have a New Booking Request!",
		fmt.Sprintf("<h1>New Booking</h1><p>A student has requested a %s session on %s at %s. Log in to accept or decline.</p>",
			booking.Subject, booking.Day, booking.From),
	)

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// setBookingStatus is shared by accept and decline. Only the owning tutor
// may transition a booking. There is deliberately no terminal-state guard:
// re-accepting a canceled booking overwrites its status, matching the
// behavior the frontend relies on today.
func setBookingStatus(c *fiber.Ctx, status, subject, body string) error {
	callerUserID := callerID(c)
	bookingID := c.Params("id")

	var booking models.Booking
	err := database.DB.Preload("Tutor").Preload("Student").
		First(&booking, "id = ?", bookingID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if booking.Tutor.UserID != callerUserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the tutor for this booking"})
	}

	err = database.DB.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Update("status", status).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
	}
	booking.Status = status

	go notifications.SendEmail(booking.Student.FullName, booking.Student.Email, subject, body)

	return c.JSON(booking)
}

func AcceptBooking(c *fiber.Ctx) error {
	return setBookingStatus(c, models.BookingConfirmed,
		"Your Booking is Confirmed!",
		"<h1>Booking Confirmed</h1><p>Your tutor has confirmed your session. See you there!</p>")
}

func DeclineBooking(c *fiber.Ctx) error {
	return setBookingStatus(c, models.BookingCanceled,
		"Update on Your Booking",
		"<h1>Booking Declined</h1><p>Unfortunately your tutor is unable to take this session. The slot is open again, so feel free to pick another time.</p>")
}

func HasBooked(c *fiber.Ctx) error {
	studentID := callerID(c)
	tutorID := c.Params("tutorId")

	var count int64
	err := database.DB.Model(&models.Booking{}).
		Where("tutor_id = ? AND student_id = ? AND status IN ?",
			tutorID, studentID, []string{models.BookingPending, models.BookingConfirmed, models.BookingCompleted}).
		Count(&count).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check bookings"})
	}

	return c.JSON(fiber.Map{"hasBooked": count > 0})
}

func GetMyBookings(c *fiber.Ctx) error {
	studentID := callerID(c)

	var bookings []models.Booking
	err := database.DB.
		Preload("Tutor.User").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&bookings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve bookings"})
	}

	return c.JSON(bookings)
}

func GetMyTutorBookings(c *fiber.Ctx) error {
	userID := callerID(c)

	var tutor models.TutorApplication
	if err := database.DB.First(&tutor, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}

	var bookings []models.Booking
	err := database.DB.
		Preload("Student").
		Where("tutor_id = ?", tutor.ID).
		Order("created_at desc").
		Find(&bookings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve bookings"})
	}

	return c.JSON(bookings)
}
