package handlers

import (
	"errors"

	"github.com/levelupke/peer_tutor/database"
	"github.com/levelupke/peer_tutor/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func GetReviews(c *fiber.Ctx) error {
	tutorID := c.Params("tutorId")

	var reviews []models.Review
	err := database.DB.
		Preload("Student").
		Where("tutor_id = ?", tutorID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve reviews"})
	}

	return c.JSON(reviews)
}

var (
	errAlreadyReviewed = errors.New("you have already reviewed this tutor")
	errMustBookFirst   = errors.New("you must book a session before reviewing this tutor")
)

func CreateReview(c *fiber.Ctx) error {
	studentID := callerID(c)
	tutorID := c.Params("tutorId")

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var tutor models.TutorApplication
	if err := database.DB.First(&tutor, "id = ?", tutorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}

	var newReview models.Review
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Review
		if err := tx.Where("tutor_id = ? AND student_id = ?", tutor.ID, studentID).First(&existing).Error; err == nil {
			return errAlreadyReviewed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var qualifying int64
		if err := tx.Model(&models.Booking{}).
			Where("tutor_id = ? AND student_id = ? AND status IN ?",
				tutor.ID, studentID,
				[]string{models.BookingPending, models.BookingConfirmed, models.BookingCompleted}).
			Count(&qualifying).Error; err != nil {
			return err
		}
		if qualifying == 0 {
			return errMustBookFirst
		}

		newReview = models.Review{
			TutorID:   tutor.ID,
			StudentID: studentID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := tx.Create(&newReview).Error; err != nil {
			return err
		}

		// Keep the denormalized aggregate on the profile in step with the
		// review set instead of rescanning reviews on every listing.
		var agg struct {
			Avg   float64
			Total int64
		}
		if err := tx.Model(&models.Review{}).
			Where("tutor_id = ?", tutor.ID).
			Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as total").
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.TutorApplication{}).
			Where("id = ?", tutor.ID).
			Updates(map[string]interface{}{"avg_rating": agg.Avg, "rating_count": agg.Total}).Error
	})
	if txErr != nil {
		if errors.Is(txErr, errAlreadyReviewed) || errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errAlreadyReviewed.Error()})
		}
		if errors.Is(txErr, errMustBookFirst) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errMustBookFirst.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}

	return c.Status(fiber.StatusCreated).JSON(newReview)
}
