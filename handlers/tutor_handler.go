package handlers

import (
	"errors"
	"strconv"

	"github.com/levelupke/peer_tutor/database"
	"github.com/levelupke/peer_tutor/models"
	"github.com/levelupke/peer_tutor/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type SubjectPayload struct {
	Code string `json:"code" validate:"required,min=2,max=20"`
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type SlotPayload struct {
	Day  string `json:"day" validate:"required"`
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

type TutorApplicationRequest struct {
	Bio              string           `json:"bio" validate:"required,min=20"`
	Subjects         []SubjectPayload `json:"subjects" validate:"required,min=1,dive"`
	Experiences      string           `json:"experiences"`
	HourlyRate       float64          `json:"hourlyRate" validate:"required,gte=0"`
	GPA              *float64         `json:"gpa,omitempty" validate:"omitempty,gte=0,lte=5"`
	Location         *string          `json:"location,omitempty"`
	TeachingApproach *string          `json:"teachingApproach,omitempty"`
	StudentBenefits  []string         `json:"studentBenefits,omitempty"`
	Availability     []SlotPayload    `json:"availability" validate:"required,min=1,dive"`
	CertificateURLs  []string         `json:"certificateUrls,omitempty"`
	IDCardURL        *string          `json:"idCardUrl,omitempty"`
}

func validateSlots(slots []SlotPayload) error {
	for _, s := range slots {
		if err := services.ValidateSlot(s.Day, s.From, s.To); err != nil {
			return err
		}
	}
	return nil
}

func ApplyToBeATutor(c *fiber.Ctx) error {
	userID := callerID(c)

	var req TutorApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateSlots(req.Availability); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.TutorApplication
	err := database.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil && existing.Status == models.ApplicationPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You already have a pending application."})
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	subjects := make([]models.ApplicationSubject, 0, len(req.Subjects))
	for _, s := range req.Subjects {
		subjects = append(subjects, models.ApplicationSubject{Code: s.Code, Name: s.Name})
	}
	slots := make([]models.AvailabilitySlot, 0, len(req.Availability))
	for _, s := range req.Availability {
		slots = append(slots, models.AvailabilitySlot{Day: s.Day, From: s.From, To: s.To})
	}

	var application models.TutorApplication
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			application = models.TutorApplication{UserID: userID}
		} else {
			// Re-application after a decision resets the existing row
			// rather than creating a second one per user.
			application = existing
			if delErr := tx.Where("application_id = ?", application.ID).Delete(&models.ApplicationSubject{}).Error; delErr != nil {
				return delErr
			}
			if delErr := tx.Where("application_id = ?", application.ID).Delete(&models.AvailabilitySlot{}).Error; delErr != nil {
				return delErr
			}
		}

		application.Bio = req.Bio
		application.Experiences = req.Experiences
		application.HourlyRate = req.HourlyRate
		application.GPA = req.GPA
		application.Location = req.Location
		application.TeachingApproach = req.TeachingApproach
		application.StudentBenefits = pq.StringArray(req.StudentBenefits)
		application.CertificateURLs = pq.StringArray(req.CertificateURLs)
		application.IDCardURL = req.IDCardURL
		application.Status = models.ApplicationPending
		application.AdminFeedback = nil
		application.ReviewedAt = nil
		application.ReviewedBy = nil
		application.Subjects = subjects
		application.Availability = slots

		return tx.Save(&application).Error
	})
	if txErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit application"})
	}

	return c.JSON(application)
}

type tutorListEntry struct {
	models.TutorApplication
	SessionsCount int64 `json:"sessions_count"`
}

func ListTutors(c *fiber.Ctx) error {
	query := database.DB.
		Preload("User").
		Preload("Subjects").
		Preload("Availability").
		Where("status = ?", models.ApplicationApproved)

	if subject := c.Query("subject"); subject != "" {
		// An application can list the same code twice; the join must not
		// multiply its row.
		query = query.
			Joins("JOIN application_subjects ON application_subjects.application_id = tutor_applications.id").
			Where("application_subjects.code = ?", subject).
			Distinct("tutor_applications.*")
	}
	if minRating := c.Query("min_rating"); minRating != "" {
		if mr, err := strconv.ParseFloat(minRating, 64); err == nil {
			query = query.Where("avg_rating >= ?", mr)
		}
	}

	var tutors []models.TutorApplication
	if err := query.Order("avg_rating desc").Find(&tutors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tutors"})
	}

	// One grouped count instead of a per-tutor scan.
	type sessionCount struct {
		TutorID uuid.UUID
		Total   int64
	}
	var counts []sessionCount
	database.DB.Model(&models.Booking{}).
		Select("tutor_id, COUNT(*) as total").
		Where("status = ?", models.BookingCompleted).
		Group("tutor_id").
		Scan(&counts)

	byTutor := make(map[uuid.UUID]int64, len(counts))
	for _, sc := range counts {
		byTutor[sc.TutorID] = sc.Total
	}

	entries := make([]tutorListEntry, 0, len(tutors))
	for _, t := range tutors {
		entries = append(entries, tutorListEntry{TutorApplication: t, SessionsCount: byTutor[t.ID]})
	}

	return c.JSON(entries)
}

func GetTutorProfile(c *fiber.Ctx) error {
	tutorID := c.Params("id")

	var tutor models.TutorApplication
	err := database.DB.
		Preload("User").
		Preload("Subjects").
		Preload("Availability").
		First(&tutor, "id = ? AND status = ?", tutorID, models.ApplicationApproved).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Approved tutor not found"})
	}

	return c.JSON(tutor)
}

// UpdateMyTutorProfile lets an approved tutor edit their profile in place.
// Edits take effect immediately and never return the application to pending.
func UpdateMyTutorProfile(c *fiber.Ctx) error {
	userID := callerID(c)

	var req TutorApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateSlots(req.Availability); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var application models.TutorApplication
	if err := database.DB.First(&application, "user_id = ? AND status = ?", userID, models.ApplicationApproved).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Approved tutor profile not found"})
	}

	subjects := make([]models.ApplicationSubject, 0, len(req.Subjects))
	for _, s := range req.Subjects {
		subjects = append(subjects, models.ApplicationSubject{Code: s.Code, Name: s.Name})
	}
	slots := make([]models.AvailabilitySlot, 0, len(req.Availability))
	for _, s := range req.Availability {
		slots = append(slots, models.AvailabilitySlot{Day: s.Day, From: s.From, To: s.To})
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ?", application.ID).Delete(&models.ApplicationSubject{}).Error; err != nil {
			return err
		}
		if err := tx.Where("application_id = ?", application.ID).Delete(&models.AvailabilitySlot{}).Error; err != nil {
			return err
		}

		application.Bio = req.Bio
		application.Experiences = req.Experiences
		application.HourlyRate = req.HourlyRate
		application.GPA = req.GPA
		application.Location = req.Location
		application.TeachingApproach = req.TeachingApproach
		application.StudentBenefits = pq.StringArray(req.StudentBenefits)
		application.CertificateURLs = pq.StringArray(req.CertificateURLs)
		application.IDCardURL = req.IDCardURL
		application.Subjects = subjects
		application.Availability = slots

		return tx.Save(&application).Error
	})
	if txErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(application)
}
