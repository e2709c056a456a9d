package handlers

import (
	"time"

	"github.com/levelupke/peer_tutor/database"
	"github.com/levelupke/peer_tutor/models"
	"github.com/levelupke/peer_tutor/notifications"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListApplications(c *fiber.Ctx) error {
	query := database.DB.
		Preload("User").
		Preload("Subjects").
		Preload("Availability").
		Order("created_at desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []models.TutorApplication
	if err := query.Find(&applications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve applications"})
	}

	return c.JSON(applications)
}

// ApproveApplication flips the application to approved and, in the same
// transaction, grants the owning user the tutor role and marks them verified.
func ApproveApplication(c *fiber.Ctx) error {
	adminID := callerID(c)
	applicationID := c.Params("id")

	var application models.TutorApplication
	if err := database.DB.First(&application, "id = ?", applicationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", application.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Associated user not found"})
	}

	now := time.Now()
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TutorApplication{}).
			Where("id = ?", application.ID).
			Updates(map[string]interface{}{
				"status":         models.ApplicationApproved,
				"admin_feedback": nil,
				"reviewed_at":    now,
				"reviewed_by":    adminID,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"role":     models.RoleTutor,
				"verified": true,
			}).Error
	})
	if txErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve application"})
	}

	application.Status = models.ApplicationApproved
	application.AdminFeedback = nil
	application.ReviewedAt = &now
	application.ReviewedBy = &adminID
	user.Role = models.RoleTutor
	user.Verified = true

	go notifications.SendEmail(
		user.FullName,
		user.Email,
		"Your Tutor Application has been Approved!",
		"<h1>Congratulations!</h1><p>Your application to become a tutor has been approved. Students can now find your profile and book your available slots.</p>",
	)

	return c.JSON(fiber.Map{"message": "Application approved successfully", "application": application})
}

type RejectRequest struct {
	Feedback string `json:"feedback" validate:"required,min=10"`
}

func RejectApplication(c *fiber.Ctx) error {
	adminID := callerID(c)
	applicationID := c.Params("id")

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var application models.TutorApplication
	if err := database.DB.Preload("User").First(&application, "id = ?", applicationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}

	now := time.Now()
	err := database.DB.Model(&models.TutorApplication{}).
		Where("id = ?", application.ID).
		Updates(map[string]interface{}{
			"status":         models.ApplicationRejected,
			"admin_feedback": req.Feedback,
			"reviewed_at":    now,
			"reviewed_by":    adminID,
		}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reject application"})
	}

	application.Status = models.ApplicationRejected
	application.AdminFeedback = &req.Feedback
	application.ReviewedAt = &now
	application.ReviewedBy = &adminID

	go notifications.SendEmail(
		application.User.FullName,
		application.User.Email,
		"Update on Your Tutor Application",
		"<h1>Application Update</h1><p>We regret to inform you that your tutor application was not approved at this time.</p><p><b>Feedback:</b> "+req.Feedback+"</p>",
	)

	return c.JSON(fiber.Map{"message": "Application rejected", "application": application})
}
