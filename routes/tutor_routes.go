package routes

import (
	"github.com/levelupke/peer_tutor/handlers"
	"github.com/levelupke/peer_tutor/middleware"
	"github.com/gofiber/fiber/v2"
)

func TutorRoutes(app *fiber.App) {
	api := app.Group("/api")

	tutor := api.Group("/tutor")
	tutor.Get("/list", handlers.ListTutors)
	tutor.Post("/apply", middleware.Protected(), handlers.ApplyToBeATutor)
	tutor.Get("/applications", middleware.Protected(), middleware.AdminRequired(), handlers.ListApplications)
	tutor.Put("/profile", middleware.Protected(), middleware.TutorRequired(), handlers.UpdateMyTutorProfile)
	tutor.Patch("/:id/approve", middleware.Protected(), middleware.AdminRequired(), handlers.ApproveApplication)
	tutor.Patch("/:id/reject", middleware.Protected(), middleware.AdminRequired(), handlers.RejectApplication)
	tutor.Get("/:id", handlers.GetTutorProfile)
}
