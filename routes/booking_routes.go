package routes

import (
	"github.com/levelupke/peer_tutor/handlers"
	"github.com/levelupke/peer_tutor/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api")

	book := api.Group("/book", middleware.Protected())
	book.Get("/my", handlers.GetMyBookings)
	book.Get("/tutor", middleware.TutorRequired(), handlers.GetMyTutorBookings)
	book.Get("/hasBooked/:tutorId", handlers.HasBooked)
	book.Put("/accept/:id", handlers.AcceptBooking)
	book.Put("/decline/:id", handlers.DeclineBooking)
	book.Post("/:tutorId", handlers.CreateBooking)
}
