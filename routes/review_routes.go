package routes

import (
	"github.com/levelupke/peer_tutor/handlers"
	"github.com/levelupke/peer_tutor/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App) {
	api := app.Group("/api")

	reviews := api.Group("/reviews")
	reviews.Get("/:tutorId", handlers.GetReviews)
	reviews.Post("/:tutorId", middleware.Protected(), handlers.CreateReview)
}
