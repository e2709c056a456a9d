package routes

import (
	"github.com/levelupke/peer_tutor/handlers"
	"github.com/levelupke/peer_tutor/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api")

	upload := api.Group("/upload", middleware.Protected())
	upload.Get("/signature", handlers.GenerateUploadSignature)
}
