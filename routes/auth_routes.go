package routes

import (
	"github.com/levelupke/peer_tutor/handlers"
	"github.com/levelupke/peer_tutor/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Get("/getUsers", middleware.Protected(), middleware.AdminRequired(), handlers.GetUsers)
	auth.Delete("/:id/delete", middleware.Protected(), middleware.AdminRequired(), handlers.DeleteUser)
}
