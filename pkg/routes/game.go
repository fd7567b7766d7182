package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mag8888/ratrace-backend/app/controllers"
)

func GameRoutes(a *fiber.App) {
	route := a.Group("/game")

	route.Post("/create", controllers.CreateRoom)
	route.Get("/verify", controllers.VerifyRoom)
	route.Get("/all", controllers.GetAllAvailRooms)
	route.Get("/find", controllers.FindAvailRoom)
	route.Get("/state", controllers.GetState)
	route.Post("/baby-roll", controllers.BabyRoll)
}
