package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"golang.org/x/sync/errgroup"

	"github.com/mag8888/ratrace-backend/app/controllers"
	"github.com/mag8888/ratrace-backend/pkg/routes"
	"github.com/mag8888/ratrace-backend/platform/config"
	"github.com/mag8888/ratrace-backend/platform/database"
	"github.com/mag8888/ratrace-backend/platform/logging"
	socket "github.com/mag8888/ratrace-backend/platform/sockets"
)

func main() {
	logging.Init()
	rules := config.Load()

	db := database.PostgreSQLConnection()
	if err := database.EnsureSchema(db); err != nil {
		logging.Fatal(err)
	}
	db.Close()

	app := fiber.New()
	app.Use(cors.New())
	routes.AuthRoutes(app)
	routes.GameRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: controllers.JwtSecret(),
	}))
	app.Get("/user/cur", controllers.Cur)

	manager, serveSockets := socket.CreateSocketIOServer(rules)
	controllers.Rooms = manager

	var g errgroup.Group
	g.Go(serveSockets)
	g.Go(func() error { return app.Listen(":4101") })
	if err := g.Wait(); err != nil {
		logging.Fatal(err)
	}
}
