package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mag8888/ratrace-backend/app/models"
	"github.com/mag8888/ratrace-backend/pkg"
	"github.com/mag8888/ratrace-backend/platform/database"
	"github.com/mag8888/ratrace-backend/platform/engine"
)

// Rooms is the live session index, wired in main before the app listens.
var Rooms *engine.Manager

func CreateRoom(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	roomCreateDto := new(models.RoomCreateDto)
	if err := c.BodyParser(roomCreateDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	room := &models.Room{
		Id:     pkg.RandString(8),
		Name:   roomCreateDto.Name,
		Status: "open",
	}
	if _, err := db.Model(room).Insert(); err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"id": room.Id})
}

func VerifyRoom(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	verifyRoomDto := new(models.VerifyRoomDto)
	if err := c.QueryParser(verifyRoomDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	room := &models.Room{Id: verifyRoomDto.Code}
	if err := db.Model(room).WherePK().Select(); err != nil {
		return c.JSON(fiber.Map{"status": false})
	}
	return c.JSON(fiber.Map{"status": true})
}

func GetAllAvailRooms(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	var rooms []models.Room
	if err := db.Model(&rooms).Where("status = ?", "open").Select(); err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(rooms)
}

func FindAvailRoom(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	room := new(models.Room)
	if err := db.Model(room).Where("status = ?", "open").Limit(1).Select(); err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.JSON(fiber.Map{"id": room.Id})
}

// GetState is the snapshot fallback for clients without a live socket.
func GetState(c *fiber.Ctx) error {
	payload, err := Rooms.Dispatch(c.Query("game_id"), engine.Command{
		Type: engine.CmdRequestState,
	})
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(payload)
}

// BabyRoll is the transport-agnostic fallback for the baby sub-phase; the
// client uses it when the socket channel fails.
func BabyRoll(c *fiber.Ctx) error {
	babyRollDto := new(models.BabyRollDto)
	if err := c.BodyParser(babyRollDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	payload, err := Rooms.Dispatch(babyRollDto.Game_id, engine.Command{
		Player: babyRollDto.User_id,
		Type:   engine.CmdBabyRoll,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"roll": payload})
}
