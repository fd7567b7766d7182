package queries

import (
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/gomodule/redigo/redis"

	"github.com/mag8888/ratrace-backend/app/models"
	"github.com/mag8888/ratrace-backend/platform/cache"
	"github.com/mag8888/ratrace-backend/platform/engine"
)

var defaultGlyphs = []string{"🐭", "🐱", "🐶", "🦊", "🐻", "🦁", "🐸", "🦉"}

func VerifyRoom(id string, db *pg.DB) bool {
	room := &models.Room{Id: id}
	return db.Model(room).WherePK().Select() == nil
}

func GetUserData(userID string, db *pg.DB) (*models.User, error) {
	user := &models.User{Id: userID}
	if err := db.Model(user).WherePK().Select(); err != nil {
		return nil, err
	}
	return user, nil
}

// JoinRoom persists the roster row and tracks presence in redis.
func JoinRoom(player models.Player, db *pg.DB, conn *redis.Conn) error {
	if _, err := db.Model(&player).Insert(); err != nil {
		return err
	}
	if err := cache.RPUSH(membersKey(player.Room_id), player.User_id, conn); err != nil {
		return err
	}
	if player.Glyph != "" {
		return cache.HSET(glyphsKey(player.Room_id), player.User_id, player.Glyph, conn)
	}
	return nil
}

// LeaveRoom drops the roster row and presence; the room itself is removed
// when the last member leaves.
func LeaveRoom(userID, roomID string, db *pg.DB, conn *redis.Conn) error {
	player := new(models.Player)
	if _, err := db.Model(player).Where("user_id = ? and room_id = ?", userID, roomID).Delete(); err != nil {
		return err
	}
	if err := cache.LREM(membersKey(roomID), userID, conn); err != nil {
		return err
	}
	left, err := cache.LLEN(membersKey(roomID), conn)
	if err == nil && left == 0 {
		CleanupRoom(roomID, db, conn)
	}
	return nil
}

// RoomMembers reads the live presence list from redis.
func RoomMembers(roomID string, conn *redis.Conn) ([]string, error) {
	return cache.LMEMBERS(membersKey(roomID), conn)
}

func RoomPlayers(roomID string, db *pg.DB) ([]models.Player, error) {
	var players []models.Player
	err := db.Model(&players).Where("room_id = ?", roomID).Select()
	return players, err
}

// StartRoom flips the lobby record to in-progress and returns the seats the
// engine room is built from. Fails when fewer than two players joined.
func StartRoom(roomID string, db *pg.DB, conn *redis.Conn) ([]engine.Seat, error) {
	players, err := RoomPlayers(roomID, db)
	if err != nil {
		return nil, err
	}
	if len(players) < 2 {
		return nil, engine.ErrTooFewSeats
	}

	seats := make([]engine.Seat, 0, len(players))
	for i, p := range players {
		glyph, err := cache.HGET(glyphsKey(roomID), p.User_id, conn)
		if err != nil || glyph == "" {
			glyph = defaultGlyphs[i%len(defaultGlyphs)]
		}
		seats = append(seats, engine.Seat{ID: p.User_id, Name: p.Username, Glyph: glyph})
	}

	room := &models.Room{Id: roomID}
	if _, err := db.Model(room).WherePK().Set("status = ?", "in progress").Update(); err != nil {
		return nil, err
	}
	if err := cache.Set(statusKey(roomID), "in progress", conn); err != nil {
		return nil, err
	}
	return seats, nil
}

func MarkFinished(roomID string, db *pg.DB, conn *redis.Conn) {
	room := &models.Room{Id: roomID}
	db.Model(room).WherePK().Set("status = ?", "finished").Update()
	cache.Set(statusKey(roomID), "finished", conn)
}

// CleanupRoom wipes every trace of a room from pg and redis.
func CleanupRoom(roomID string, db *pg.DB, conn *redis.Conn) {
	player := new(models.Player)
	room := new(models.Room)
	db.Model(player).Where("room_id = ?", roomID).Delete()
	db.Model(room).Where("id = ?", roomID).Delete()
	cache.Del(membersKey(roomID), conn)
	cache.Del(glyphsKey(roomID), conn)
	cache.Del(statusKey(roomID), conn)
}

func membersKey(roomID string) string { return fmt.Sprintf("%s.members", roomID) }
func glyphsKey(roomID string) string  { return fmt.Sprintf("%s.glyphs", roomID) }
func statusKey(roomID string) string  { return fmt.Sprintf("%s.status", roomID) }
