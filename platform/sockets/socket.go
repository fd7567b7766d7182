package socket

import (
	"encoding/json"
	"net/http"

	"github.com/gomodule/redigo/redis"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"

	"github.com/mag8888/ratrace-backend/app/models"
	"github.com/mag8888/ratrace-backend/platform/cache"
	"github.com/mag8888/ratrace-backend/platform/config"
	"github.com/mag8888/ratrace-backend/platform/database"
	"github.com/mag8888/ratrace-backend/platform/engine"
	"github.com/mag8888/ratrace-backend/platform/logging"
	"github.com/mag8888/ratrace-backend/platform/queries"
)

// gameCmd is the wire payload every in-game event carries. Unused fields
// stay zero; the engine validates per command.
type gameCmd struct {
	Game_id   string `json:"game_id"`
	User_id   string `json:"user_id"`
	Choice    string `json:"choice"`
	Amount    int    `json:"amount"`
	Quantity  int    `json:"quantity"`
	Card_id   string `json:"card_id"`
	Target_id string `json:"target_id"`
	Deck      string `json:"deck"`
	Glyph     string `json:"glyph"`
}

// broadcaster fans engine events out to every socket in the room and closes
// the bookkeeping when a session ends.
type broadcaster struct {
	server  *socketio.Server
	manager *engine.Manager
}

func (b *broadcaster) Broadcast(roomID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error(err)
		return
	}
	b.server.BroadcastToRoom("/", roomID, event, string(data))

	if event == "game-over" {
		db := database.PostgreSQLConnection()
		defer db.Close()
		conn, err := cache.CreateRedisConnection()
		if err == nil {
			defer conn.Close()
			queries.MarkFinished(roomID, db, &conn)
		}
		b.manager.Remove(roomID)
	}
}

// broadcastRoster pushes the current presence list to everyone in the room.
func broadcastRoster(server *socketio.Server, roomID string, conn *redis.Conn) {
	members, err := queries.RoomMembers(roomID, conn)
	if err != nil {
		logging.Error(err)
		return
	}
	data, _ := json.Marshal(members)
	server.BroadcastToRoom("/", roomID, "room-state-updated", string(data))
}

// CreateSocketIOServer wires the realtime command surface. It returns the
// session manager (shared with the HTTP fallbacks) and a blocking serve
// function for the socket listener.
func CreateSocketIOServer(rules config.Rules) (*engine.Manager, func() error) {
	server, err := socketio.NewServer(nil)
	if err != nil {
		panic(err)
	}

	db := database.PostgreSQLConnection()
	pool := cache.CreateRedisPool()

	b := &broadcaster{server: server}
	manager := engine.NewManager(rules, b)
	b.manager = manager

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "join-game", func(s socketio.Conn, jsonStr string) {
		var dto gameCmd
		if err := json.Unmarshal([]byte(jsonStr), &dto); err != nil {
			s.Emit("error-message", "Bad payload")
			return
		}
		if !queries.VerifyRoom(dto.Game_id, db) {
			s.Emit("error-message", "Invalid game")
			s.Emit("failed")
			return
		}
		user, err := queries.GetUserData(dto.User_id, db)
		if err != nil {
			s.Emit("error-message", "User not authenticated")
			s.Emit("failed")
			return
		}

		conn := pool.Get()
		defer conn.Close()
		err = queries.JoinRoom(models.Player{
			Room_id:  dto.Game_id,
			User_id:  dto.User_id,
			Username: user.Email,
			Glyph:    dto.Glyph,
		}, db, &conn)
		if err != nil {
			s.Emit("error-message", "Failed joining room")
			s.Emit("failed")
			return
		}

		s.Join(dto.Game_id)
		broadcastRoster(server, dto.Game_id, &conn)
		s.Emit("joined-game", dto.Game_id)
		logging.WithFields(map[string]interface{}{"room": dto.Game_id, "user": dto.User_id}).Info("joined room")
	})

	server.OnEvent("/", "leave-game", func(s socketio.Conn, jsonStr string) {
		var dto gameCmd
		if err := json.Unmarshal([]byte(jsonStr), &dto); err != nil {
			return
		}
		conn := pool.Get()
		defer conn.Close()

		s.Leave(dto.Game_id)
		queries.LeaveRoom(dto.User_id, dto.Game_id, db, &conn)
		broadcastRoster(server, dto.Game_id, &conn)
	})

	server.OnEvent("/", "start-game", func(s socketio.Conn, gameID string) {
		conn := pool.Get()
		defer conn.Close()

		seats, err := queries.StartRoom(gameID, db, &conn)
		if err != nil {
			s.Emit("error-message", "Unable to start game")
			return
		}
		if _, err := manager.Create(gameID, seats); err != nil {
			s.Emit("error-message", "Unable to start game")
		}
	})

	// in-game commands all funnel into the room actor
	bind := func(event string, cmdType engine.CmdType) {
		server.OnEvent("/", event, func(s socketio.Conn, jsonStr string) {
			var dto gameCmd
			if err := json.Unmarshal([]byte(jsonStr), &dto); err != nil {
				s.Emit("error-message", "Bad payload")
				return
			}
			payload, err := manager.Dispatch(dto.Game_id, engine.Command{
				Player:   dto.User_id,
				Type:     cmdType,
				Choice:   dto.Choice,
				Amount:   dto.Amount,
				Quantity: dto.Quantity,
				CardID:   dto.Card_id,
				Target:   dto.Target_id,
				Deck:     dto.Deck,
			})
			if err != nil {
				s.Emit("error-message", err.Error())
				return
			}
			switch cmdType {
			case engine.CmdRequestState:
				data, _ := json.Marshal(payload)
				s.Emit("state-updated", string(data))
			case engine.CmdDeckContent:
				data, _ := json.Marshal(payload)
				s.Emit("deck-content", string(data))
			}
		})
	}

	bind("roll-dice", engine.CmdRollDice)
	bind("draw-deal", engine.CmdDrawDeal)
	bind("resolve-opportunity", engine.CmdDrawDeal)
	bind("buy-asset", engine.CmdBuyAsset)
	bind("sell-asset", engine.CmdSellAsset)
	bind("sell-stock", engine.CmdSellStock)
	bind("take-loan", engine.CmdTakeLoan)
	bind("repay-loan", engine.CmdRepayLoan)
	bind("transfer-funds", engine.CmdTransferFunds)
	bind("transfer-deal", engine.CmdTransferDeal)
	bind("donate-charity", engine.CmdDonateCharity)
	bind("skip-charity", engine.CmdSkipCharity)
	bind("baby-roll", engine.CmdBabyRoll)
	bind("decision-downsized", engine.CmdDownsized)
	bind("mlm-placed", engine.CmdMLMPlaced)
	bind("end-turn", engine.CmdEndTurn)
	bind("request-state", engine.CmdRequestState)
	bind("get-deck-content", engine.CmdDeckContent)

	server.OnError("/", func(s socketio.Conn, e error) {
		logging.Error("socket error: ", e)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		conn := pool.Get()
		defer conn.Close()
		for _, room := range s.Rooms() {
			broadcastRoster(server, room, &conn)
		}
		s.LeaveAll()
	})

	serve := func() error {
		go server.Serve()
		defer server.Close()

		c := cors.New(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowCredentials: true,
		})
		mux := http.NewServeMux()
		mux.Handle("/socket.io/", server)
		return http.ListenAndServe(":8000", c.Handler(mux))
	}
	return manager, serve
}
