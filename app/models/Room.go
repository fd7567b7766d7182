package models

// Room is the lobby record of a game session. Live game state never touches
// the database; only the roster and status do.
type Room struct {
	Id     string
	Name   string
	Status string // "open" | "in progress" | "finished"
}

type RoomCreateDto struct {
	Name string `json:"name"`
}

type VerifyRoomDto struct {
	Code    string `query:"code"`
	User_id string `query:"user_id"`
}

type BabyRollDto struct {
	Game_id string `json:"game_id"`
	User_id string `json:"user_id"`
}
