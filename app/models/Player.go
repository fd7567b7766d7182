package models

// Player is a lobby roster row: who sits in which room. The engine builds
// its seats from these rows when the game starts.
type Player struct {
	User_id  string
	Room_id  string
	Username string
	Glyph    string
}
