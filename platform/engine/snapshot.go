package engine

import (
	"time"

	"github.com/mag8888/ratrace-backend/platform/board"
	"github.com/mag8888/ratrace-backend/platform/deck"
)

// PlayerView is the per-player slice of a snapshot, with the derived
// financial fields clients render but never compute.
type PlayerView struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Glyph    string     `json:"glyph"`
	Ring     board.Ring `json:"ring"`
	Position int        `json:"position"`

	Cash            int `json:"cash"`
	Salary          int `json:"salary"`
	PassiveIncome   int `json:"passiveIncome"`
	Expenses        int `json:"expenses"`
	Cashflow        int `json:"cashflow"`
	LoanBalance     int `json:"loanBalance"`
	AvailableCredit int `json:"availableCredit"`
	Children        int `json:"children"`

	Assets   []*Asset `json:"assets"`
	Bankrupt bool     `json:"bankrupt"`

	DreamIndex   int `json:"dreamIndex"`
	CharityTurns int `json:"charityTurns"`
	SkipTurns    int `json:"skipTurns"`
}

// Snapshot is the full client-facing session state broadcast after every
// successful command. Expiries ship as absolute timestamps; clients only
// render countdowns from them.
type Snapshot struct {
	RoomID       string    `json:"roomId"`
	Phase        Phase     `json:"phase"`
	TurnIndex    int       `json:"turnIndex"`
	TurnOwner    string    `json:"turnOwner"`
	TurnDeadline time.Time `json:"turnDeadline"`
	LastRoll     int       `json:"lastRoll"`
	Winner       string    `json:"winner,omitempty"`

	Players   []PlayerView   `json:"players"`
	RatRace   []board.Square `json:"ratRace"`
	FastTrack []board.Square `json:"fastTrack"`

	CurrentCard *deck.Card `json:"currentCard,omitempty"`
	Offers      []*Offer   `json:"offers"`

	Transactions []Transaction `json:"transactions"`
	Events       []string      `json:"events"`
}

func (r *Room) Snapshot() *Snapshot {
	now := time.Now()
	snap := &Snapshot{
		RoomID:       r.ID,
		Phase:        r.phase,
		TurnIndex:    r.turnIdx,
		TurnOwner:    r.current().ID,
		TurnDeadline: r.deadline,
		LastRoll:     r.lastRoll,
		Winner:       r.winnerID,
		RatRace:      board.Squares(board.RatRace),
		FastTrack:    board.Squares(board.FastTrack),
		Offers:       r.market.List(now),
		Transactions: r.journal.Transactions(),
		Events:       r.journal.Events(),
	}
	for _, p := range r.players {
		assets := make([]*Asset, len(p.Assets))
		copy(assets, p.Assets)
		snap.Players = append(snap.Players, PlayerView{
			ID:              p.ID,
			Name:            p.Name,
			Glyph:           p.Glyph,
			Ring:            p.Ring,
			Position:        p.Position,
			Cash:            p.Cash,
			Salary:          p.Salary,
			PassiveIncome:   p.PassiveIncome(),
			Expenses:        r.ledger.Expenses(p),
			Cashflow:        r.ledger.Cashflow(p),
			LoanBalance:     p.LoanBalance,
			AvailableCredit: r.ledger.AvailableCredit(p),
			Children:        p.Children,
			Assets:          assets,
			Bankrupt:        p.Bankrupt,
			DreamIndex:      p.DreamIndex,
			CharityTurns:    p.CharityTurns,
			SkipTurns:       p.SkipTurns,
		})
	}
	if open := r.market.CurrentFor(r.current().ID); open != nil && !open.Expired(now) {
		card := open.Card
		snap.CurrentCard = &card
	}
	return snap
}
