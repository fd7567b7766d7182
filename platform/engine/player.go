package engine

import (
	"github.com/mag8888/ratrace-backend/platform/board"
)

// Asset is one holding in a player's column. Every acquisition gets a stable
// id; market events later match holdings by symbol (tradable instruments) or
// by title (property), never by guessing.
type Asset struct {
	ID       string `json:"id"`
	CardID   string `json:"cardId"`
	Title    string `json:"title"`
	Symbol   string `json:"symbol,omitempty"`
	Quantity int    `json:"quantity"`
	Cost     int    `json:"cost"`     // per-unit acquisition cost
	Cashflow int    `json:"cashflow"` // monthly, may be negative for liabilities
}

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Glyph string `json:"glyph"`

	Ring     board.Ring `json:"ring"`
	Position int        `json:"position"`

	Cash            int `json:"cash"`
	Salary          int `json:"salary"`
	BaseExpenses    int `json:"baseExpenses"`
	PerChildExpense int `json:"perChildExpense"`
	Children        int `json:"children"`
	LoanBalance     int `json:"loanBalance"`

	Assets   []*Asset `json:"assets"`
	Bankrupt bool     `json:"bankrupt"`

	DreamIndex int `json:"dreamIndex"` // fast track square this player races for

	CharityTurns int `json:"charityTurns"` // remaining turns of the two-dice bonus
	SkipTurns    int `json:"skipTurns"`    // turns to sit out after downsizing
}

// PassiveIncome sums positive asset cashflows.
func (p *Player) PassiveIncome() int {
	total := 0
	for _, a := range p.Assets {
		if a.Cashflow > 0 {
			total += a.Cashflow
		}
	}
	return total
}

// LiabilityExpenses sums the negative asset cashflows as a positive amount.
func (p *Player) LiabilityExpenses() int {
	total := 0
	for _, a := range p.Assets {
		if a.Cashflow < 0 {
			total -= a.Cashflow
		}
	}
	return total
}

func (p *Player) Income() int {
	return p.Salary + p.PassiveIncome()
}

// FindBySymbol returns the holding of a tradable instrument, nil if none.
func (p *Player) FindBySymbol(symbol string) *Asset {
	for _, a := range p.Assets {
		if a.Symbol != "" && a.Symbol == symbol {
			return a
		}
	}
	return nil
}

// FindByTitle returns the first holding matching a property title, nil if none.
func (p *Player) FindByTitle(title string) *Asset {
	for _, a := range p.Assets {
		if a.Title == title {
			return a
		}
	}
	return nil
}

func (p *Player) FindAsset(id string) *Asset {
	for _, a := range p.Assets {
		if a.ID == id || a.CardID == id {
			return a
		}
	}
	return nil
}

func (p *Player) removeAsset(id string) {
	for i, a := range p.Assets {
		if a.ID == id {
			p.Assets = append(p.Assets[:i], p.Assets[i+1:]...)
			return
		}
	}
}
