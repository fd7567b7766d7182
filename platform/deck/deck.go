package deck

import (
	"math/rand"
	"time"

	uuid "github.com/satori/go.uuid"
)

// CardKind is the required discriminant of the card union. Optional fields
// below are only meaningful for the kinds that set them.
type CardKind string

const (
	DealSmall CardKind = "DEAL_SMALL"
	DealBig   CardKind = "DEAL_BIG"
	Expense   CardKind = "EXPENSE"
	Market    CardKind = "MARKET"
)

type Card struct {
	ID          string   `json:"id"`
	Kind        CardKind `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Cost        int      `json:"cost"`     // per-unit price for deals, amount due for expenses
	Cashflow    int      `json:"cashflow"` // recurring monthly income of the acquired asset

	Symbol      string `json:"symbol,omitempty"`      // tradable instruments only
	MaxQuantity int    `json:"maxQuantity,omitempty"` // 0 means single unit
	Mandatory   bool   `json:"mandatory,omitempty"`   // expenses that must be paid

	OfferPrice  int    `json:"offerPrice,omitempty"`  // market cards: posted per-unit bid
	TargetTitle string `json:"targetTitle,omitempty"` // market cards matching a held property
	Outcome     string `json:"outcome,omitempty"`
}

// Tradable reports whether the card represents a quantity-bearing instrument.
func (c Card) Tradable() bool {
	return c.Symbol != ""
}

// Deck is one shuffled in-memory pile. Drawing from an empty deck reshuffles
// a fresh copy of the definition, so decks never permanently run out.
type Deck struct {
	kind CardKind
	def  []Card
	pile []Card
	rnd  *rand.Rand
}

func New(kind CardKind) *Deck {
	d := &Deck{
		kind: kind,
		def:  definitionOf(kind),
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	d.reshuffle()
	return d
}

func (d *Deck) Kind() CardKind { return d.kind }

// Draw removes and returns the top card, stamped with a fresh id so two
// draws of the same definition stay distinguishable.
func (d *Deck) Draw() Card {
	if len(d.pile) == 0 {
		d.reshuffle()
	}
	card := d.pile[len(d.pile)-1]
	d.pile = d.pile[:len(d.pile)-1]
	card.ID = uuid.NewV4().String()
	return card
}

// PeekAll returns the full deck definition for gallery views without
// touching the live pile.
func (d *Deck) PeekAll() []Card {
	out := make([]Card, len(d.def))
	copy(out, d.def)
	return out
}

func (d *Deck) Remaining() int { return len(d.pile) }

func (d *Deck) reshuffle() {
	d.pile = make([]Card, len(d.def))
	copy(d.pile, d.def)
	d.rnd.Shuffle(len(d.pile), func(i, j int) {
		d.pile[i], d.pile[j] = d.pile[j], d.pile[i]
	})
}

func definitionOf(kind CardKind) []Card {
	switch kind {
	case DealSmall:
		return smallDeals
	case DealBig:
		return bigDeals
	case Expense:
		return expenseCards
	case Market:
		return marketCards
	default:
		panic("deck: unknown card kind " + string(kind))
	}
}
