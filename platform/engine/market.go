package engine

import (
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/mag8888/ratrace-backend/platform/deck"
)

// OfferSource distinguishes a turn-owner's freshly drawn private deal from a
// globally visible market posting.
type OfferSource string

const (
	OfferCurrent OfferSource = "CURRENT"
	OfferMarket  OfferSource = "MARKET"
)

// Offer is a time-limited card on the market board. ControllerID gates
// buying/dismissing a private deal; it never gates selling, which follows
// asset ownership alone.
type Offer struct {
	ID           string      `json:"id"`
	Card         deck.Card   `json:"card"`
	Source       OfferSource `json:"source"`
	ControllerID string      `json:"controllingPlayerId"`
	ExpiresAt    time.Time   `json:"expiresAt"`
}

func (o *Offer) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// Private reports whether only the controller may act on the buy side. Deal
// cards stay private even after being transferred; only market event cards
// with a posted price are open to everyone.
func (o *Offer) Private() bool {
	return o.Card.Kind != deck.Market
}

// MarketBoard holds the live offers of one room. It is owned by the room
// actor and never locked; serialization comes from the command queue.
type MarketBoard struct {
	offers []*Offer
}

func NewMarketBoard() *MarketBoard {
	return &MarketBoard{}
}

func (m *MarketBoard) Add(card deck.Card, source OfferSource, controllerID string, ttl time.Duration) *Offer {
	offer := &Offer{
		ID:           uuid.NewV4().String(),
		Card:         card,
		Source:       source,
		ControllerID: controllerID,
		ExpiresAt:    time.Now().Add(ttl),
	}
	m.offers = append(m.offers, offer)
	return offer
}

func (m *MarketBoard) Get(id string) *Offer {
	for _, o := range m.offers {
		if o.ID == id || o.Card.ID == id {
			return o
		}
	}
	return nil
}

// CurrentFor returns the live private deal controlled by a player, nil if
// none. At most one exists per turn owner.
func (m *MarketBoard) CurrentFor(playerID string) *Offer {
	for _, o := range m.offers {
		if o.Source == OfferCurrent && o.ControllerID == playerID {
			return o
		}
	}
	return nil
}

// OfferFor finds the posting that would buy a given holding, nil if none.
func (m *MarketBoard) OfferFor(asset *Asset) *Offer {
	for _, o := range m.offers {
		if o.Card.OfferPrice <= 0 {
			continue
		}
		if o.Card.Symbol != "" && o.Card.Symbol == asset.Symbol {
			return o
		}
		if o.Card.Symbol == "" && o.Card.TargetTitle == asset.Title {
			return o
		}
	}
	return nil
}

func (m *MarketBoard) Remove(id string) {
	for i, o := range m.offers {
		if o.ID == id {
			m.offers = append(m.offers[:i], m.offers[i+1:]...)
			return
		}
	}
}

// SweepExpired drops every offer past its deadline. Called lazily after
// each command touching the room, so no background timer is needed.
func (m *MarketBoard) SweepExpired(now time.Time) []*Offer {
	var dropped []*Offer
	kept := m.offers[:0]
	for _, o := range m.offers {
		if o.Expired(now) {
			dropped = append(dropped, o)
		} else {
			kept = append(kept, o)
		}
	}
	m.offers = kept
	return dropped
}

// List returns the still-live offers for snapshots.
func (m *MarketBoard) List(now time.Time) []*Offer {
	out := make([]*Offer, 0, len(m.offers))
	for _, o := range m.offers {
		if !o.Expired(now) {
			out = append(out, o)
		}
	}
	return out
}

// MatchHolding resolves which of a player's assets an offer applies to:
// symbol match for tradable instruments, title match otherwise.
func (o *Offer) MatchHolding(p *Player) *Asset {
	if o.Card.Symbol != "" {
		return p.FindBySymbol(o.Card.Symbol)
	}
	if o.Card.TargetTitle != "" {
		return p.FindByTitle(o.Card.TargetTitle)
	}
	return p.FindByTitle(o.Card.Title)
}
