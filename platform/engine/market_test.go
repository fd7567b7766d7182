package engine

import (
	"testing"
	"time"

	"github.com/mag8888/ratrace-backend/platform/deck"
)

func TestMarketBoardLifecycle(t *testing.T) {
	m := NewMarketBoard()
	card := deck.Card{ID: "c1", Kind: deck.DealSmall, Title: "Condo"}

	offer := m.Add(card, OfferCurrent, "p1", time.Minute)
	if offer.ID == "" {
		t.Fatal("offer has no id")
	}
	if m.Get(offer.ID) != offer {
		t.Fatal("Get by offer id failed")
	}
	if m.Get("c1") != offer {
		t.Fatal("Get by card id failed")
	}
	if m.CurrentFor("p1") != offer {
		t.Fatal("CurrentFor missed the private deal")
	}
	if m.CurrentFor("p2") != nil {
		t.Fatal("CurrentFor leaked another player's deal")
	}

	m.Remove(offer.ID)
	if m.Get(offer.ID) != nil {
		t.Fatal("offer survived removal")
	}
}

func TestSweepExpired(t *testing.T) {
	m := NewMarketBoard()
	live := m.Add(deck.Card{ID: "c1", Kind: deck.Market, Title: "live"}, OfferMarket, "p1", time.Minute)
	dead := m.Add(deck.Card{ID: "c2", Kind: deck.Market, Title: "dead"}, OfferMarket, "p1", time.Minute)
	dead.ExpiresAt = time.Now().Add(-time.Second)

	dropped := m.SweepExpired(time.Now())
	if len(dropped) != 1 || dropped[0].Card.Title != "dead" {
		t.Fatalf("sweep dropped %d offers", len(dropped))
	}
	if m.Get(live.ID) == nil {
		t.Fatal("sweep removed a live offer")
	}

	listed := m.List(time.Now())
	if len(listed) != 1 || listed[0] != live {
		t.Fatalf("List returned %d offers", len(listed))
	}
}

func TestOfferPrivacy(t *testing.T) {
	deal := &Offer{Card: deck.Card{Kind: deck.DealBig}}
	if !deal.Private() {
		t.Error("deal card must stay private")
	}
	posting := &Offer{Card: deck.Card{Kind: deck.Market, OfferPrice: 40}}
	if posting.Private() {
		t.Error("posted market card must be open to all")
	}
}

func TestOfferFor(t *testing.T) {
	m := NewMarketBoard()
	m.Add(deck.Card{ID: "c1", Kind: deck.DealSmall, Title: "no posted price"}, OfferCurrent, "p1", time.Minute)
	bySymbol := m.Add(deck.Card{ID: "c2", Kind: deck.Market, Symbol: "OK4U", OfferPrice: 40}, OfferMarket, "p1", time.Minute)
	byTitle := m.Add(deck.Card{ID: "c3", Kind: deck.Market, TargetTitle: "Land 10 acres", OfferPrice: 15000}, OfferMarket, "p1", time.Minute)

	stock := &Asset{ID: "a1", Title: "OK4U Drug Co.", Symbol: "OK4U", Quantity: 10}
	if got := m.OfferFor(stock); got != bySymbol {
		t.Fatal("symbol holding not matched to its posting")
	}
	land := &Asset{ID: "a2", Title: "Land 10 acres", Quantity: 1}
	if got := m.OfferFor(land); got != byTitle {
		t.Fatal("title holding not matched to its posting")
	}
	other := &Asset{ID: "a3", Title: "Laundromat", Quantity: 1}
	if m.OfferFor(other) != nil {
		t.Fatal("matched a holding no posting buys")
	}
}

func TestMatchHolding(t *testing.T) {
	p := &Player{Assets: []*Asset{
		{ID: "a1", Title: "OK4U Drug Co.", Symbol: "OK4U", Quantity: 100},
		{ID: "a2", Title: "3Br/2Ba house", Quantity: 1},
	}}

	bySymbol := &Offer{Card: deck.Card{Kind: deck.Market, Symbol: "OK4U"}}
	if got := bySymbol.MatchHolding(p); got == nil || got.ID != "a1" {
		t.Fatal("symbol match failed")
	}

	byTitle := &Offer{Card: deck.Card{Kind: deck.Market, TargetTitle: "3Br/2Ba house"}}
	if got := byTitle.MatchHolding(p); got == nil || got.ID != "a2" {
		t.Fatal("title match failed")
	}

	miss := &Offer{Card: deck.Card{Kind: deck.Market, Symbol: "MYT4U"}}
	if miss.MatchHolding(p) != nil {
		t.Fatal("matched a holding the player does not own")
	}
}
