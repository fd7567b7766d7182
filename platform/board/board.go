package board

import "fmt"

type Ring int

const (
	RatRace Ring = iota
	FastTrack
)

const (
	RatRaceSize   = 24
	FastTrackSize = 48
)

// SquareType tags what happens when a token lands on a square.
type SquareType string

const (
	SquareDeal      SquareType = "deal"    // choose small/big, then draw
	SquareExpense   SquareType = "doodad"  // draw a mandatory expense card
	SquarePayday    SquareType = "payday"  // credit monthly cashflow
	SquareMarket    SquareType = "market"  // draw a market event card
	SquareCharity   SquareType = "charity" // optional donation for a dice bonus
	SquareDownsized SquareType = "downsized"
	SquareBaby      SquareType = "baby"

	SquareBusiness SquareType = "business" // fast track deal
	SquareDream    SquareType = "dream"
	SquareCashDay  SquareType = "cashday" // fast track payday
	SquareLottery  SquareType = "lottery"
	SquareLoss     SquareType = "loss"
)

type Square struct {
	Index int        `json:"index"`
	Type  SquareType `json:"type"`
	Name  string     `json:"name"`
}

var ratRace = buildRatRace()
var fastTrack = buildFastTrack()

// SquareAt is a pure lookup. An out-of-range index is a programmer error.
func SquareAt(ring Ring, idx int) Square {
	squares := squaresOf(ring)
	if idx < 0 || idx >= len(squares) {
		panic(fmt.Sprintf("board: square %d out of range for ring %d", idx, ring))
	}
	return squares[idx]
}

func Size(ring Ring) int {
	return len(squaresOf(ring))
}

// Squares returns the full ring definition for snapshots. The slice is
// shared; callers must not mutate it.
func Squares(ring Ring) []Square {
	return squaresOf(ring)
}

func squaresOf(ring Ring) []Square {
	if ring == FastTrack {
		return fastTrack
	}
	return ratRace
}

// The rat race ring alternates opportunity squares with the event squares of
// the classic board: every even index is an opportunity, the odd ones cycle
// through doodad, charity, payday, market, doodad, downsized, payday, market,
// doodad, baby, payday, market.
func buildRatRace() []Square {
	events := []struct {
		t    SquareType
		name string
	}{
		{SquareExpense, "Doodad"},
		{SquareCharity, "Charity"},
		{SquarePayday, "Payday"},
		{SquareMarket, "Market"},
		{SquareExpense, "Doodad"},
		{SquareDownsized, "Downsized"},
		{SquarePayday, "Payday"},
		{SquareMarket, "Market"},
		{SquareExpense, "Doodad"},
		{SquareBaby, "Baby"},
		{SquarePayday, "Payday"},
		{SquareMarket, "Market"},
	}

	squares := make([]Square, 0, RatRaceSize)
	for i := 0; i < RatRaceSize; i++ {
		if i%2 == 0 {
			squares = append(squares, Square{Index: i, Type: SquareDeal, Name: "Opportunity"})
		} else {
			ev := events[(i-1)/2]
			squares = append(squares, Square{Index: i, Type: ev.t, Name: ev.name})
		}
	}
	return squares
}

// The fast track repeats an 8-square block six times: business, dream,
// business, cashday, business, charity/lottery, business, loss. Dreams are
// spread so every player can be assigned one away from the start.
func buildFastTrack() []Square {
	squares := make([]Square, 0, FastTrackSize)
	for i := 0; i < FastTrackSize; i++ {
		var sq Square
		switch i % 8 {
		case 1:
			sq = Square{Index: i, Type: SquareDream, Name: "Dream"}
		case 3:
			sq = Square{Index: i, Type: SquareCashDay, Name: "Cashflow Day"}
		case 5:
			if (i/8)%2 == 0 {
				sq = Square{Index: i, Type: SquareCharity, Name: "Charity"}
			} else {
				sq = Square{Index: i, Type: SquareLottery, Name: "Lottery"}
			}
		case 7:
			sq = Square{Index: i, Type: SquareLoss, Name: "Loss"}
		default:
			sq = Square{Index: i, Type: SquareBusiness, Name: "Business"}
		}
		squares = append(squares, sq)
	}
	return squares
}

// DreamIndexes lists every dream square on the fast track, used when players
// pick a dream at game start.
func DreamIndexes() []int {
	var idxs []int
	for _, sq := range fastTrack {
		if sq.Type == SquareDream {
			idxs = append(idxs, sq.Index)
		}
	}
	return idxs
}
