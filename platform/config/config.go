package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	_ "github.com/joho/godotenv/autoload"
)

// Rules holds the game tunables. Defaults match the classic board; a TOML
// file (RULES_FILE) and a few env vars can override them per deployment.
type Rules struct {
	TurnDeadlineSec   int `toml:"turn_deadline_sec"`
	OfferTTLSec       int `toml:"offer_ttl_sec"`
	CharityBonusTurns int `toml:"charity_bonus_turns"`
	LoanStep          int `toml:"loan_step"`
	CreditPerCashflow int `toml:"credit_per_cashflow"` // $1000 of credit per this much cashflow
	LoanInterestPct   int `toml:"loan_interest_pct"`   // monthly, percent of balance

	StartingCash    int `toml:"starting_cash"`
	StartingSalary  int `toml:"starting_salary"`
	StartingExpense int `toml:"starting_expense"`
	PerChildExpense int `toml:"per_child_expense"`
	MaxChildren     int `toml:"max_children"`

	DreamCost int `toml:"dream_cost"`

	FastTrackCharity  int `toml:"fast_track_charity"`
	FastTrackCashDay  int `toml:"fast_track_cash_day"`
	FastTrackLotteryW int `toml:"fast_track_lottery_win"`
	FastTrackLoss     int `toml:"fast_track_loss"`
}

func Defaults() Rules {
	return Rules{
		TurnDeadlineSec:   120,
		OfferTTLSec:       120,
		CharityBonusTurns: 3,
		LoanStep:          1000,
		CreditPerCashflow: 100,
		LoanInterestPct:   10,

		StartingCash:    3000,
		StartingSalary:  3000,
		StartingExpense: 1500,
		PerChildExpense: 300,
		MaxChildren:     3,

		DreamCost: 100000,

		FastTrackCharity:  100000,
		FastTrackCashDay:  100000,
		FastTrackLotteryW: 500000,
		FastTrackLoss:     100000,
	}
}

// Load merges defaults, the optional RULES_FILE toml and env overrides.
func Load() Rules {
	rules := Defaults()

	if path := os.Getenv("RULES_FILE"); path != "" {
		// a broken rules file should be fatal at startup, not at runtime
		if _, err := toml.DecodeFile(path, &rules); err != nil {
			panic(err)
		}
	}

	setInt(&rules.TurnDeadlineSec, "TURN_DEADLINE_SEC")
	setInt(&rules.OfferTTLSec, "OFFER_TTL_SEC")
	setInt(&rules.StartingCash, "STARTING_CASH")

	return rules
}

func (r Rules) TurnDeadline() time.Duration {
	return time.Duration(r.TurnDeadlineSec) * time.Second
}

func (r Rules) OfferTTL() time.Duration {
	return time.Duration(r.OfferTTLSec) * time.Second
}

func setInt(dst *int, key string) {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*dst = n
		}
	}
}
