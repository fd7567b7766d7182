package engine

import (
	"github.com/mag8888/ratrace-backend/platform/board"
	"github.com/mag8888/ratrace-backend/platform/config"
	"github.com/mag8888/ratrace-backend/platform/deck"
)

// DownsizedChoice is the player's answer to a downsizing event.
type DownsizedChoice string

const (
	Pay1Month  DownsizedChoice = "PAY_1M" // one month of expenses, sit out two turns
	Pay2Month  DownsizedChoice = "PAY_2M" // two months of expenses, keep playing
	GoBankrupt DownsizedChoice = "BANKRUPT"
)

// Ledger applies every financial rule to player state. All methods either
// fully apply or leave the player untouched.
type Ledger struct {
	rules   config.Rules
	journal *Journal
}

func NewLedger(rules config.Rules, journal *Journal) *Ledger {
	return &Ledger{rules: rules, journal: journal}
}

// LoanInterest is the monthly cost of carrying the current loan balance.
func (l *Ledger) LoanInterest(p *Player) int {
	return p.LoanBalance * l.rules.LoanInterestPct / 100
}

func (l *Ledger) Expenses(p *Player) int {
	return p.BaseExpenses + l.LoanInterest(p) + p.Children*p.PerChildExpense + p.LiabilityExpenses()
}

// Cashflow is the invariant quantity: income minus expenses, recomputed from
// its inputs on every read.
func (l *Ledger) Cashflow(p *Player) int {
	return p.Income() - l.Expenses(p)
}

// AvailableCredit quantizes cashflow into $1,000 steps of headroom. The fast
// track carries no bank credit at all.
func (l *Ledger) AvailableCredit(p *Player) int {
	if p.Ring == board.FastTrack {
		return 0
	}
	limit := l.Cashflow(p) / l.rules.CreditPerCashflow * l.rules.LoanStep
	credit := limit - p.LoanBalance
	if credit < 0 {
		return 0
	}
	return credit
}

func (l *Ledger) TakeLoan(p *Player, amount int) error {
	if amount <= 0 || amount%l.rules.LoanStep != 0 {
		return ErrInvalidAmount
	}
	if amount > l.AvailableCredit(p) {
		return ErrInvalidAmount
	}
	p.Cash += amount
	p.LoanBalance += amount
	l.journal.Record(Bank, p.Name, amount, TxLoan, "bank loan")
	return nil
}

// forceLoan issues the minimum quantized loan covering need, bypassing the
// credit cap. Only the mandatory-expense path may call it; a stalled turn is
// worse than an over-extended player.
func (l *Ledger) forceLoan(p *Player, need int) int {
	if need <= 0 {
		return 0
	}
	step := l.rules.LoanStep
	amount := (need + step - 1) / step * step
	p.Cash += amount
	p.LoanBalance += amount
	l.journal.Record(Bank, p.Name, amount, TxLoan, "forced loan to cover a mandatory payment")
	return amount
}

func (l *Ledger) RepayLoan(p *Player, amount int) error {
	if amount <= 0 || amount%l.rules.LoanStep != 0 {
		return ErrInvalidAmount
	}
	if amount > p.LoanBalance || amount > p.Cash {
		return ErrInvalidAmount
	}
	p.Cash -= amount
	p.LoanBalance -= amount
	l.journal.Record(p.Name, Bank, amount, TxRepayment, "loan repayment")
	return nil
}

// Transfer moves cash between players; total system cash is conserved.
func (l *Ledger) Transfer(from, to *Player, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > from.Cash {
		return ErrInsufficientFunds
	}
	from.Cash -= amount
	to.Cash += amount
	l.journal.Record(from.Name, to.Name, amount, TxTransfer, "player transfer")
	return nil
}

// PayCharity deducts the donation and arms the dice bonus. On the rat race
// the donation is a tithe of income; on the fast track it is a flat sum.
func (l *Ledger) PayCharity(p *Player) error {
	amount := p.Income() / 10
	if p.Ring == board.FastTrack {
		amount = l.rules.FastTrackCharity
	}
	if amount > p.Cash {
		return ErrInsufficientFunds
	}
	p.Cash -= amount
	p.CharityTurns = l.rules.CharityBonusTurns
	l.journal.Record(p.Name, Bank, amount, TxCharity, "charity donation")
	l.journal.Eventf("%s donated $%d to charity", p.Name, amount)
	return nil
}

// Payday credits one month of cashflow. A negative month is covered by a
// forced loan so the square can never stall the turn.
func (l *Ledger) Payday(p *Player) {
	flow := l.Cashflow(p)
	switch {
	case flow >= 0:
		p.Cash += flow
		l.journal.Record(Bank, p.Name, flow, TxPayday, "payday")
	default:
		if -flow > p.Cash {
			l.forceLoan(p, -flow-p.Cash)
		}
		p.Cash += flow
		l.journal.Record(p.Name, Bank, -flow, TxPayday, "negative payday")
	}
	l.journal.Eventf("%s collected payday of $%d", p.Name, flow)
}

// PayMandatory settles a mandatory expense card, forcing a loan when cash
// falls short. Returns false when not even unlimited credit can settle it
// (no credit exists on the fast track) and the caller must downsize the
// player instead.
func (l *Ledger) PayMandatory(p *Player, card deck.Card) bool {
	if card.Cost > p.Cash {
		if p.Ring == board.FastTrack {
			return false
		}
		l.forceLoan(p, card.Cost-p.Cash)
	}
	p.Cash -= card.Cost
	l.journal.Record(p.Name, Bank, card.Cost, TxExpense, card.Title)
	l.journal.Eventf("%s paid $%d for %s", p.Name, card.Cost, card.Title)
	return true
}

// Downsized resolves the three-way job-loss decision.
func (l *Ledger) Downsized(p *Player, choice DownsizedChoice) error {
	monthly := l.Expenses(p)
	switch choice {
	case Pay1Month:
		if monthly > p.Cash {
			return ErrInsufficientFunds
		}
		p.Cash -= monthly
		p.SkipTurns = 2
		l.journal.Record(p.Name, Bank, monthly, TxExpense, "downsized, one month of expenses")
		l.journal.Eventf("%s was downsized and sits out two turns", p.Name)
	case Pay2Month:
		if 2*monthly > p.Cash {
			return ErrInsufficientFunds
		}
		p.Cash -= 2 * monthly
		l.journal.Record(p.Name, Bank, 2*monthly, TxExpense, "downsized, two months of expenses")
		l.journal.Eventf("%s was downsized and paid double expenses", p.Name)
	case GoBankrupt:
		p.Bankrupt = true
		l.journal.Eventf("%s declared bankruptcy", p.Name)
	default:
		return ErrInvalidAmount
	}
	return nil
}

// BuyAsset debits the purchase and records the new holding. The caller has
// already validated controller rights and quantity bounds.
func (l *Ledger) BuyAsset(p *Player, card deck.Card, quantity int, assetID string) error {
	total := card.Cost * quantity
	if total > p.Cash {
		if total <= p.Cash+l.AvailableCredit(p) {
			return ErrInsufficientFunds // a loan can cover it, but must be taken first
		}
		return ErrInsufficientCredit
	}
	p.Cash -= total
	p.Assets = append(p.Assets, &Asset{
		ID:       assetID,
		CardID:   card.ID,
		Title:    card.Title,
		Symbol:   card.Symbol,
		Quantity: quantity,
		Cost:     card.Cost,
		Cashflow: card.Cashflow,
	})
	l.journal.Record(p.Name, Bank, total, TxPurchase, card.Title)
	l.journal.Eventf("%s bought %s for $%d", p.Name, card.Title, total)
	return nil
}

// SellAsset liquidates quantity units at the given per-unit price, removing
// the holding when it reaches zero.
func (l *Ledger) SellAsset(p *Player, asset *Asset, quantity, price int) error {
	if quantity <= 0 || quantity > asset.Quantity {
		return ErrInvalidAmount
	}
	proceeds := price * quantity
	p.Cash += proceeds
	asset.Quantity -= quantity
	if asset.Quantity == 0 {
		p.removeAsset(asset.ID)
	}
	l.journal.Record(Bank, p.Name, proceeds, TxSale, asset.Title)
	l.journal.Eventf("%s sold %d x %s for $%d", p.Name, quantity, asset.Title, proceeds)
	return nil
}
