package engine

import (
	"testing"

	"github.com/mag8888/ratrace-backend/platform/board"
	"github.com/mag8888/ratrace-backend/platform/config"
	"github.com/mag8888/ratrace-backend/platform/deck"
)

func testLedger() (*Ledger, *Journal) {
	journal := NewJournal()
	return NewLedger(config.Defaults(), journal), journal
}

func testPlayer(cash, salary, expenses int) *Player {
	return &Player{
		ID:              "p1",
		Name:            "Alice",
		Ring:            board.RatRace,
		Cash:            cash,
		Salary:          salary,
		BaseExpenses:    expenses,
		PerChildExpense: 300,
	}
}

func TestCashflowAndCredit(t *testing.T) {
	l, _ := testLedger()
	p := testPlayer(0, 3000, 2100)

	if got := l.Cashflow(p); got != 900 {
		t.Fatalf("cashflow: got %d, want 900", got)
	}
	if got := l.AvailableCredit(p); got != 9000 {
		t.Fatalf("credit: got %d, want 9000", got)
	}
}

func TestCashflowIdentity(t *testing.T) {
	l, _ := testLedger()
	p := testPlayer(500, 3000, 1500)
	p.Children = 2
	p.LoanBalance = 4000
	p.Assets = []*Asset{
		{ID: "a1", Title: "4-plex", Quantity: 1, Cashflow: 800},
		{ID: "a2", Title: "boat", Quantity: 1, Cashflow: -100},
	}

	if got, want := l.Cashflow(p), p.Income()-l.Expenses(p); got != want {
		t.Fatalf("identity broken: cashflow %d, income-expenses %d", got, want)
	}
	// 3000+800 income; 1500 base + 400 interest + 600 children + 100 liability
	if got := l.Cashflow(p); got != 1200 {
		t.Fatalf("cashflow: got %d, want 1200", got)
	}
}

func TestFastTrackHasNoCredit(t *testing.T) {
	l, _ := testLedger()
	p := testPlayer(0, 3000, 100)
	p.Ring = board.FastTrack

	if got := l.AvailableCredit(p); got != 0 {
		t.Fatalf("fast track credit: got %d, want 0", got)
	}
	if err := l.TakeLoan(p, 1000); err != ErrInvalidAmount {
		t.Fatalf("fast track loan: got %v, want ErrInvalidAmount", err)
	}
}

func TestTakeLoanValidation(t *testing.T) {
	cases := []struct {
		name   string
		amount int
		ok     bool
	}{
		{"valid", 3000, true},
		{"whole credit", 9000, true},
		{"not a multiple", 1500, false},
		{"zero", 0, false},
		{"negative", -1000, false},
		{"over the cap", 10000, false},
	}
	for _, c := range cases {
		l, _ := testLedger()
		p := testPlayer(2000, 3000, 2100)
		err := l.TakeLoan(p, c.amount)
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok {
			if err == nil {
				t.Errorf("%s: expected rejection", c.name)
			}
			if p.Cash != 2000 || p.LoanBalance != 0 {
				t.Errorf("%s: rejected loan mutated player", c.name)
			}
		}
		if err == nil && p.LoanBalance%1000 != 0 {
			t.Errorf("%s: balance %d not a multiple of 1000", c.name, p.LoanBalance)
		}
	}
}

func TestLoanThenBuyDeal(t *testing.T) {
	l, _ := testLedger()
	p := testPlayer(2000, 3000, 2100)

	if err := l.TakeLoan(p, 3000); err != nil {
		t.Fatalf("take loan: %v", err)
	}
	card := deck.Card{ID: "c1", Kind: deck.DealBig, Title: "4-plex", Cost: 5000, Cashflow: 400}
	if err := l.BuyAsset(p, card, 1, "asset-1"); err != nil {
		t.Fatalf("buy: %v", err)
	}

	if p.Cash != 0 {
		t.Errorf("cash: got %d, want 0", p.Cash)
	}
	if p.LoanBalance != 3000 {
		t.Errorf("loan: got %d, want 3000", p.LoanBalance)
	}
	if p.PassiveIncome() != 400 {
		t.Errorf("passive: got %d, want 400", p.PassiveIncome())
	}
}

func TestRepayLoan(t *testing.T) {
	l, _ := testLedger()
	p := testPlayer(5000, 3000, 2100)
	p.LoanBalance = 4000

	if err := l.RepayLoan(p, 500); err != ErrInvalidAmount {
		t.Fatalf("odd amount: got %v, want ErrInvalidAmount", err)
	}
	if err := l.RepayLoan(p, 5000); err != ErrInvalidAmount {
		t.Fatalf("above balance: got %v, want ErrInvalidAmount", err)
	}
	if err := l.RepayLoan(p, 3000); err != nil {
		t.Fatalf("repay: %v", err)
	}
	if p.Cash != 2000 || p.LoanBalance != 1000 {
		t.Fatalf("after repay: cash %d loan %d", p.Cash, p.LoanBalance)
	}
}

func TestTransferConservation(t *testing.T) {
	l, _ := testLedger()
	a := testPlayer(3000, 3000, 2100)
	b := testPlayer(1000, 3000, 2100)
	b.ID, b.Name = "p2", "Bob"
	total := a.Cash + b.Cash

	if err := l.Transfer(a, b, 1200); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if a.Cash+b.Cash != total {
		t.Fatalf("cash not conserved: %d + %d != %d", a.Cash, b.Cash, total)
	}
	if a.Cash != 1800 || b.Cash != 2200 {
		t.Fatalf("split wrong: %d / %d", a.Cash, b.Cash)
	}

	if err := l.Transfer(a, b, 5000); err != ErrInsufficientFunds {
		t.Fatalf("overdraft: got %v, want ErrInsufficientFunds", err)
	}
	if a.Cash+b.Cash != total {
		t.Fatal("failed transfer moved money")
	}
}

func TestCharity(t *testing.T) {
	l, _ := testLedger()
	p := testPlayer(3000, 3000, 2100)

	if err := l.PayCharity(p); err != nil {
		t.Fatalf("charity: %v", err)
	}
	if p.Cash != 2700 {
		t.Errorf("cash: got %d, want 2700", p.Cash)
	}
	if p.Salary != 3000 {
		t.Errorf("income changed: %d", p.Salary)
	}
	if p.CharityTurns != 3 {
		t.Errorf("bonus turns: got %d, want 3", p.CharityTurns)
	}

	broke := testPlayer(100, 3000, 2100)
	if err := l.PayCharity(broke); err != ErrInsufficientFunds {
		t.Fatalf("broke donor: got %v, want ErrInsufficientFunds", err)
	}
	if broke.Cash != 100 || broke.CharityTurns != 0 {
		t.Fatal("failed donation mutated player")
	}
}

func TestDownsized(t *testing.T) {
	l, _ := testLedger()

	p := testPlayer(10000, 3000, 1800)
	if err := l.Downsized(p, Pay2Month); err != nil {
		t.Fatalf("pay 2 months: %v", err)
	}
	if p.Cash != 6400 {
		t.Errorf("cash after 2 months: got %d, want 6400", p.Cash)
	}
	if p.SkipTurns != 0 {
		t.Errorf("pay 2 months must not skip turns, got %d", p.SkipTurns)
	}

	p = testPlayer(10000, 3000, 1800)
	if err := l.Downsized(p, Pay1Month); err != nil {
		t.Fatalf("pay 1 month: %v", err)
	}
	if p.Cash != 8200 {
		t.Errorf("cash after 1 month: got %d, want 8200", p.Cash)
	}
	if p.SkipTurns != 2 {
		t.Errorf("skip turns: got %d, want 2", p.SkipTurns)
	}

	p = testPlayer(100, 3000, 1800)
	if err := l.Downsized(p, Pay1Month); err != ErrInsufficientFunds {
		t.Fatalf("broke: got %v, want ErrInsufficientFunds", err)
	}
	if err := l.Downsized(p, GoBankrupt); err != nil {
		t.Fatalf("bankrupt: %v", err)
	}
	if !p.Bankrupt {
		t.Fatal("bankrupt flag not set")
	}
}

func TestPayMandatoryForcesQuantizedLoan(t *testing.T) {
	l, _ := testLedger()
	p := testPlayer(200, 3000, 2100)
	card := deck.Card{Kind: deck.Expense, Title: "Car repair", Cost: 1500, Mandatory: true}

	if !l.PayMandatory(p, card) {
		t.Fatal("mandatory payment must not fail on the rat race")
	}
	if p.LoanBalance != 2000 {
		t.Errorf("forced loan: got %d, want 2000", p.LoanBalance)
	}
	if p.LoanBalance%1000 != 0 {
		t.Errorf("forced loan %d not quantized", p.LoanBalance)
	}
	if p.Cash != 700 {
		t.Errorf("cash: got %d, want 700", p.Cash)
	}
}

func TestPayMandatoryFastTrackFails(t *testing.T) {
	l, _ := testLedger()
	p := testPlayer(200, 3000, 100)
	p.Ring = board.FastTrack
	card := deck.Card{Kind: deck.Expense, Title: "Loss", Cost: 1500, Mandatory: true}

	if l.PayMandatory(p, card) {
		t.Fatal("fast track has no credit; payment must fail")
	}
	if p.Cash != 200 || p.LoanBalance != 0 {
		t.Fatal("failed payment mutated player")
	}
}

func TestPaydayNegativeFlow(t *testing.T) {
	l, _ := testLedger()
	p := testPlayer(100, 1000, 2000)

	l.Payday(p)
	if p.Cash < 0 {
		t.Fatalf("cash went negative: %d", p.Cash)
	}
	if p.LoanBalance == 0 || p.LoanBalance%1000 != 0 {
		t.Fatalf("expected a quantized forced loan, got %d", p.LoanBalance)
	}
}

func TestSellAssetRemovesEmptyHolding(t *testing.T) {
	l, _ := testLedger()
	p := testPlayer(0, 3000, 2100)
	p.Assets = []*Asset{{ID: "a1", Title: "OK4U", Symbol: "OK4U", Quantity: 10, Cost: 10}}

	if err := l.SellAsset(p, p.Assets[0], 20, 40); err != ErrInvalidAmount {
		t.Fatalf("oversell: got %v, want ErrInvalidAmount", err)
	}
	asset := p.Assets[0]
	if err := l.SellAsset(p, asset, 10, 40); err != nil {
		t.Fatalf("sell: %v", err)
	}
	if p.Cash != 400 {
		t.Errorf("proceeds: got %d, want 400", p.Cash)
	}
	if len(p.Assets) != 0 {
		t.Error("empty holding not removed")
	}
}
