package engine

import (
	"fmt"
	"time"
)

// TxType is the business reason for a money movement.
type TxType string

const (
	TxTransfer  TxType = "TRANSFER"
	TxLoan      TxType = "LOAN"
	TxRepayment TxType = "REPAYMENT"
	TxPurchase  TxType = "PURCHASE"
	TxSale      TxType = "SALE"
	TxExpense   TxType = "EXPENSE"
	TxCharity   TxType = "CHARITY"
	TxPayday    TxType = "PAYDAY"
)

// The bank is the counterparty of every non-transfer movement.
const Bank = "BANK"

type Transaction struct {
	From        string    `json:"from"`
	To          string    `json:"to"`
	Amount      int       `json:"amount"`
	Type        TxType    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// Journal is the append-only transaction log plus the human event feed of a
// room. It is owned by the room actor; snapshots copy it.
type Journal struct {
	transactions []Transaction
	events       []string
}

func NewJournal() *Journal {
	return &Journal{}
}

func (j *Journal) Record(from, to string, amount int, kind TxType, desc string) {
	j.transactions = append(j.transactions, Transaction{
		From:        from,
		To:          to,
		Amount:      amount,
		Type:        kind,
		Timestamp:   time.Now(),
		Description: desc,
	})
}

func (j *Journal) Eventf(format string, args ...interface{}) {
	j.events = append(j.events, fmt.Sprintf(format, args...))
}

func (j *Journal) Transactions() []Transaction {
	out := make([]Transaction, len(j.transactions))
	copy(out, j.transactions)
	return out
}

func (j *Journal) Events() []string {
	out := make([]string, len(j.events))
	copy(out, j.events)
	return out
}
