package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TxKind discriminates ledger entry kinds.
type TxKind string

// Supported transaction kinds.
const (
	TxDeposit    TxKind = "DEPOSIT"
	TxWithdrawal TxKind = "WITHDRAWAL"
	TxTransfer   TxKind = "TRANSFER"
)

// Transaction is one immutable ledger entry. A transfer entry is appended to
// both participating accounts' logs as the same record, so both sides observe
// an identical ID, amount and timestamp.
type Transaction struct {
	ID          string          `json:"id"`
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account,omitempty"` // set only for transfers
	Amount      decimal.Decimal `json:"amount"`
	Kind        TxKind          `json:"kind"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newTransactionID() string {
	return uuid.NewString()
}

// Filter restricts a transaction log query. The zero value matches every
// entry: an empty Kind matches all kinds and a zero From or To leaves that
// side of the inclusive time window unbounded.
type Filter struct {
	Kind TxKind
	From time.Time
	To   time.Time
}

func (f Filter) matches(tx Transaction) bool {
	if f.Kind != "" && tx.Kind != f.Kind {
		return false
	}

	if !f.From.IsZero() && tx.CreatedAt.Before(f.From) {
		return false
	}

	if !f.To.IsZero() && tx.CreatedAt.After(f.To) {
		return false
	}

	return true
}

const entryTimeLayout = "2006-01-02 15:04"

// FormatEntry renders one ledger entry as a statement line for the given
// viewer. Transfer direction is disambiguated by comparing the entry's source
// account against the viewer's account number; deposits and withdrawals carry
// no direction.
func FormatEntry(tx Transaction, viewerNumber string) string {
	ts := tx.CreatedAt.Format(entryTimeLayout)

	switch tx.Kind {
	case TxDeposit:
		return fmt.Sprintf("%s | DEPOSIT of %s", ts, tx.Amount)
	case TxWithdrawal:
		return fmt.Sprintf("%s | WITHDRAWAL of %s", ts, tx.Amount)
	}

	if tx.FromAccount == viewerNumber {
		return fmt.Sprintf("%s | TRANSFER of %s sent to account %s", ts, tx.Amount, tx.ToAccount)
	}

	return fmt.Sprintf("%s | TRANSFER of %s received from account %s", ts, tx.Amount, tx.FromAccount)
}
