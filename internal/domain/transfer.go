package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrSelfTransfer indicates that transfer source and destination are the same account.
var ErrSelfTransfer = errors.New("transfer source and destination are the same account")

// TransferResult is the result of a completed transfer. Balances are captured
// while both account locks are held, so they are consistent with each other.
type TransferResult struct {
	Transaction Transaction     `json:"transaction"`
	FromBalance decimal.Decimal `json:"from_balance"`
	ToBalance   decimal.Decimal `json:"to_balance"`
}

// Transfer atomically moves the amount between two accounts.
//
// The self-transfer check runs before the funds check, so a same-account
// request always reports ErrSelfTransfer regardless of balance. The debit
// goes through the source's withdrawal-ceiling policy, so overdraft rules
// apply to transfers exactly as to plain withdrawals. On any failure neither
// account is mutated.
//
// One shared transfer record is appended to both logs; no reader can observe
// the debit without the credit because both locks are held until the record
// is in place.
func Transfer(amount decimal.Decimal, from, to *Account) (TransferResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return TransferResult{}, ErrInvalidAmount
	}

	if from.number == to.number {
		return TransferResult{}, ErrSelfTransfer
	}

	// Locks are always taken in account number order so two opposite
	// concurrent transfers between the same pair cannot deadlock.
	first, second := from, to
	if second.number < first.number {
		first, second = second, first
	}

	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if err := from.debit(amount); err != nil {
		return TransferResult{}, err
	}

	to.balance = to.balance.Add(amount)

	tx := newTransaction(from.number, to.number, amount, TxTransfer)
	from.log = append(from.log, tx)
	to.log = append(to.log, tx)

	return TransferResult{
		Transaction: tx,
		FromBalance: from.balance,
		ToBalance:   to.balance,
	}, nil
}
