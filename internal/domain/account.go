// Package domain provides defenitions of all entities and core banking rules.
package domain

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists indicates that an account with the given number already exists.
	ErrAccountExists = errors.New("account number already exists")
	// ErrInvalidAmount indicates a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInsufficientFunds indicates that the amount exceeds the withdrawable ceiling.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidRate indicates a non-positive yield rate.
	ErrInvalidRate = errors.New("rate must be greater than zero")
	// ErrYieldUnsupported indicates a yield accrual on a non-savings account.
	ErrYieldUnsupported = errors.New("yield accrual requires a savings account")
)

// Kind discriminates the account variants.
type Kind string

// Supported account kinds.
const (
	Checking Kind = "CHECKING"
	Savings  Kind = "SAVINGS"
)

// IsSupportedKind returns true if the account kind is supported.
func IsSupportedKind(k string) bool {
	return Kind(k) == Checking || Kind(k) == Savings
}

// CreateAccountParams is the input data for opening an account.
type CreateAccountParams struct {
	Owner          string          `json:"owner"`
	Kind           Kind            `json:"kind"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	OverdraftLimit decimal.Decimal `json:"overdraft_limit"`
}

// Account holds a balance together with its append-only transaction log.
//
// Balance and log form one unit: every successful mutation updates the
// balance and appends exactly one transaction under the same lock, so a
// reader can never observe one without the other.
type Account struct {
	mu             sync.Mutex
	owner          string
	number         string
	branch         string
	kind           Kind
	overdraftLimit decimal.Decimal
	balance        decimal.Decimal
	log            []Transaction
}

// NewChecking returns a checking account with the given overdraft limit.
// A negative overdraft limit is treated as zero.
func NewChecking(owner, number, branch string, openingBalance, overdraftLimit decimal.Decimal) *Account {
	if overdraftLimit.IsNegative() {
		overdraftLimit = decimal.Zero
	}

	return &Account{
		owner:          owner,
		number:         number,
		branch:         branch,
		kind:           Checking,
		overdraftLimit: overdraftLimit,
		balance:        openingBalance,
	}
}

// NewSavings returns a savings account.
func NewSavings(owner, number, branch string, openingBalance decimal.Decimal) *Account {
	return &Account{
		owner:   owner,
		number:  number,
		branch:  branch,
		kind:    Savings,
		balance: openingBalance,
	}
}

// Owner returns the owner identifier.
func (a *Account) Owner() string { return a.owner }

// Number returns the account number.
func (a *Account) Number() string { return a.number }

// Branch returns the branch code.
func (a *Account) Branch() string { return a.branch }

// Kind returns the account kind.
func (a *Account) Kind() Kind { return a.kind }

// OverdraftLimit returns the overdraft limit. It is zero for savings accounts.
func (a *Account) OverdraftLimit() decimal.Decimal {
	return a.overdraftLimit
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.balance
}

// Deposit increases the balance by the given amount and records a deposit
// transaction. It returns ErrInvalidAmount if the amount is not positive.
func (a *Account) Deposit(amount decimal.Decimal) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.deposit(amount)
}

func (a *Account) deposit(amount decimal.Decimal) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrInvalidAmount
	}

	a.balance = a.balance.Add(amount)

	tx := newTransaction(a.number, "", amount, TxDeposit)
	a.log = append(a.log, tx)

	return tx, nil
}

// Withdraw decreases the balance by the given amount and records a withdrawal
// transaction. It returns ErrInvalidAmount if the amount is not positive and
// ErrInsufficientFunds if the amount exceeds the withdrawable ceiling.
func (a *Account) Withdraw(amount decimal.Decimal) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrInvalidAmount
	}

	if err := a.debit(amount); err != nil {
		return Transaction{}, err
	}

	tx := newTransaction(a.number, "", amount, TxWithdrawal)
	a.log = append(a.log, tx)

	return tx, nil
}

// withdrawableCeiling is the single policy point that varies by account kind:
// checking accounts may draw into their overdraft limit, savings accounts
// may not go below zero.
func (a *Account) withdrawableCeiling() decimal.Decimal {
	if a.kind == Checking {
		return a.balance.Add(a.overdraftLimit)
	}

	return a.balance
}

// debit applies the kind-specific withdrawal policy and subtracts the amount.
// It records no transaction; callers append their own entry. Both plain
// withdrawals and transfer debits go through here so the ceiling rule has a
// single source of truth.
func (a *Account) debit(amount decimal.Decimal) error {
	if amount.GreaterThan(a.withdrawableCeiling()) {
		return ErrInsufficientFunds
	}

	a.balance = a.balance.Sub(amount)

	return nil
}

// AccrueYield deposits balance times rate through the ordinary deposit path,
// so the accrual shows up in the ledger as a plain deposit. It returns
// ErrYieldUnsupported on non-savings accounts and ErrInvalidRate if the rate
// is not positive. Accruing on a zero balance yields a zero amount, which the
// deposit path rejects with ErrInvalidAmount.
func (a *Account) AccrueYield(rate decimal.Decimal) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.kind != Savings {
		return Transaction{}, ErrYieldUnsupported
	}

	if rate.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrInvalidRate
	}

	return a.deposit(a.balance.Mul(rate))
}

// Transactions returns a snapshot of the transaction log in insertion order,
// keeping only entries that match the filter. The returned slice is a copy;
// the log itself is never exposed or mutated.
func (a *Account) Transactions(f Filter) []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	txs := make([]Transaction, 0, len(a.log))

	for _, tx := range a.log {
		if f.matches(tx) {
			txs = append(txs, tx)
		}
	}

	return txs
}

func newTransaction(from, to string, amount decimal.Decimal, kind TxKind) Transaction {
	return Transaction{
		ID:          newTransactionID(),
		FromAccount: from,
		ToAccount:   to,
		Amount:      amount,
		Kind:        kind,
		CreatedAt:   time.Now().UTC(),
	}
}
