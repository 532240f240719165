// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/ledgerflow/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (*domain.Account, error)
	Get(ctx context.Context, number string) (*domain.Account, error)
	ListByOwner(ctx context.Context, owner string) ([]*domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// parseAmount parses a decimal string coming from the delivery layer.
// An empty string is allowed and reads as zero so optional fields bind cleanly.
func parseAmount(ctx context.Context, amount string) (decimal.Decimal, error) {
	if amount == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		return decimal.Zero, domain.ErrInvalidAmount
	}

	return d, nil
}

// Create opens and returns an account for the given owner and kind.
// The opening balance and overdraft limit are optional; an overdraft limit is
// only meaningful for checking accounts and is ignored otherwise.
func (s *Service) Create(ctx context.Context, owner string, kind domain.Kind, openingBalance, overdraftLimit string) (*domain.Account, error) {
	opening, err := parseAmount(ctx, openingBalance)
	if err != nil {
		return nil, err
	}

	if opening.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	overdraft, err := parseAmount(ctx, overdraftLimit)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.Create(ctx, domain.CreateAccountParams{
		Owner:          owner,
		Kind:           kind,
		OpeningBalance: opening,
		OverdraftLimit: overdraft,
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// Get returns the account for the given account number.
func (s *Service) Get(ctx context.Context, number string) (*domain.Account, error) {
	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return nil, err
	}

	return account, nil
}

// List returns accounts that are owned by the given owner.
func (s *Service) List(ctx context.Context, owner string) ([]*domain.Account, error) {
	accounts, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// Deposit deposits the amount into the given account.
func (s *Service) Deposit(ctx context.Context, number, amount string) (domain.Transaction, error) {
	d, err := parseAmount(ctx, amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return domain.Transaction{}, err
	}

	return account.Deposit(d)
}

// Withdraw withdraws the amount from the given account under its
// kind-specific withdrawal policy.
func (s *Service) Withdraw(ctx context.Context, number, amount string) (domain.Transaction, error) {
	d, err := parseAmount(ctx, amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return domain.Transaction{}, err
	}

	return account.Withdraw(d)
}

// AccrueYield accrues yield at the given rate on a savings account.
func (s *Service) AccrueYield(ctx context.Context, number, rate string) (domain.Transaction, error) {
	r, err := decimal.NewFromString(rate)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		return domain.Transaction{}, domain.ErrInvalidRate
	}

	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return domain.Transaction{}, err
	}

	return account.AccrueYield(r)
}

// Transactions returns the account's ledger entries matching the filter in
// chronological order.
func (s *Service) Transactions(ctx context.Context, number string, f domain.Filter) ([]domain.Transaction, error) {
	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return nil, err
	}

	return account.Transactions(f), nil
}

// Statement returns the account's ledger entries matching the filter rendered
// as statement lines for the account owner to read.
func (s *Service) Statement(ctx context.Context, number string, f domain.Filter) ([]string, error) {
	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return nil, err
	}

	txs := account.Transactions(f)

	lines := make([]string, 0, len(txs))
	for _, tx := range txs {
		lines = append(lines, domain.FormatEntry(tx, account.Number()))
	}

	return lines, nil
}
