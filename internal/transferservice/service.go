// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/ledgerflow/internal/domain"
)

// AccountGetter provides the account lookup needed by the transfer service layer.
type AccountGetter interface {
	Get(ctx context.Context, number string) (*domain.Account, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	accounts AccountGetter
}

// New returns transfer service struct to manage transfer bussines logic.
func New(ag AccountGetter) *Service {
	return &Service{accounts: ag}
}

// Transfer moves the amount from one account to another atomically.
// Validation order is deterministic: invalid amount, then self transfer, then
// insufficient funds, so the same request always reports the same error.
func (s *Service) Transfer(ctx context.Context, fromNumber, toNumber, amount string) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferResult{}, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return domain.TransferResult{}, domain.ErrInvalidAmount
	}

	if fromNumber == toNumber {
		return domain.TransferResult{}, domain.ErrSelfTransfer
	}

	fromAccount, err := s.accounts.Get(ctx, fromNumber)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferResult{}, err
	}

	toAccount, err := s.accounts.Get(ctx, toNumber)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferResult{}, err
	}

	result, err := domain.Transfer(amountDecimal, fromAccount, toAccount)
	if err != nil {
		return domain.TransferResult{}, err
	}

	return result, nil
}
