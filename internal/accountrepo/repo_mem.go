// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ledgerflow/ledgerflow/internal/domain"
)

const firstAccountNumber = 1000001

// RepoMem is an in-memory account directory keyed by account number.
// It owns nothing beyond the lookup structure; each account guards its own
// balance and log.
type RepoMem struct {
	mu       sync.RWMutex
	branch   string
	next     int
	accounts map[string]*domain.Account
}

// NewRepoMem returns an account RepoMem issuing accounts for the given branch.
func NewRepoMem(branch string) *RepoMem {
	return &RepoMem{
		branch:   branch,
		next:     firstAccountNumber,
		accounts: make(map[string]*domain.Account),
	}
}

// Create opens an account for the given owner and kind, allocating the next
// account number.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreateAccountParams) (*domain.Account, error) {
	l := zerolog.Ctx(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	number := fmt.Sprintf("%07d", r.next)
	if _, ok := r.accounts[number]; ok {
		l.Error().Str("number", number).Msg("allocated account number already taken")
		return nil, domain.ErrAccountExists
	}

	var account *domain.Account

	switch arg.Kind {
	case domain.Savings:
		account = domain.NewSavings(arg.Owner, number, r.branch, arg.OpeningBalance)
	default:
		account = domain.NewChecking(arg.Owner, number, r.branch, arg.OpeningBalance, arg.OverdraftLimit)
	}

	r.accounts[number] = account
	r.next++

	return account, nil
}

// Get returns the account for the given account number.
func (r *RepoMem) Get(ctx context.Context, number string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[number]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}

// ListByOwner returns the accounts owned by the given owner, ordered by
// account number.
func (r *RepoMem) ListByOwner(ctx context.Context, owner string) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var accounts []*domain.Account

	for _, account := range r.accounts {
		if account.Owner() == owner {
			accounts = append(accounts, account)
		}
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Number() < accounts[j].Number()
	})

	return accounts, nil
}
