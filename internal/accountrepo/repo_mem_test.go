package accountrepo

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/ledgerflow/internal/domain"
	"github.com/ledgerflow/ledgerflow/pkg/randompkg"
)

func createAccount(t *testing.T, repo *RepoMem, owner string, kind domain.Kind) *domain.Account {
	t.Helper()

	account, err := repo.Create(context.Background(), domain.CreateAccountParams{
		Owner:          owner,
		Kind:           kind,
		OpeningBalance: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	return account
}

func TestCreate(t *testing.T) {
	repo := NewRepoMem("0001")
	owner := randompkg.Owner()

	checking := createAccount(t, repo, owner, domain.Checking)
	savings := createAccount(t, repo, owner, domain.Savings)

	require.Equal(t, domain.Checking, checking.Kind())
	require.Equal(t, domain.Savings, savings.Kind())
	require.Equal(t, "0001", checking.Branch())
	require.Equal(t, owner, checking.Owner())
	require.NotEqual(t, checking.Number(), savings.Number())
	require.True(t, checking.Balance().Equal(decimal.NewFromInt(1000)))
}

func TestCreateAppliesOverdraftLimitToCheckingOnly(t *testing.T) {
	repo := NewRepoMem("0001")

	checking, err := repo.Create(context.Background(), domain.CreateAccountParams{
		Owner:          randompkg.Owner(),
		Kind:           domain.Checking,
		OverdraftLimit: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	require.True(t, checking.OverdraftLimit().Equal(decimal.NewFromInt(500)))

	savings, err := repo.Create(context.Background(), domain.CreateAccountParams{
		Owner:          randompkg.Owner(),
		Kind:           domain.Savings,
		OverdraftLimit: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	require.True(t, savings.OverdraftLimit().IsZero())
}

func TestGet(t *testing.T) {
	repo := NewRepoMem("0001")
	created := createAccount(t, repo, randompkg.Owner(), domain.Checking)

	got, err := repo.Get(context.Background(), created.Number())
	require.NoError(t, err)
	require.Same(t, created, got)

	_, err = repo.Get(context.Background(), "9999999")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestListByOwner(t *testing.T) {
	repo := NewRepoMem("0001")
	owner := randompkg.Owner()

	first := createAccount(t, repo, owner, domain.Checking)
	createAccount(t, repo, randompkg.Owner(), domain.Checking)
	second := createAccount(t, repo, owner, domain.Savings)

	accounts, err := repo.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	gotNumbers := []string{accounts[0].Number(), accounts[1].Number()}
	require.Empty(t, cmp.Diff([]string{first.Number(), second.Number()}, gotNumbers))

	none, err := repo.ListByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestConcurrentCreateAllocatesUniqueNumbers(t *testing.T) {
	repo := NewRepoMem("0001")

	const workers = 50

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[string]bool)
	)

	wg.Add(workers)

	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()

			account, err := repo.Create(context.Background(), domain.CreateAccountParams{
				Owner: randompkg.Owner(),
				Kind:  randompkg.Kind(),
			})
			errs <- err

			if err == nil {
				mu.Lock()
				numbers[account.Number()] = true
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	require.Len(t, numbers, workers)
}
