package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return d
}

func requireBalance(t *testing.T, a *Account, want string) {
	t.Helper()
	require.True(t, a.Balance().Equal(dec(t, want)), "balance = %s, want %s", a.Balance(), want)
}

func TestDeposit(t *testing.T) {
	testCases := []struct {
		name        string
		amount      string
		wantErr     error
		wantBalance string
		wantEntries int
	}{
		{name: "OK", amount: "250.50", wantBalance: "1250.50", wantEntries: 1},
		{name: "ZeroAmount", amount: "0", wantErr: ErrInvalidAmount, wantBalance: "1000", wantEntries: 0},
		{name: "NegativeAmount", amount: "-5", wantErr: ErrInvalidAmount, wantBalance: "1000", wantEntries: 0},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			account := NewChecking("owner", "0000001", "0001", dec(t, "1000"), decimal.Zero)

			tx, err := account.Deposit(dec(t, tc.amount))

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, TxDeposit, tx.Kind)
				require.Equal(t, account.Number(), tx.FromAccount)
				require.Empty(t, tx.ToAccount)
				require.True(t, tx.Amount.Equal(dec(t, tc.amount)))
				require.NotEmpty(t, tx.ID)
			}

			requireBalance(t, account, tc.wantBalance)
			require.Len(t, account.Transactions(Filter{}), tc.wantEntries)
		})
	}
}

func TestWithdraw(t *testing.T) {
	testCases := []struct {
		name        string
		account     func(t *testing.T) *Account
		amount      string
		wantErr     error
		wantBalance string
	}{
		{
			name: "ExactBalance",
			account: func(t *testing.T) *Account {
				return NewChecking("owner", "0000001", "0001", dec(t, "1000"), decimal.Zero)
			},
			amount:      "1000",
			wantBalance: "0",
		},
		{
			name: "OverCeilingWithoutOverdraft",
			account: func(t *testing.T) *Account {
				return NewChecking("owner", "0000001", "0001", dec(t, "1000"), decimal.Zero)
			},
			amount:      "1001",
			wantErr:     ErrInsufficientFunds,
			wantBalance: "1000",
		},
		{
			name: "IntoOverdraft",
			account: func(t *testing.T) *Account {
				return NewChecking("owner", "0000001", "0001", dec(t, "1000"), dec(t, "500"))
			},
			amount:      "1500",
			wantBalance: "-500",
		},
		{
			name: "BeyondOverdraft",
			account: func(t *testing.T) *Account {
				return NewChecking("owner", "0000001", "0001", dec(t, "1000"), dec(t, "500"))
			},
			amount:      "1500.01",
			wantErr:     ErrInsufficientFunds,
			wantBalance: "1000",
		},
		{
			name: "SavingsHasNoOverdraft",
			account: func(t *testing.T) *Account {
				return NewSavings("owner", "0000001", "0001", dec(t, "1000"))
			},
			amount:      "1000.01",
			wantErr:     ErrInsufficientFunds,
			wantBalance: "1000",
		},
		{
			name: "ZeroAmount",
			account: func(t *testing.T) *Account {
				return NewSavings("owner", "0000001", "0001", dec(t, "1000"))
			},
			amount:      "0",
			wantErr:     ErrInvalidAmount,
			wantBalance: "1000",
		},
		{
			name: "NegativeAmount",
			account: func(t *testing.T) *Account {
				return NewChecking("owner", "0000001", "0001", dec(t, "1000"), decimal.Zero)
			},
			amount:      "-10",
			wantErr:     ErrInvalidAmount,
			wantBalance: "1000",
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			account := tc.account(t)

			tx, err := account.Withdraw(dec(t, tc.amount))

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, account.Transactions(Filter{}))
			} else {
				require.NoError(t, err)
				require.Equal(t, TxWithdrawal, tx.Kind)
				require.True(t, tx.Amount.Equal(dec(t, tc.amount)))
				require.Len(t, account.Transactions(Filter{}), 1)
			}

			requireBalance(t, account, tc.wantBalance)
		})
	}
}

func TestAccrueYield(t *testing.T) {
	testCases := []struct {
		name        string
		account     func(t *testing.T) *Account
		rate        string
		wantErr     error
		wantBalance string
	}{
		{
			name: "OK",
			account: func(t *testing.T) *Account {
				return NewSavings("owner", "0000001", "0001", dec(t, "1000"))
			},
			rate:        "0.01",
			wantBalance: "1010",
		},
		{
			name: "ZeroRate",
			account: func(t *testing.T) *Account {
				return NewSavings("owner", "0000001", "0001", dec(t, "1000"))
			},
			rate:        "0",
			wantErr:     ErrInvalidRate,
			wantBalance: "1000",
		},
		{
			name: "NegativeRate",
			account: func(t *testing.T) *Account {
				return NewSavings("owner", "0000001", "0001", dec(t, "1000"))
			},
			rate:        "-0.01",
			wantErr:     ErrInvalidRate,
			wantBalance: "1000",
		},
		{
			name: "CheckingUnsupported",
			account: func(t *testing.T) *Account {
				return NewChecking("owner", "0000001", "0001", dec(t, "1000"), decimal.Zero)
			},
			rate:        "0.01",
			wantErr:     ErrYieldUnsupported,
			wantBalance: "1000",
		},
		{
			name: "ZeroBalanceYieldsNothing",
			account: func(t *testing.T) *Account {
				return NewSavings("owner", "0000001", "0001", decimal.Zero)
			},
			rate:        "0.01",
			wantErr:     ErrInvalidAmount,
			wantBalance: "0",
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			account := tc.account(t)

			tx, err := account.AccrueYield(dec(t, tc.rate))

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, account.Transactions(Filter{}))
			} else {
				require.NoError(t, err)

				// Accrual is indistinguishable in the ledger from an external deposit.
				require.Equal(t, TxDeposit, tx.Kind)
				require.True(t, tx.Amount.Equal(dec(t, "10")))

				deposits := account.Transactions(Filter{Kind: TxDeposit})
				require.Len(t, deposits, 1)
			}

			requireBalance(t, account, tc.wantBalance)
		})
	}
}

func TestBalanceEqualsSumOfSignedMutations(t *testing.T) {
	account := NewChecking("owner", "0000001", "0001", dec(t, "100"), dec(t, "50"))

	_, err := account.Deposit(dec(t, "40"))
	require.NoError(t, err)
	_, err = account.Withdraw(dec(t, "120"))
	require.NoError(t, err)
	_, err = account.Deposit(dec(t, "5.25"))
	require.NoError(t, err)
	_, err = account.Withdraw(dec(t, "70"))
	require.NoError(t, err)

	sum := dec(t, "100") // opening balance
	for _, tx := range account.Transactions(Filter{}) {
		switch tx.Kind {
		case TxDeposit:
			sum = sum.Add(tx.Amount)
		case TxWithdrawal:
			sum = sum.Sub(tx.Amount)
		}
	}

	require.True(t, account.Balance().Equal(sum))
	requireBalance(t, account, "-44.75")
}

func TestFailedOperationsAreIdempotent(t *testing.T) {
	account := NewSavings("owner", "0000001", "0001", dec(t, "1000"))

	for i := 0; i < 3; i++ {
		_, err := account.Deposit(dec(t, "-5"))
		require.ErrorIs(t, err, ErrInvalidAmount)

		_, err = account.Withdraw(dec(t, "5000"))
		require.ErrorIs(t, err, ErrInsufficientFunds)

		requireBalance(t, account, "1000")
		require.Empty(t, account.Transactions(Filter{}))
	}
}

func TestLogIsAppendOnly(t *testing.T) {
	account := NewSavings("owner", "0000001", "0001", dec(t, "1000"))

	_, err := account.Deposit(dec(t, "10"))
	require.NoError(t, err)

	before := account.Transactions(Filter{})

	// Mutating a returned snapshot must not affect the log.
	before[0].Amount = dec(t, "999999")
	before[0].ID = "tampered"

	_, err = account.Deposit(dec(t, "20"))
	require.NoError(t, err)

	after := account.Transactions(Filter{})
	require.Len(t, after, 2)
	require.True(t, after[0].Amount.Equal(dec(t, "10")))
	require.NotEqual(t, "tampered", after[0].ID)
	require.False(t, after[1].CreatedAt.Before(after[0].CreatedAt))
}
