package domain

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC)

func seedAccounts() []UserAccount {
	return []UserAccount{
		{UserID: 1, Name: "John", PIN: "1234", Balance: decimal.NewFromInt(5000)},
		{UserID: 2, Name: "Alice", PIN: "5678", Balance: decimal.NewFromInt(2000)},
		{UserID: 3, Name: "Bob", PIN: "9012", Balance: decimal.NewFromInt(10000)},
	}
}

func TestMachine_FindByPIN(t *testing.T) {
	tests := []struct {
		name          string
		accounts      []UserAccount
		pin           string
		expectedName  string
		expectedError bool
	}{
		{
			name:         "known pin",
			accounts:     seedAccounts(),
			pin:          "5678",
			expectedName: "Alice",
		},
		{
			name:          "unknown pin",
			accounts:      seedAccounts(),
			pin:           "0000",
			expectedError: true,
		},
		{
			name:          "empty pin",
			accounts:      seedAccounts(),
			pin:           "",
			expectedError: true,
		},
		{
			name: "pin shared by two accounts",
			accounts: []UserAccount{
				{UserID: 1, Name: "John", PIN: "1111"},
				{UserID: 2, Name: "Alice", PIN: "1111"},
			},
			pin:           "1111",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(decimal.NewFromInt(100000), tt.accounts)

			acc, err := m.FindByPIN(tt.pin)

			if tt.expectedError {
				assert.ErrorIs(t, err, ErrInvalidPin)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedName, acc.Name)
		})
	}
}

func TestMachine_Withdraw(t *testing.T) {
	tests := []struct {
		name            string
		cashPool        int64
		amount          decimal.Decimal
		expectedError   error
		expectedBalance int64
		expectedPool    int64
	}{
		{
			name:            "successful withdrawal",
			cashPool:        100000,
			amount:          decimal.NewFromInt(200),
			expectedBalance: 4800,
			expectedPool:    99800,
		},
		{
			name:            "whole balance",
			cashPool:        100000,
			amount:          decimal.NewFromInt(5000),
			expectedBalance: 0,
			expectedPool:    95000,
		},
		{
			name:            "insufficient funds",
			cashPool:        100000,
			amount:          decimal.NewFromInt(6000),
			expectedError:   ErrInsufficientFunds,
			expectedBalance: 5000,
			expectedPool:    100000,
		},
		{
			name:            "machine capacity exceeded",
			cashPool:        100,
			amount:          decimal.NewFromInt(200),
			expectedError:   ErrMachineCapacityExceeded,
			expectedBalance: 5000,
			expectedPool:    100,
		},
		{
			name:            "balance checked before pool",
			cashPool:        100,
			amount:          decimal.NewFromInt(6000),
			expectedError:   ErrInsufficientFunds,
			expectedBalance: 5000,
			expectedPool:    100,
		},
		{
			name:            "zero amount",
			cashPool:        100000,
			amount:          decimal.Zero,
			expectedError:   ErrInvalidAmount,
			expectedBalance: 5000,
			expectedPool:    100000,
		},
		{
			name:            "negative amount",
			cashPool:        100000,
			amount:          decimal.NewFromInt(-10),
			expectedError:   ErrInvalidAmount,
			expectedBalance: 5000,
			expectedPool:    100000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(decimal.NewFromInt(tt.cashPool), seedAccounts())

			outcome, err := m.Withdraw(1, tt.amount)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.True(t, outcome.AmountWithdrawn.Equal(tt.amount))
				assert.True(t, outcome.NewBalance.Equal(decimal.NewFromInt(tt.expectedBalance)))
				assert.True(t, outcome.CashPool.Equal(decimal.NewFromInt(tt.expectedPool)))
			}

			acc, err := m.Account(1)
			require.NoError(t, err)
			assert.True(t, acc.Balance.Equal(decimal.NewFromInt(tt.expectedBalance)),
				"balance %s", acc.Balance)
			assert.True(t, m.CashPool().Equal(decimal.NewFromInt(tt.expectedPool)),
				"pool %s", m.CashPool())
		})
	}
}

func TestMachine_Withdraw_UnknownAccount(t *testing.T) {
	m := NewMachine(decimal.NewFromInt(100000), seedAccounts())

	_, err := m.Withdraw(42, decimal.NewFromInt(10))

	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.True(t, m.CashPool().Equal(decimal.NewFromInt(100000)))
}

func TestMachine_OwnsAccounts(t *testing.T) {
	accounts := seedAccounts()
	m := NewMachine(decimal.NewFromInt(100000), accounts)

	_, err := m.Withdraw(1, decimal.NewFromInt(200))
	require.NoError(t, err)

	// The caller's slice is not aliased
	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(5000)))

	snapshot := m.Accounts()
	snapshot[0].Balance = decimal.Zero

	acc, err := m.Account(1)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(4800)))
}

func TestMachine_ConcurrentWithdrawals(t *testing.T) {
	m := NewMachine(decimal.NewFromInt(1000), seedAccounts())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, _ = m.Withdraw(userID, decimal.NewFromInt(100))
		}(int64(i%3 + 1))
	}
	wg.Wait()

	// 1000 in the pool allows exactly ten withdrawals of 100
	assert.True(t, m.CashPool().IsZero(), "pool %s", m.CashPool())

	total := decimal.Zero
	for _, acc := range m.Accounts() {
		total = total.Add(acc.Balance)
		assert.False(t, acc.Balance.IsNegative())
	}
	assert.True(t, total.Equal(decimal.NewFromInt(17000-1000)), "total %s", total)
}

func TestMachine_DuplicatePINs(t *testing.T) {
	m := NewMachine(decimal.Zero, []UserAccount{
		{UserID: 1, PIN: "1111"},
		{UserID: 2, PIN: "1111"},
		{UserID: 3, PIN: "1111"},
		{UserID: 4, PIN: "2222"},
	})

	assert.Equal(t, []string{"1111"}, m.DuplicatePINs())
	assert.Empty(t, NewMachine(decimal.Zero, seedAccounts()).DuplicatePINs())
}

func TestSession_Reset(t *testing.T) {
	s := Session{UserID: 1, Authenticated: true, Operation: OperationWithdraw}

	s.Reset()
	assert.Equal(t, Session{}, s)

	s.Reset()
	assert.Equal(t, Session{}, s)
}

func TestOperation_Valid(t *testing.T) {
	assert.True(t, OperationWithdraw.Valid())
	assert.True(t, OperationCheckBalance.Valid())
	assert.False(t, OperationNone.Valid())
	assert.False(t, Operation("transfer").Valid())
}
