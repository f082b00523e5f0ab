package domain

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// WithdrawOutcome is the result of a committed withdrawal
type WithdrawOutcome struct {
	Account         UserAccount
	AmountWithdrawn decimal.Decimal
	NewBalance      decimal.Decimal
	CashPool        decimal.Decimal
}

// Machine owns the cash pool and the directory of accounts.
// Every balance and pool mutation goes through its mutex, so there is a single writer at a time.
type Machine struct {
	mu       sync.Mutex
	cashPool decimal.Decimal
	accounts []UserAccount
}

// NewMachine creates a machine holding cashPool and a private copy of accounts
func NewMachine(cashPool decimal.Decimal, accounts []UserAccount) *Machine {
	owned := make([]UserAccount, len(accounts))
	copy(owned, accounts)

	return &Machine{
		cashPool: cashPool,
		accounts: owned,
	}
}

// CashPool returns the cash currently available in the machine
func (m *Machine) CashPool() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cashPool
}

// Accounts returns a snapshot of the directory
func (m *Machine) Accounts() []UserAccount {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make([]UserAccount, len(m.accounts))
	copy(snapshot, m.accounts)

	return snapshot
}

// FindByPIN returns the account whose PIN matches.
// Zero or several matches are both reported as ErrInvalidPin.
func (m *Machine) FindByPIN(pin string) (UserAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		found   UserAccount
		matches int
	)

	for _, acc := range m.accounts {
		if acc.PIN == pin {
			found = acc
			matches++
		}
	}

	if matches != 1 {
		return UserAccount{}, ErrInvalidPin
	}

	return found, nil
}

// Account returns the current state of an account
func (m *Machine) Account(userID int64) (UserAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(userID)
	if idx < 0 {
		return UserAccount{}, fmt.Errorf("%w: %d", ErrAccountNotFound, userID)
	}

	return m.accounts[idx], nil
}

// Withdraw debits amount from the account and the cash pool.
// The balance is checked before the pool; on any failure nothing is changed.
func (m *Machine) Withdraw(userID int64, amount decimal.Decimal) (WithdrawOutcome, error) {
	if !amount.IsPositive() {
		return WithdrawOutcome{}, ErrInvalidAmount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(userID)
	if idx < 0 {
		return WithdrawOutcome{}, fmt.Errorf("%w: %d", ErrAccountNotFound, userID)
	}

	acc := &m.accounts[idx]

	if acc.Balance.LessThan(amount) {
		return WithdrawOutcome{}, ErrInsufficientFunds
	}

	if m.cashPool.LessThan(amount) {
		return WithdrawOutcome{}, ErrMachineCapacityExceeded
	}

	acc.Balance = acc.Balance.Sub(amount)
	m.cashPool = m.cashPool.Sub(amount)

	return WithdrawOutcome{
		Account:         *acc,
		AmountWithdrawn: amount,
		NewBalance:      acc.Balance,
		CashPool:        m.cashPool,
	}, nil
}

// DuplicatePINs returns PINs shared by more than one account
func (m *Machine) DuplicatePINs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]int, len(m.accounts))
	var dups []string

	for _, acc := range m.accounts {
		seen[acc.PIN]++
		if seen[acc.PIN] == 2 {
			dups = append(dups, acc.PIN)
		}
	}

	return dups
}

func (m *Machine) indexOf(userID int64) int {
	for i := range m.accounts {
		if m.accounts[i].UserID == userID {
			return i
		}
	}

	return -1
}
