package testutil

import (
	"atm/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestAccount creates a test account
func NewTestAccount(userID int64, name, pin string, balance int64) domain.UserAccount {
	return domain.UserAccount{
		UserID:  userID,
		Name:    name,
		PIN:     pin,
		Balance: decimal.NewFromInt(balance),
	}
}

// NewTestMachine creates a machine with John (1234, 5000) and Alice (5678, 2000)
func NewTestMachine(cashPool int64) *domain.Machine {
	return domain.NewMachine(decimal.NewFromInt(cashPool), []domain.UserAccount{
		NewTestAccount(1, "John", "1234", 5000),
		NewTestAccount(2, "Alice", "5678", 2000),
	})
}
