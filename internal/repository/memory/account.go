package memory

import (
	"atm/internal/domain"

	"github.com/shopspring/decimal"
)

// AccountRepo implements repository.AccountRepository over a fixed list
type AccountRepo struct {
	accounts []domain.UserAccount
}

// NewAccountRepo creates a repository serving accounts.
// With no accounts it serves the default card holders.
func NewAccountRepo(accounts ...domain.UserAccount) *AccountRepo {
	if len(accounts) == 0 {
		accounts = DefaultAccounts()
	}
	return &AccountRepo{accounts: accounts}
}

// ListAccounts returns a copy of the configured accounts
func (r *AccountRepo) ListAccounts() ([]domain.UserAccount, error) {
	accounts := make([]domain.UserAccount, len(r.accounts))
	copy(accounts, r.accounts)
	return accounts, nil
}

// DefaultAccounts returns the card holders the machine ships with
func DefaultAccounts() []domain.UserAccount {
	return []domain.UserAccount{
		{UserID: 1, Name: "John", PIN: "1234", Balance: decimal.NewFromInt(5000)},
		{UserID: 2, Name: "Alice", PIN: "5678", Balance: decimal.NewFromInt(2000)},
		{UserID: 3, Name: "Bob", PIN: "9012", Balance: decimal.NewFromInt(10000)},
	}
}
