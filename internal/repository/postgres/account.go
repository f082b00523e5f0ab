package postgres

import (
	"database/sql"

	"atm/internal/domain"
)

// AccountRepo implements repository.AccountRepository.
// It only reads: balances changed by withdrawals are never written back.
type AccountRepo struct {
	db *sql.DB
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// ListAccounts returns all accounts ordered by user id
func (r *AccountRepo) ListAccounts() ([]domain.UserAccount, error) {
	query := `
		SELECT user_id, name, pin, balance
		FROM accounts
		ORDER BY user_id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.UserAccount
	for rows.Next() {
		var a domain.UserAccount
		if err := rows.Scan(&a.UserID, &a.Name, &a.PIN, &a.Balance); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}
