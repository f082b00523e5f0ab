package repository

import (
	"atm/internal/domain"
)

// AccountRepository supplies the user directory at startup
type AccountRepository interface {
	ListAccounts() ([]domain.UserAccount, error)
}
