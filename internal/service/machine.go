package service

import (
	"errors"
	"fmt"

	"atm/internal/domain"
	"atm/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LoadMachine builds the machine from the account directory
func LoadMachine(repo repository.AccountRepository, cashPool decimal.Decimal, logger *zap.Logger) (*domain.Machine, error) {
	if cashPool.IsNegative() {
		return nil, fmt.Errorf("cash pool cannot be negative: %s", cashPool)
	}

	accounts, err := repo.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if len(accounts) == 0 {
		return nil, errors.New("account directory is empty")
	}

	for _, acc := range accounts {
		if acc.Balance.IsNegative() {
			return nil, fmt.Errorf("account %d has a negative balance", acc.UserID)
		}
	}

	machine := domain.NewMachine(cashPool, accounts)

	if dups := machine.DuplicatePINs(); len(dups) > 0 {
		// PINs themselves are not logged
		logger.Warn("Account directory has shared PINs, those accounts cannot sign in",
			zap.Int("shared_pins", len(dups)),
		)
	}

	logger.Info("Machine loaded",
		zap.Int("accounts", len(accounts)),
		zap.String("cash_pool", cashPool.String()),
	)

	return machine, nil
}
