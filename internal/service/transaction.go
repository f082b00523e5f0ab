package service

import (
	"time"

	"atm/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceiptRenderer turns receipt data into a downloadable document
type ReceiptRenderer interface {
	Render(rec domain.Receipt) ([]byte, error)
}

// WithdrawResult is a committed withdrawal and, when requested, its receipt
type WithdrawResult struct {
	domain.WithdrawOutcome
	Receipt  *domain.Receipt
	Document []byte
}

// TransactionService handles operations of an authenticated session
type TransactionService struct {
	machine  *domain.Machine
	receipts ReceiptRenderer
	logger   *zap.Logger
	now      func() time.Time
}

// NewTransactionService creates a new transaction service
func NewTransactionService(machine *domain.Machine, receipts ReceiptRenderer, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		machine:  machine,
		receipts: receipts,
		logger:   logger,
		now:      time.Now,
	}
}

// SelectOperation sets the pending operation of the session
func (s *TransactionService) SelectOperation(session *domain.Session, op domain.Operation) error {
	if !session.Authenticated {
		return domain.ErrNotAuthenticated
	}
	if !op.Valid() {
		return domain.ErrUnknownOperation
	}

	session.Operation = op
	return nil
}

// CheckBalance returns the balance of the session's account
func (s *TransactionService) CheckBalance(session *domain.Session) (decimal.Decimal, error) {
	if !session.Authenticated {
		return decimal.Zero, domain.ErrNotAuthenticated
	}

	acc, err := s.machine.Account(session.UserID)
	if err != nil {
		return decimal.Zero, err
	}

	return acc.Balance, nil
}

// Withdraw takes amount from the session's account and the machine.
// A receipt that fails to render is logged and dropped; the withdrawal stays committed.
func (s *TransactionService) Withdraw(session *domain.Session, amount decimal.Decimal, wantsReceipt bool) (*WithdrawResult, error) {
	if !session.Authenticated {
		return nil, domain.ErrNotAuthenticated
	}

	outcome, err := s.machine.Withdraw(session.UserID, amount)
	if err != nil {
		s.logger.Info("Withdrawal rejected",
			zap.Int64("user_id", session.UserID),
			zap.String("amount", amount.String()),
			zap.Error(err),
		)
		return nil, err
	}

	session.Operation = domain.OperationNone

	s.logger.Info("Withdrawal committed",
		zap.Int64("user_id", session.UserID),
		zap.String("amount", outcome.AmountWithdrawn.String()),
		zap.String("cash_pool", outcome.CashPool.String()),
	)

	result := &WithdrawResult{WithdrawOutcome: outcome}

	if wantsReceipt {
		rec := domain.NewReceipt(outcome.Account.Name, outcome.AmountWithdrawn, outcome.NewBalance, s.now())
		result.Receipt = &rec

		doc, err := s.receipts.Render(rec)
		if err != nil {
			s.logger.Error("Failed to render receipt",
				zap.Error(err),
				zap.Int64("user_id", session.UserID),
				zap.String("receipt_id", rec.ID.String()),
			)
		} else {
			result.Document = doc
		}
	}

	return result, nil
}
