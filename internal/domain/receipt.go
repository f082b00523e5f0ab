package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt is the data printed on a withdrawal receipt
type Receipt struct {
	ID               uuid.UUID
	CustomerName     string
	AmountWithdrawn  decimal.Decimal
	RemainingBalance decimal.Decimal
	Timestamp        time.Time
}

// NewReceipt creates a receipt for a committed withdrawal
func NewReceipt(customerName string, withdrawn, remaining decimal.Decimal, at time.Time) Receipt {
	return Receipt{
		ID:               uuid.New(),
		CustomerName:     customerName,
		AmountWithdrawn:  withdrawn,
		RemainingBalance: remaining,
		Timestamp:        at,
	}
}

// FileName returns the download name of the receipt document
func (r Receipt) FileName() string {
	return fmt.Sprintf("%s_ATM_Receipt.pdf", r.CustomerName)
}
