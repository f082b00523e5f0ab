package handler

import (
	"errors"
	"fmt"

	"atm/internal/domain"
	"atm/internal/middleware"
	"atm/internal/service"

	"github.com/shopspring/decimal"
)

const (
	msgEnterPIN        = middleware.PromptPIN
	msgSelectOperation = "Select Operation"
	msgWithdrawPrompt  = "Withdraw Money\n\nEnter amount"
	msgSomethingWrong  = "Something went wrong. Try again later."
)

func welcomeMessage(name string) string {
	return fmt.Sprintf("Welcome, %s\n\n%s", name, msgSelectOperation)
}

func balanceMessage(balance decimal.Decimal) string {
	return "Your balance is " + domain.FormatAmount(balance)
}

func withdrawSuccessMessage(res *service.WithdrawResult) string {
	return fmt.Sprintf("Success! You withdrew %s. Your new balance is %s.",
		domain.FormatAmount(res.AmountWithdrawn),
		domain.FormatAmount(res.NewBalance),
	)
}

// errorMessage maps an operation error to the text shown on the ATM screen
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidPin):
		return "Invalid PIN. Try again."
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Insufficient balance."
	case errors.Is(err, domain.ErrMachineCapacityExceeded):
		return "ATM capacity exceeded. Server down."
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Invalid amount. Enter a positive number."
	case errors.Is(err, domain.ErrNotAuthenticated):
		return msgEnterPIN
	default:
		return msgSomethingWrong
	}
}

// SessionTimeoutMessage is sent to chats whose session expired while idle
const SessionTimeoutMessage = "⏱ Session timed out.\n\n" + msgEnterPIN
