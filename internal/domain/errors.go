package domain

import "errors"

var (
	ErrInvalidPin              = errors.New("invalid pin")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrMachineCapacityExceeded = errors.New("machine capacity exceeded")
	ErrInvalidAmount           = errors.New("invalid amount")

	ErrNotAuthenticated = errors.New("session is not authenticated")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrAccountNotFound  = errors.New("account not found")
)
