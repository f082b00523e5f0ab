package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserAccount represents an ATM card holder
type UserAccount struct {
	UserID  int64
	Name    string
	PIN     string
	Balance decimal.Decimal
}

// Operation is the transaction selected from the main menu
type Operation string

const (
	OperationNone         Operation = ""
	OperationWithdraw     Operation = "withdraw"
	OperationCheckBalance Operation = "checkBalance"
)

// Valid reports whether the operation can be selected from the menu
func (o Operation) Valid() bool {
	return o == OperationWithdraw || o == OperationCheckBalance
}

// Session is the authentication state of one ATM user.
// UserID refers into the machine's directory and is meaningful only when Authenticated is set.
type Session struct {
	UserID        int64
	Authenticated bool
	Operation     Operation
}

// Reset returns the session to the unauthenticated state
func (s *Session) Reset() {
	*s = Session{}
}

// ChatState represents what the bot expects next from a chat
type ChatState string

const (
	StateIdle          ChatState = "idle"
	StateWaitingPIN    ChatState = "waiting_pin"
	StateWaitingAmount ChatState = "waiting_amount"
)

// StateData holds the session and input state of one chat
type StateData struct {
	State        ChatState
	Session      Session
	WantsReceipt bool
	UpdatedAt    time.Time
}
