package handler

import (
	"sync"
	"time"

	"atm/internal/domain"
	"atm/internal/middleware"
	"atm/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	authService *service.AuthService
	txService   *service.TransactionService
	logger      *zap.Logger
	now         func() time.Time

	// Chat states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Per-chat locks so events of one chat are handled in order
	chatLocks map[int64]*chatLock
	lockMux   sync.Mutex
}

// chatLock serialises one chat; refs counts holders and waiters so idle locks can be pruned
type chatLock struct {
	mu   sync.Mutex
	refs int
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	txService *service.TransactionService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:         bot,
		authService: authService,
		txService:   txService,
		logger:      logger,
		now:         time.Now,
		states:      make(map[int64]*domain.StateData),
		chatLocks:   make(map[int64]*chatLock),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages: PIN and withdrawal amount
	h.bot.Handle(tele.OnText, h.handleText)

	// Buttons that end the session
	h.bot.Handle(&btnExit, h.handleReset)
	h.bot.Handle(&btnReturn, h.handleReset)
	h.bot.Handle(&btnCancel, h.handleReset)

	// Buttons that need an authenticated session
	ops := h.bot.Group()
	ops.Use(middleware.SessionMiddleware(h, h.logger))
	ops.Handle(&btnWithdraw, h.handleWithdraw)
	ops.Handle(&btnCheckBalance, h.handleCheckBalance)
	ops.Handle(&btnReceipt, h.handleToggleReceipt)

	// Generic callback handler for buttons whose unique did not come through
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns a copy of the chat's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	st := *state
	return &st
}

// SetState sets the chat's state and marks it active
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	state.UpdatedAt = h.now()
	h.states[userID] = state
}

// ResetState ends the chat's session and waits for a PIN
func (h *Handler) ResetState(userID int64) {
	state := h.GetState(userID)
	h.authService.Reset(&state.Session)
	h.SetState(userID, &domain.StateData{
		State:   domain.StateWaitingPIN,
		Session: state.Session,
	})
}

// IsAuthenticated reports whether the chat holds an authenticated session
func (h *Handler) IsAuthenticated(userID int64) bool {
	state := h.GetState(userID)
	return h.authService.IsAuthenticated(&state.Session)
}

// ExpireIdleSessions drops chats inactive for longer than idle and returns the ids
// of those that held an authenticated session
func (h *Handler) ExpireIdleSessions(idle time.Duration) []int64 {
	cutoff := h.now().Add(-idle)

	h.stateMux.RLock()
	var candidates []int64
	for userID, state := range h.states {
		if !state.UpdatedAt.After(cutoff) {
			candidates = append(candidates, userID)
		}
	}
	h.stateMux.RUnlock()

	var expired []int64
	for _, userID := range candidates {
		if h.expireChat(userID, cutoff) {
			expired = append(expired, userID)
		}
	}

	h.pruneChatLocks()

	if len(expired) > 0 {
		h.logger.Info("Idle sessions expired", zap.Int("count", len(expired)))
	}

	return expired
}

// expireChat deletes the chat's state if it is still idle once the chat lock is held.
// Reports whether an authenticated session was dropped.
func (h *Handler) expireChat(userID int64, cutoff time.Time) bool {
	unlock := h.lockChat(userID)
	defer unlock()

	h.stateMux.Lock()
	defer h.stateMux.Unlock()

	state, exists := h.states[userID]
	if !exists || state.UpdatedAt.After(cutoff) {
		return false
	}

	delete(h.states, userID)
	return state.Session.Authenticated
}

// pruneChatLocks removes locks of chats with no state and no holder or waiter
func (h *Handler) pruneChatLocks() {
	h.lockMux.Lock()
	defer h.lockMux.Unlock()

	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	for userID, lock := range h.chatLocks {
		if lock.refs > 0 {
			continue
		}
		if _, live := h.states[userID]; !live {
			delete(h.chatLocks, userID)
		}
	}
}

// lockChat serialises events of one chat and returns the unlock func
func (h *Handler) lockChat(userID int64) func() {
	h.lockMux.Lock()
	lock, exists := h.chatLocks[userID]
	if !exists {
		lock = &chatLock{}
		h.chatLocks[userID] = lock
	}
	lock.refs++
	h.lockMux.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		h.lockMux.Lock()
		lock.refs--
		h.lockMux.Unlock()
	}
}

// Inline keyboard buttons
var (
	btnWithdraw = tele.Btn{
		Unique: "withdraw",
		Text:   "💵 Withdraw",
	}
	btnCheckBalance = tele.Btn{
		Unique: "check_balance",
		Text:   "💰 Check Balance",
	}
	btnExit = tele.Btn{
		Unique: "exit",
		Text:   "🚪 Exit",
	}
	btnReturn = tele.Btn{
		Unique: "return",
		Text:   "↩️ Return",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnReceipt = tele.Btn{
		Unique: "receipt",
	}
)

// mainMenuMarkup returns the operation selection keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnWithdraw),
		menu.Row(btnCheckBalance),
		menu.Row(btnExit),
	)
	return menu
}

// withdrawMarkup returns the withdraw screen keyboard with the receipt toggle
func withdrawMarkup(wantsReceipt bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data(receiptLabel(wantsReceipt), btnReceipt.Unique)),
		menu.Row(btnCancel),
	)
	return menu
}

// balanceMarkup returns the balance screen keyboard
func balanceMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnReturn))
	return menu
}

func receiptLabel(wantsReceipt bool) string {
	if wantsReceipt {
		return "🧾 Receipt: yes"
	}
	return "🧾 Receipt: no"
}
