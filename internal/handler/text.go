package handler

import (
	"bytes"
	"strings"

	"atm/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	unlock := h.lockChat(userID)
	defer unlock()

	state := h.GetState(userID)

	// Anything typed before authentication is a PIN
	if !h.authService.IsAuthenticated(&state.Session) {
		return h.handlePIN(c, state, text)
	}

	switch state.State {
	case domain.StateWaitingAmount:
		return h.handleAmount(c, state, text)

	default:
		h.SetState(userID, state)
		return c.Send(msgSelectOperation, mainMenuMarkup())
	}
}

// handlePIN authenticates the chat with the typed PIN
func (h *Handler) handlePIN(c tele.Context, state *domain.StateData, pin string) error {
	userID := c.Sender().ID

	// Best effort: the PIN should not stay in the chat history
	if err := c.Delete(); err != nil {
		h.logger.Debug("Failed to delete PIN message", zap.Error(err), zap.Int64("user_id", userID))
	}

	acc, err := h.authService.Authenticate(&state.Session, pin)
	if err != nil {
		state.State = domain.StateWaitingPIN
		h.SetState(userID, state)
		return c.Send(errorMessage(err))
	}

	h.logger.Info("User authenticated", zap.Int64("user_id", userID), zap.Int64("account_id", acc.UserID))

	state.State = domain.StateIdle
	h.SetState(userID, state)

	return c.Send(welcomeMessage(acc.Name), mainMenuMarkup())
}

// handleAmount withdraws the typed amount
func (h *Handler) handleAmount(c tele.Context, state *domain.StateData, text string) error {
	userID := c.Sender().ID

	amount, err := domain.ParseAmount(text)
	if err != nil {
		h.SetState(userID, state)
		return c.Send(errorMessage(err), withdrawMarkup(state.WantsReceipt))
	}

	res, err := h.txService.Withdraw(&state.Session, amount, state.WantsReceipt)
	if err != nil {
		h.SetState(userID, state)
		return c.Send(errorMessage(err), withdrawMarkup(state.WantsReceipt))
	}

	state.State = domain.StateIdle
	h.SetState(userID, state)

	if err := c.Send(withdrawSuccessMessage(res)); err != nil {
		return err
	}

	if res.Document != nil {
		doc := &tele.Document{
			File:     tele.FromReader(bytes.NewReader(res.Document)),
			FileName: res.Receipt.FileName(),
			MIME:     "application/pdf",
			Caption:  "🧾 Your receipt",
		}
		// The withdrawal is already committed; a lost receipt is only logged
		if err := c.Send(doc); err != nil {
			h.logger.Error("Failed to send receipt",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.String("receipt_id", res.Receipt.ID.String()),
			)
		}
	}

	return c.Send(msgSelectOperation, mainMenuMarkup())
}
