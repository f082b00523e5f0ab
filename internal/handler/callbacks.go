package handler

import (
	"strings"
	"unicode"

	"atm/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Same text and keyboard, e.g. a double tap on a button
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// show edits the button's message on callbacks and sends a new one otherwise
func (h *Handler) show(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	var opts []interface{}
	if markup != nil {
		opts = append(opts, markup)
	}

	if c.Callback() == nil {
		return c.Send(text, opts...)
	}

	if err := c.Edit(text, opts...); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil
		}
		return c.Send(text, opts...)
	}
	return c.Respond()
}

// handleCallback handles callback queries not matched by a registered button
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	route := callback.Unique
	if route == "" {
		route = data
	}

	switch route {
	case btnWithdraw.Unique:
		return h.handleWithdraw(c)
	case btnCheckBalance.Unique:
		return h.handleCheckBalance(c)
	case btnReceipt.Unique:
		return h.handleToggleReceipt(c)
	case btnExit.Unique, btnReturn.Unique, btnCancel.Unique:
		return h.handleReset(c)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleWithdraw opens the withdraw screen
func (h *Handler) handleWithdraw(c tele.Context) error {
	userID := c.Sender().ID

	unlock := h.lockChat(userID)
	defer unlock()

	state := h.GetState(userID)
	if err := h.txService.SelectOperation(&state.Session, domain.OperationWithdraw); err != nil {
		return h.show(c, errorMessage(err), nil)
	}

	state.State = domain.StateWaitingAmount
	h.SetState(userID, state)

	return h.show(c, msgWithdrawPrompt, withdrawMarkup(state.WantsReceipt))
}

// handleCheckBalance shows the balance of the session's account
func (h *Handler) handleCheckBalance(c tele.Context) error {
	userID := c.Sender().ID

	unlock := h.lockChat(userID)
	defer unlock()

	state := h.GetState(userID)
	if err := h.txService.SelectOperation(&state.Session, domain.OperationCheckBalance); err != nil {
		return h.show(c, errorMessage(err), nil)
	}

	balance, err := h.txService.CheckBalance(&state.Session)
	if err != nil {
		h.logger.Error("Failed to check balance", zap.Error(err), zap.Int64("user_id", userID))
		return h.show(c, errorMessage(err), nil)
	}

	state.State = domain.StateIdle
	h.SetState(userID, state)

	return h.show(c, balanceMessage(balance), balanceMarkup())
}

// handleToggleReceipt flips the receipt choice on the withdraw screen
func (h *Handler) handleToggleReceipt(c tele.Context) error {
	userID := c.Sender().ID

	unlock := h.lockChat(userID)
	defer unlock()

	state := h.GetState(userID)
	if state.State != domain.StateWaitingAmount {
		return c.Respond()
	}

	state.WantsReceipt = !state.WantsReceipt
	h.SetState(userID, state)

	return h.show(c, msgWithdrawPrompt, withdrawMarkup(state.WantsReceipt))
}
