package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	unlock := h.lockChat(userID)
	defer unlock()

	h.ResetState(userID)
	return c.Send(msgEnterPIN)
}

// handleReset handles Exit, Return and Cancel: the session ends and the PIN is asked again
func (h *Handler) handleReset(c tele.Context) error {
	userID := c.Sender().ID

	unlock := h.lockChat(userID)
	defer unlock()

	h.ResetState(userID)
	h.logger.Info("Session reset", zap.Int64("user_id", userID))

	return h.show(c, msgEnterPIN, nil)
}
