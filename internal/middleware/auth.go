package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// PromptPIN is shown to chats that press an operation button without a session
const PromptPIN = "🏧 ATM Machine\n\nEnter your PIN"

// SessionChecker reports whether a chat holds an authenticated ATM session
type SessionChecker interface {
	IsAuthenticated(userID int64) bool
}

// SessionMiddleware lets operation buttons through only for authenticated chats
func SessionMiddleware(checker SessionChecker, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			if checker.IsAuthenticated(userID) {
				return next(c)
			}

			logger.Debug("Operation without session, asking for PIN", zap.Int64("user_id", userID))

			// Stop the button spinner before asking for the PIN
			if c.Callback() != nil {
				if err := c.Respond(); err != nil {
					logger.Warn("Failed to acknowledge callback", zap.Error(err))
				}
			}
			return c.Send(PromptPIN)
		}
	}
}
