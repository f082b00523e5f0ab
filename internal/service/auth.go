package service

import (
	"atm/internal/domain"

	"go.uber.org/zap"
)

// AuthService handles PIN authentication of ATM sessions
type AuthService struct {
	machine *domain.Machine
	logger  *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(machine *domain.Machine, logger *zap.Logger) *AuthService {
	return &AuthService{
		machine: machine,
		logger:  logger,
	}
}

// Authenticate binds the session to the account owning pin.
// On failure the session is left untouched.
func (s *AuthService) Authenticate(session *domain.Session, pin string) (domain.UserAccount, error) {
	acc, err := s.machine.FindByPIN(pin)
	if err != nil {
		s.logger.Info("PIN rejected")
		return domain.UserAccount{}, err
	}

	*session = domain.Session{
		UserID:        acc.UserID,
		Authenticated: true,
		Operation:     domain.OperationNone,
	}

	s.logger.Info("Session authenticated", zap.Int64("user_id", acc.UserID))
	return acc, nil
}

// Reset ends the session
func (s *AuthService) Reset(session *domain.Session) {
	session.Reset()
}

// IsAuthenticated checks if the session holds an account
func (s *AuthService) IsAuthenticated(session *domain.Session) bool {
	return session.Authenticated
}
