package service

import (
	"atm/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StatsService reports machine level figures
type StatsService struct {
	machine      *domain.Machine
	lowWatermark decimal.Decimal
	logger       *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(machine *domain.Machine, lowWatermark decimal.Decimal, logger *zap.Logger) *StatsService {
	return &StatsService{
		machine:      machine,
		lowWatermark: lowWatermark,
		logger:       logger,
	}
}

// ReportCashLevel logs the cash pool and reports whether it is below the watermark
func (s *StatsService) ReportCashLevel() (decimal.Decimal, bool) {
	pool := s.machine.CashPool()
	low := pool.LessThan(s.lowWatermark)

	if low {
		s.logger.Warn("Cash pool is running low",
			zap.String("cash_pool", pool.String()),
			zap.String("watermark", s.lowWatermark.String()),
		)
		return pool, true
	}

	s.logger.Debug("Cash pool level", zap.String("cash_pool", pool.String()))
	return pool, false
}
