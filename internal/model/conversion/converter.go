package conversion

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"expensedash/internal/logger"
)

type rateResolver interface {
	Resolve(ctx context.Context, from, to string) (decimal.Decimal, error)
}

type config interface {
	BaseCurrency() string
}

// Service converts raw amounts into base-currency units. On resolver
// failure it falls back to unity rate instead of failing the write:
// availability over correctness. The degraded result is observable via
// the warn log and the fallback counter, never via the persisted entry.
type Service struct {
	resolver rateResolver
	base     string
}

func NewService(resolver rateResolver, cfg config) *Service {
	return &Service{
		resolver: resolver,
		base:     cfg.BaseCurrency(),
	}
}

func (s *Service) BaseCurrency() string {
	return s.base
}

// Normalize assumes amount >= 0; negative amounts are rejected before
// this service is invoked.
func (s *Service) Normalize(ctx context.Context, amount decimal.Decimal, code string) decimal.Decimal {
	return s.Convert(ctx, amount, code, s.base)
}

func (s *Service) Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal {
	rate, err := s.resolver.Resolve(ctx, from, to)
	if err != nil {
		logger.Warn("rate unavailable, using unity rate",
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err),
		)
		observeFallback(from)
		return amount
	}
	return amount.Mul(rate)
}
