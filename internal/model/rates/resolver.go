package rates

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"expensedash/internal/entity/currency"
	"expensedash/internal/model/customerr"
)

type ratesProvider interface {
	GetRates(ctx context.Context, base string) (map[string]float64, error)
}

type config interface {
	RequestTimeoutSeconds() int64
	CacheExpiryMinutes() int64
}

// Resolver answers (from -> to) conversion rate lookups. Provider
// failures are mapped to customerr.RateUnavailableError so the write
// path can recover; they never crash past the conversion boundary.
type Resolver struct {
	provider ratesProvider
	timeout  time.Duration
	cache    *gocache.Cache
}

func NewResolver(provider ratesProvider, cfg config) *Resolver {
	r := &Resolver{
		provider: provider,
		timeout:  time.Duration(cfg.RequestTimeoutSeconds()) * time.Second,
	}
	if expiry := cfg.CacheExpiryMinutes(); expiry > 0 {
		d := time.Duration(expiry) * time.Minute
		r.cache = gocache.New(d, d)
	}
	return r
}

func (r *Resolver) Resolve(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if !currency.IsSupported(from) {
		return decimal.Zero, &customerr.InvalidInputError{Field: "currency", Reason: "unsupported code " + from}
	}
	if !currency.IsSupported(to) {
		return decimal.Zero, &customerr.InvalidInputError{Field: "currency", Reason: "unsupported code " + to}
	}

	// Same-currency conversion never leaves the process.
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	if r.cache != nil {
		if cached, ok := r.cache.Get(cacheKey(from, to)); ok {
			return cached.(decimal.Decimal), nil
		}
	}

	rate, err := r.fetch(ctx, from, to)
	if err != nil {
		return decimal.Zero, &customerr.RateUnavailableError{From: from, To: to, Cause: err}
	}

	if r.cache != nil {
		r.cache.Set(cacheKey(from, to), rate, gocache.DefaultExpiration)
	}
	return rate, nil
}

func (r *Resolver) fetch(ctx context.Context, from, to string) (decimal.Decimal, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "fetchRate")
	defer span.Finish()
	span.SetTag("from", from)
	span.SetTag("to", to)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	pulled, err := r.provider.GetRates(ctx, from)
	if err != nil {
		ext.Error.Set(span, true)
		return decimal.Zero, errors.Wrap(err, "pulling rates")
	}

	raw, ok := pulled[to]
	if !ok {
		ext.Error.Set(span, true)
		return decimal.Zero, errors.Errorf("no rate for %s in response", to)
	}
	if raw <= 0 {
		ext.Error.Set(span, true)
		return decimal.Zero, errors.Errorf("non-positive rate %v for %s", raw, to)
	}
	return decimal.NewFromFloat(raw), nil
}

func cacheKey(from, to string) string {
	return from + "/" + to
}
