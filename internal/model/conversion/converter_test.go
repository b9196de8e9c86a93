package conversion

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"expensedash/internal/entity/currency"
	"expensedash/internal/model/customerr"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type stubConfig struct {
	base string
}

func (c stubConfig) BaseCurrency() string {
	return c.base
}

func Test_Normalize_MultipliesByResolvedRate(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything, currency.USD, currency.INR).
		Return(decimal.NewFromFloat(83.0), nil).Once()

	svc := NewService(resolver, stubConfig{base: currency.INR})
	got := svc.Normalize(context.Background(), decimal.RequireFromString("5.00"), currency.USD)

	assert.True(t, got.Equal(decimal.RequireFromString("415.00")), "got %s", got)
	resolver.AssertExpectations(t)
}

func Test_Normalize_FallsBackToUnityOnRateUnavailable(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything, currency.EUR, currency.INR).
		Return(decimal.Zero, &customerr.RateUnavailableError{From: currency.EUR, To: currency.INR}).Once()

	svc := NewService(resolver, stubConfig{base: currency.INR})
	got := svc.Normalize(context.Background(), decimal.RequireFromString("12.50"), currency.EUR)

	// The raw amount is treated as already being in base units.
	assert.True(t, got.Equal(decimal.RequireFromString("12.50")))
}

func Test_Convert_UsesRequestedPair(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything, currency.GBP, currency.USD).
		Return(decimal.RequireFromString("1.25"), nil).Once()

	svc := NewService(resolver, stubConfig{base: currency.INR})
	got := svc.Convert(context.Background(), decimal.NewFromInt(4), currency.GBP, currency.USD)

	assert.True(t, got.Equal(decimal.NewFromInt(5)))
}

func Test_BaseCurrency_ComesFromConfig(t *testing.T) {
	svc := NewService(new(mockResolver), stubConfig{base: currency.INR})
	assert.Equal(t, currency.INR, svc.BaseCurrency())
}
