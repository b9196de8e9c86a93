package dashboard

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"expensedash/internal/entity/currency"
	"expensedash/internal/entity/expense"
	"expensedash/internal/model/customerr"
	"expensedash/internal/model/query"
	"expensedash/internal/model/report"
)

type ledgerStore interface {
	Append(entry expense.Entry) error
	ReadAll() ([]expense.Entry, error)
}

type converter interface {
	Normalize(ctx context.Context, amount decimal.Decimal, code string) decimal.Decimal
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal
	BaseCurrency() string
}

// NewExpense is the raw entry the presentation layer collects.
type NewExpense struct {
	Date        time.Time
	Description string
	Category    string
	Currency    string
	Amount      decimal.Decimal
}

// Service is the boundary the UI talks to: one complete synchronous pass
// per user action through conversion, ledger, filtering and views.
type Service struct {
	store     ledgerStore
	converter converter
}

func NewService(store ledgerStore, converter converter) *Service {
	return &Service{
		store:     store,
		converter: converter,
	}
}

// AddExpense validates the raw entry, normalizes it once at write time
// and appends it to the ledger. A failed append is reported, not retried.
func (s *Service) AddExpense(ctx context.Context, in NewExpense) (expense.Entry, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "addExpense")
	defer span.Finish()

	start := time.Now()
	entry, err := s.addExpense(ctx, in)
	observeRequest("add_expense", time.Since(start), err != nil)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return entry, err
}

func (s *Service) addExpense(ctx context.Context, in NewExpense) (expense.Entry, error) {
	if err := validate(in); err != nil {
		return expense.Entry{}, err
	}

	entry := expense.Entry{
		Date:             in.Date,
		Description:      in.Description,
		Category:         in.Category,
		Currency:         in.Currency,
		Amount:           in.Amount,
		NormalizedAmount: s.converter.Normalize(ctx, in.Amount, in.Currency),
	}

	if err := s.store.Append(entry); err != nil {
		return expense.Entry{}, errors.Wrap(err, "add expense")
	}
	return entry, nil
}

func validate(in NewExpense) error {
	if in.Date.IsZero() {
		return &customerr.InvalidInputError{Field: "date", Reason: "missing"}
	}
	if in.Amount.IsNegative() {
		return &customerr.InvalidInputError{Field: "amount", Reason: "must not be negative"}
	}
	if !currency.IsSupported(in.Currency) {
		return &customerr.InvalidInputError{Field: "currency", Reason: "unsupported code " + in.Currency}
	}
	if !expense.IsValidCategory(in.Category) {
		return &customerr.InvalidInputError{Field: "category", Reason: "unknown category " + in.Category}
	}
	return nil
}

// History reads the full ledger and applies the filter, preserving
// ledger order.
func (s *Service) History(ctx context.Context, f query.Filter) ([]expense.Entry, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "history")
	defer span.Finish()

	start := time.Now()
	entries, err := s.history(f)
	observeRequest("history", time.Since(start), err != nil)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return entries, err
}

func (s *Service) history(f query.Filter) ([]expense.Entry, error) {
	entries, err := s.store.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "history")
	}
	return query.Apply(entries, f), nil
}

func (s *Service) CategoryReport(ctx context.Context, f query.Filter) (report.CategoryReport, error) {
	entries, err := s.History(ctx, f)
	if err != nil {
		return report.CategoryReport{}, err
	}
	return report.ByCategory(entries), nil
}

func (s *Service) DistributionReport(ctx context.Context, f query.Filter) ([]report.Share, error) {
	entries, err := s.History(ctx, f)
	if err != nil {
		return nil, err
	}
	return report.Distribution(entries), nil
}

func (s *Service) TimeSeriesReport(ctx context.Context, f query.Filter) ([]report.Point, error) {
	entries, err := s.History(ctx, f)
	if err != nil {
		return nil, err
	}
	return report.TimeSeries(entries), nil
}

// Convert is the standalone converter widget: same fallback policy as
// the write path, so it never fails on a rate outage.
func (s *Service) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, &customerr.InvalidInputError{Field: "amount", Reason: "must not be negative"}
	}
	if !currency.IsSupported(from) {
		return decimal.Zero, &customerr.InvalidInputError{Field: "from", Reason: "unsupported code " + from}
	}
	if !currency.IsSupported(to) {
		return decimal.Zero, &customerr.InvalidInputError{Field: "to", Reason: "unsupported code " + to}
	}
	return s.converter.Convert(ctx, amount, from, to), nil
}

func (s *Service) BaseCurrency() string {
	return s.converter.BaseCurrency()
}
