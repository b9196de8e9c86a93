package query

import (
	"time"

	"github.com/jinzhu/now"

	"expensedash/internal/entity/expense"
	"expensedash/internal/model/customerr"
)

// Filter is a conjunction of independent optional predicates. Zero-valued
// fields match everything, so the zero Filter is the identity.
type Filter struct {
	From       *time.Time
	To         *time.Time
	Categories []string
	Currencies []string
}

type predicate func(expense.Entry) bool

// Apply returns the entries matching every predicate, preserving the
// relative order of the input. Each predicate only inspects a single
// entry, which is what makes composition commutative and associative.
func Apply(entries []expense.Entry, f Filter) []expense.Entry {
	preds := f.predicates()
	if len(preds) == 0 {
		return entries
	}

	res := make([]expense.Entry, 0)
	for _, entry := range entries {
		if matchesAll(entry, preds) {
			res = append(res, entry)
		}
	}
	return res
}

func matchesAll(entry expense.Entry, preds []predicate) bool {
	for _, p := range preds {
		if !p(entry) {
			return false
		}
	}
	return true
}

func (f Filter) predicates() []predicate {
	preds := make([]predicate, 0, 4)
	if f.From != nil {
		from := *f.From
		preds = append(preds, func(e expense.Entry) bool {
			return !e.Date.Before(from)
		})
	}
	if f.To != nil {
		to := *f.To
		preds = append(preds, func(e expense.Entry) bool {
			return !e.Date.After(to)
		})
	}
	if len(f.Categories) > 0 {
		allowed := toSet(f.Categories)
		preds = append(preds, func(e expense.Entry) bool {
			return allowed[e.Category]
		})
	}
	if len(f.Currencies) > 0 {
		allowed := toSet(f.Currencies)
		preds = append(preds, func(e expense.Entry) bool {
			return allowed[e.Currency]
		})
	}
	return preds
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// PeriodFilter expands a named period into a date-range filter. The
// empty period matches the whole ledger.
func PeriodFilter(period string) (Filter, error) {
	var from time.Time
	switch period {
	case "":
		return Filter{}, nil
	case "week":
		from = now.BeginningOfWeek()
	case "month":
		from = now.BeginningOfMonth()
	case "year":
		from = now.BeginningOfYear()
	default:
		return Filter{}, &customerr.InvalidInputError{Field: "period", Reason: "unsupported period " + period}
	}
	return Filter{From: &from}, nil
}

func Periods() []string {
	return []string{"", "week", "month", "year"}
}
