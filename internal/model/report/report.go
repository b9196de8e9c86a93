package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"expensedash/internal/entity/expense"
)

// Projections over a filtered subset. All of them are pure functions:
// no side effects, no persistence.

type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

type CategoryReport struct {
	Records []CategoryTotal
	Total   decimal.Decimal
}

type Share struct {
	Category string
	Fraction decimal.Decimal
}

type Point struct {
	Date   time.Time
	Amount decimal.Decimal
}

// ByCategory sums normalized amounts per category, largest first.
func ByCategory(entries []expense.Entry) CategoryReport {
	totals := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		totals[entry.Category] = totals[entry.Category].Add(entry.NormalizedAmount)
	}

	records := make([]CategoryTotal, 0, len(totals))
	total := decimal.Zero
	for category, amount := range totals {
		records = append(records, CategoryTotal{Category: category, Amount: amount})
		total = total.Add(amount)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Amount.Equal(records[j].Amount) {
			return records[i].Amount.GreaterThan(records[j].Amount)
		}
		return records[i].Category < records[j].Category
	})

	return CategoryReport{Records: records, Total: total}
}

// Distribution is the per-category share of the total, in ByCategory
// order. An empty or zero-total subset has no shares.
func Distribution(entries []expense.Entry) []Share {
	grouped := ByCategory(entries)
	shares := make([]Share, 0, len(grouped.Records))
	if grouped.Total.IsZero() {
		return shares
	}
	for _, rec := range grouped.Records {
		shares = append(shares, Share{
			Category: rec.Category,
			Fraction: rec.Amount.Div(grouped.Total),
		})
	}
	return shares
}

// TimeSeries plots normalized amount against date, ascending by date.
// Ledger order is the stable tie-break for same-day entries.
func TimeSeries(entries []expense.Entry) []Point {
	points := make([]Point, 0, len(entries))
	for _, entry := range entries {
		points = append(points, Point{Date: entry.Date, Amount: entry.NormalizedAmount})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// Table is the subset as a flat display table.
func Table(entries []expense.Entry) []expense.Entry {
	table := make([]expense.Entry, len(entries))
	copy(table, entries)
	return table
}
