package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	Food     = "Food"
	Travel   = "Travel"
	Bills    = "Bills"
	Shopping = "Shopping"
	Other    = "Other"
)

var Categories = []string{Food, Travel, Bills, Shopping, Other}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Entry is the sole persisted entity. NormalizedAmount is computed once
// at write time and never recomputed; after Append an Entry is immutable.
type Entry struct {
	Date             time.Time
	Description      string
	Category         string
	Currency         string
	Amount           decimal.Decimal
	NormalizedAmount decimal.Decimal
}
