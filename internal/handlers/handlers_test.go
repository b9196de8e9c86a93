package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensedash/internal/entity/currency"
	"expensedash/internal/entity/expense"
	"expensedash/internal/model/customerr"
	"expensedash/internal/model/dashboard"
	"expensedash/internal/model/query"
	"expensedash/internal/model/report"
)

type stubService struct {
	entries []expense.Entry
	addErr  error
}

func (s *stubService) AddExpense(_ context.Context, in dashboard.NewExpense) (expense.Entry, error) {
	if s.addErr != nil {
		return expense.Entry{}, s.addErr
	}
	return expense.Entry{
		Date:             in.Date,
		Description:      in.Description,
		Category:         in.Category,
		Currency:         in.Currency,
		Amount:           in.Amount,
		NormalizedAmount: in.Amount,
	}, nil
}

func (s *stubService) History(_ context.Context, f query.Filter) ([]expense.Entry, error) {
	return query.Apply(s.entries, f), nil
}

func (s *stubService) CategoryReport(ctx context.Context, f query.Filter) (report.CategoryReport, error) {
	entries, _ := s.History(ctx, f)
	return report.ByCategory(entries), nil
}

func (s *stubService) DistributionReport(ctx context.Context, f query.Filter) ([]report.Share, error) {
	entries, _ := s.History(ctx, f)
	return report.Distribution(entries), nil
}

func (s *stubService) TimeSeriesReport(ctx context.Context, f query.Filter) ([]report.Point, error) {
	entries, _ := s.History(ctx, f)
	return report.TimeSeries(entries), nil
}

func (s *stubService) Convert(_ context.Context, amount decimal.Decimal, _, _ string) (decimal.Decimal, error) {
	return amount, nil
}

func (s *stubService) BaseCurrency() string {
	return currency.INR
}

func newTestRouter(svc dashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	Register(router, svc)
	return router
}

func Test_AddExpense_ReturnsCreatedEntry(t *testing.T) {
	router := newTestRouter(&stubService{})

	body := `{"date":"2024-01-05","description":"Coffee","category":"Food","currency":"USD","amount":"5.00"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"category":"Food"`)
}

func Test_AddExpense_BadDateIsBadRequest(t *testing.T) {
	router := newTestRouter(&stubService{})

	body := `{"date":"05.01.2024","category":"Food","currency":"USD","amount":"5.00"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func Test_AddExpense_InvalidInputIsBadRequest(t *testing.T) {
	router := newTestRouter(&stubService{
		addErr: &customerr.InvalidInputError{Field: "currency", Reason: "unsupported code DOGE"},
	})

	body := `{"date":"2024-01-05","category":"Food","currency":"DOGE","amount":"5.00"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "currency")
}

func Test_AddExpense_PersistenceFailureIsServerError(t *testing.T) {
	router := newTestRouter(&stubService{
		addErr: &customerr.PersistenceError{Op: "append"},
	})

	body := `{"date":"2024-01-05","category":"Food","currency":"USD","amount":"5.00"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "append")
}

func Test_History_UnknownPeriodIsBadRequest(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/expenses?period=decade", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func Test_History_FiltersByCategoryParam(t *testing.T) {
	router := newTestRouter(&stubService{entries: []expense.Entry{
		{Category: expense.Food, Currency: currency.USD, NormalizedAmount: decimal.NewFromInt(100)},
		{Category: expense.Travel, Currency: currency.EUR, NormalizedAmount: decimal.NewFromInt(50)},
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/expenses?category=Food", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Food")
	assert.NotContains(t, w.Body.String(), "Travel")
}

func Test_Currencies_ListsSupportedSetAndBase(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/currencies", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"base":"INR"`)
	assert.Contains(t, w.Body.String(), "USD")
}
