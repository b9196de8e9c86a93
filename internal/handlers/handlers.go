package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"expensedash/internal/entity/currency"
	"expensedash/internal/entity/expense"
	"expensedash/internal/model/customerr"
	"expensedash/internal/model/dashboard"
	"expensedash/internal/model/query"
	"expensedash/internal/model/report"
)

const dateLayout = "2006-01-02"

type dashboardService interface {
	AddExpense(ctx context.Context, in dashboard.NewExpense) (expense.Entry, error)
	History(ctx context.Context, f query.Filter) ([]expense.Entry, error)
	CategoryReport(ctx context.Context, f query.Filter) (report.CategoryReport, error)
	DistributionReport(ctx context.Context, f query.Filter) ([]report.Share, error)
	TimeSeriesReport(ctx context.Context, f query.Filter) ([]report.Point, error)
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
	BaseCurrency() string
}

type handler struct {
	svc dashboardService
}

func Register(router *gin.Engine, svc dashboardService) {
	h := &handler{svc: svc}

	router.POST("/expenses", h.addExpense)
	router.GET("/expenses", h.history)
	router.GET("/report/categories", h.categories)
	router.GET("/report/distribution", h.distribution)
	router.GET("/report/timeseries", h.timeseries)
	router.GET("/convert", h.convert)
	router.GET("/currencies", h.currencies)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

type addExpenseRequest struct {
	Date        string `json:"date" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Currency    string `json:"currency" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
}

type entryResponse struct {
	Date             string `json:"date"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	Currency         string `json:"currency"`
	Amount           string `json:"amount"`
	NormalizedAmount string `json:"normalized_amount"`
}

func (h *handler) addExpense(c *gin.Context) {
	var req addExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: expected " + dateLayout})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	entry, err := h.svc.AddExpense(c.Request.Context(), dashboard.NewExpense{
		Date:        date,
		Description: req.Description,
		Category:    req.Category,
		Currency:    req.Currency,
		Amount:      amount,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEntryResponse(entry))
}

func (h *handler) history(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		writeError(c, err)
		return
	}

	entries, err := h.svc.History(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	res := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		res = append(res, toEntryResponse(entry))
	}
	c.JSON(http.StatusOK, gin.H{"entries": res})
}

func (h *handler) categories(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		writeError(c, err)
		return
	}

	rep, err := h.svc.CategoryReport(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	records := make([]gin.H, 0, len(rep.Records))
	for _, rec := range rep.Records {
		records = append(records, gin.H{"category": rec.Category, "amount": rec.Amount.String()})
	}
	c.JSON(http.StatusOK, gin.H{
		"currency": h.svc.BaseCurrency(),
		"records":  records,
		"total":    rep.Total.String(),
	})
}

func (h *handler) distribution(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		writeError(c, err)
		return
	}

	shares, err := h.svc.DistributionReport(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	res := make([]gin.H, 0, len(shares))
	for _, share := range shares {
		res = append(res, gin.H{"category": share.Category, "fraction": share.Fraction.String()})
	}
	c.JSON(http.StatusOK, gin.H{"shares": res})
}

func (h *handler) timeseries(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		writeError(c, err)
		return
	}

	points, err := h.svc.TimeSeriesReport(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	res := make([]gin.H, 0, len(points))
	for _, p := range points {
		res = append(res, gin.H{"date": p.Date.Format(dateLayout), "amount": p.Amount.String()})
	}
	c.JSON(http.StatusOK, gin.H{"currency": h.svc.BaseCurrency(), "points": res})
}

func (h *handler) convert(c *gin.Context) {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	converted, err := h.svc.Convert(c.Request.Context(), amount, c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"amount":   converted.String(),
		"currency": c.Query("to"),
	})
}

func (h *handler) currencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"base":       h.svc.BaseCurrency(),
		"supported":  currency.Supported,
		"categories": expense.Categories,
		"periods":    query.Periods(),
	})
}

func parseFilter(c *gin.Context) (query.Filter, error) {
	f, err := query.PeriodFilter(c.Query("period"))
	if err != nil {
		return query.Filter{}, err
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return query.Filter{}, &customerr.InvalidInputError{Field: "from", Reason: "expected " + dateLayout}
		}
		f.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return query.Filter{}, &customerr.InvalidInputError{Field: "to", Reason: "expected " + dateLayout}
		}
		f.To = &to
	}
	f.Categories = c.QueryArray("category")
	f.Currencies = c.QueryArray("currency")
	return f, nil
}

func toEntryResponse(entry expense.Entry) entryResponse {
	return entryResponse{
		Date:             entry.Date.Format(dateLayout),
		Description:      entry.Description,
		Category:         entry.Category,
		Currency:         entry.Currency,
		Amount:           entry.Amount.String(),
		NormalizedAmount: entry.NormalizedAmount.String(),
	}
}

func writeError(c *gin.Context, err error) {
	var invalid *customerr.InvalidInputError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
		return
	}

	var persistence *customerr.PersistenceError
	if errors.As(err, &persistence) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": persistence.Error()})
		return
	}

	var corrupt *customerr.CorruptRecordError
	if errors.As(err, &corrupt) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": corrupt.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
