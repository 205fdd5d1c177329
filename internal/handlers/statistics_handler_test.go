package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgettracker/internal/models"
	"budgettracker/internal/services"
)

type mockStatisticsService struct {
	generateFn func(interval models.IntervalType) (*services.Statistics, error)
}

var _ services.StatisticsServicer = (*mockStatisticsService)(nil)

func (m *mockStatisticsService) GenerateStatistics(interval models.IntervalType) (*services.Statistics, error) {
	if m.generateFn != nil {
		return m.generateFn(interval)
	}
	return &services.Statistics{Interval: interval}, nil
}

func setupStatisticsRouter(handler *StatisticsHandler) *gin.Engine {
	r := gin.New()
	r.GET("/statistics", injectUserID(testUserID), handler.GetStatistics)
	return r
}

func TestStatisticsHandler_GetStatistics(t *testing.T) {
	t.Run("returns labelled totals", func(t *testing.T) {
		var got models.IntervalType
		svc := &mockStatisticsService{
			generateFn: func(interval models.IntervalType) (*services.Statistics, error) {
				got = interval
				return &services.Statistics{
					Interval:      interval,
					TotalIncome:   decimal.RequireFromString("1000"),
					TotalExpenses: decimal.RequireFromString("300"),
					NetIncome:     decimal.RequireFromString("700"),
				}, nil
			},
		}
		r := setupStatisticsRouter(NewStatisticsHandler(svc))

		rec := doRequest(r, "GET", "/statistics?interval=WEEKLY", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got != models.IntervalWeekly {
			t.Errorf("expected WEEKLY, got %s", got)
		}
		totals := parseJSON(t, rec)["totals"].(map[string]interface{})
		if totals["Total Income"] != "1000" || totals["Total Expenses"] != "300" || totals["Net Income"] != "700" {
			t.Errorf("unexpected totals %v", totals)
		}
	})

	for _, q := range []string{"", "?interval=DAILY", "?interval=weekly"} {
		t.Run("rejects "+q, func(t *testing.T) {
			r := setupStatisticsRouter(NewStatisticsHandler(&mockStatisticsService{}))

			rec := doRequest(r, "GET", "/statistics"+q, "")

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INTERVAL")
		})
	}
}
