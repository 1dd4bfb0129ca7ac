package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-stock-dashboard/internal/api/config"
	"go-stock-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestYahooRepo(baseURL string) YahooFinanceRepository {
	cfg := &config.Config{}
	cfg.YahooFinance.BaseURL = baseURL
	cfg.YahooFinance.MaxRequestPerMinute = 600
	return NewYahooFinanceRepository(cfg, logger.NewNop())
}

func TestGetChart_RoundsCloseToTwoDecimals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"chart": {
				"result": [{
					"timestamp": [1749513600, 1749600000, 1749686400],
					"indicators": {"quote": [{"close": [123.456, null, 99.994]}]}
				}],
				"error": null
			}
		}`))
	}))
	defer server.Close()

	repo := newTestYahooRepo(server.URL)
	points, err := repo.GetChart(context.Background(), "AAPL", "1d", time.Now().AddDate(0, -1, 0))
	require.NoError(t, err)

	// Null closes are dropped; the rest round half-up, not truncate.
	require.Len(t, points, 2)
	assert.Equal(t, 123.46, points[0].Price)
	assert.Equal(t, 99.99, points[1].Price)
}

func TestGetChart_APIErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": [], "error": {"code": "Not Found", "description": "No data found"}}}`))
	}))
	defer server.Close()

	repo := newTestYahooRepo(server.URL)
	_, err := repo.GetChart(context.Background(), "BOGUS", "1d", time.Now().AddDate(0, -1, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}
