package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-stock-dashboard/internal/api/config"
	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/pkg/logger"

	"golang.org/x/time/rate"
)

// YahooFinanceRepository defines the market-data provider operations.
type YahooFinanceRepository interface {
	GetQuotes(ctx context.Context, symbols []string) ([]dto.YahooQuote, error)
	GetChart(ctx context.Context, symbol, interval string, period1 time.Time) ([]dto.HistoryPoint, error)
	Search(ctx context.Context, query string, quotesCount, newsCount int) (*dto.YahooSearchResponse, error)
	GetTrending(ctx context.Context, region string) ([]string, error)
	GetFundamentals(ctx context.Context, symbol string) (*dto.Fundamentals, error)
}

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository creates a rate-limited Yahoo Finance client.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		requestLimiter: requestLimiter,
	}
}

// GetQuotes fetches raw quotes for one or more symbols in a single call.
func (r *yahooFinanceRepository) GetQuotes(ctx context.Context, symbols []string) ([]dto.YahooQuote, error) {
	endpoint := fmt.Sprintf("%s/v7/finance/quote?symbols=%s",
		r.cfg.YahooFinance.BaseURL, url.QueryEscape(strings.Join(symbols, ",")))

	body, err := r.sendRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var response dto.YahooQuoteResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if response.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("quote API error: %s", response.QuoteResponse.Error.Description)
	}
	return response.QuoteResponse.Result, nil
}

// GetChart fetches a price series from period1 to now at the given interval.
// Null closing prices (holidays, halted sessions) are dropped.
func (r *yahooFinanceRepository) GetChart(ctx context.Context, symbol, interval string, period1 time.Time) ([]dto.HistoryPoint, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=%s",
		r.cfg.YahooFinance.BaseURL, url.PathEscape(symbol), period1.Unix(), time.Now().Unix(), interval)

	body, err := r.sendRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var response dto.YahooChartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}
	if response.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s", response.Chart.Error.Description)
	}
	if len(response.Chart.Result) == 0 || len(response.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data returned for %s", symbol)
	}

	result := response.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	points := make([]dto.HistoryPoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, dto.HistoryPoint{
			Time:  time.Unix(ts, 0).UTC().Format(time.RFC3339),
			Price: math.Round(*closes[i]*100) / 100,
		})
	}
	return points, nil
}

// Search runs a text search returning symbol matches and news items.
func (r *yahooFinanceRepository) Search(ctx context.Context, query string, quotesCount, newsCount int) (*dto.YahooSearchResponse, error) {
	endpoint := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=%d&newsCount=%d",
		r.cfg.YahooFinance.BaseURL, url.QueryEscape(query), quotesCount, newsCount)

	body, err := r.sendRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var response dto.YahooSearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &response, nil
}

// GetTrending fetches the trending symbols for a region.
func (r *yahooFinanceRepository) GetTrending(ctx context.Context, region string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/v1/finance/trending/%s", r.cfg.YahooFinance.BaseURL, url.PathEscape(region))

	body, err := r.sendRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var response dto.YahooTrendingResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode trending response: %w", err)
	}
	if response.Finance.Error != nil {
		return nil, fmt.Errorf("trending API error: %s", response.Finance.Error.Description)
	}

	var symbols []string
	for _, result := range response.Finance.Result {
		for _, quote := range result.Quotes {
			symbols = append(symbols, quote.Symbol)
		}
	}
	return symbols, nil
}

// GetFundamentals fetches the deep per-symbol modules the narrative context
// uses. This is the heavier call and callers cache it aggressively.
func (r *yahooFinanceRepository) GetFundamentals(ctx context.Context, symbol string) (*dto.Fundamentals, error) {
	modules := "summaryDetail,financialData,recommendationTrend,insiderTransactions,earningsHistory"
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		r.cfg.YahooFinance.BaseURL, url.PathEscape(symbol), modules)

	body, err := r.sendRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var response dto.YahooQuoteSummaryResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode quote summary response: %w", err)
	}
	if response.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote summary API error: %s", response.QuoteSummary.Error.Description)
	}
	if len(response.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quote summary returned for %s", symbol)
	}

	result := response.QuoteSummary.Result[0]
	fundamentals := &dto.Fundamentals{
		TrailingPE:      result.SummaryDetail.TrailingPE,
		MarketCap:       result.SummaryDetail.MarketCap,
		TargetMeanPrice: result.FinancialData.TargetMeanPrice,
		RevenueGrowth:   result.FinancialData.RevenueGrowth,
		GrossMargins:    result.FinancialData.GrossMargins,
		ProfitMargins:   result.FinancialData.ProfitMargins,
		Recommendations: result.RecommendationTrend.Trend,
		Insiders:        result.InsiderTransactions.Transactions,
	}
	for _, h := range result.EarningsHistory.History {
		period := dto.EarningsPeriod{EPSActual: h.EPSActual, EPSEstimate: h.EPSEstimate}
		if h.Quarter != nil {
			period.Quarter = h.Quarter.Fmt
		}
		fundamentals.Earnings = append(fundamentals.Earnings, period)
	}
	return fundamentals, nil
}

func (r *yahooFinanceRepository) sendRequest(ctx context.Context, endpoint string) ([]byte, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Yahoo rejects requests without a browser user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
