package service

import (
	"context"
	"errors"
	"testing"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/entity"
	"go-stock-dashboard/pkg/cache"
	"go-stock-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboard(yahoo *perSymbolYahoo, repo *fakeStockRepo) DashboardService {
	gateway := cache.NewGateway(cache.NewMemoryStore(), logger.NewNop())
	market := NewMarketService(yahoo, logger.NewNop())
	history := NewHistoryService(yahoo, gateway, logger.NewNop())
	return NewDashboardService(yahoo, repo, market, history, gateway, logger.NewNop())
}

func TestGetDashboard_FailedSectionsDegradeIndependently(t *testing.T) {
	yahoo := &perSymbolYahoo{
		quotes: map[string]dto.YahooQuote{
			"XLK":     {Symbol: "XLK", ShortName: "Technology Select Sector", RegularMarketPrice: 220.4, Currency: "USD"},
			"BTC-USD": {Symbol: "BTC-USD", ShortName: "Bitcoin USD", RegularMarketPrice: 64200.0, Currency: "USD"},
			"^VIX":    {Symbol: "^VIX", ShortName: "CBOE Volatility Index", RegularMarketPrice: 14.2, Currency: "USD"},
		},
		trendingErr: errors.New("upstream down"),
		chartErr:    errors.New("upstream down"),
		searchErr:   errors.New("upstream down"),
	}
	svc := newTestDashboard(yahoo, newFakeStockRepo())

	resp := svc.GetDashboard(context.Background())
	require.NotNil(t, resp)

	// Sections with data come through.
	require.Len(t, resp.Sectors, 1)
	assert.Equal(t, "XLK", resp.Sectors[0].Symbol)
	assert.Equal(t, []float64{}, resp.Sectors[0].Sparkline)
	require.Len(t, resp.MarketSummary.Crypto, 1)
	assert.Equal(t, "BTC-USD", resp.MarketSummary.Crypto[0].Symbol)
	require.NotNil(t, resp.VIX)
	assert.Equal(t, 14.2, resp.VIX.Price)

	// Failed sections degrade to empty, never nil.
	assert.NotNil(t, resp.Trending)
	assert.Empty(t, resp.Trending)
	assert.NotNil(t, resp.News)
	assert.Empty(t, resp.News)
	assert.NotNil(t, resp.HeroHistory)
	assert.Empty(t, resp.HeroHistory)
	assert.NotNil(t, resp.MarketSummary.Rates)
	assert.Empty(t, resp.MarketSummary.Rates)
	assert.NotNil(t, resp.MarketSummary.Commodities)
	assert.NotNil(t, resp.MarketSummary.Currencies)

	// No featured stock, so the hero falls back to the default.
	assert.Equal(t, "AAPL", resp.HeroSymbol)
	assert.Equal(t, "Apple Inc.", resp.HeroName)
}

func TestGetDashboard_FeaturedStockDrivesHero(t *testing.T) {
	yahoo := &perSymbolYahoo{
		chartErr:    errors.New("upstream down"),
		trendingErr: errors.New("upstream down"),
		searchErr:   errors.New("upstream down"),
	}
	repo := newFakeStockRepo()
	repo.stocks["NVDA"] = &entity.Stock{ID: 1, Symbol: "NVDA", Name: "NVIDIA Corporation", IsFeatured: true}
	svc := newTestDashboard(yahoo, repo)

	resp := svc.GetDashboard(context.Background())
	require.NotNil(t, resp)
	assert.Equal(t, "NVDA", resp.HeroSymbol)
	assert.Equal(t, "NVIDIA Corporation", resp.HeroName)
}
