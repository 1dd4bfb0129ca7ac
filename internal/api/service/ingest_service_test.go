package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/entity"
	"go-stock-dashboard/pkg/common"
	"go-stock-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStockRepo struct {
	stocks  map[string]*entity.Stock
	nextID  uint
	findErr error
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{stocks: map[string]*entity.Stock{}, nextID: 1}
}

func (r *fakeStockRepo) Create(_ context.Context, stock *entity.Stock) error {
	if _, ok := r.stocks[stock.Symbol]; ok {
		return gorm.ErrDuplicatedKey
	}
	stock.ID = r.nextID
	r.nextID++
	copied := *stock
	r.stocks[stock.Symbol] = &copied
	return nil
}

func (r *fakeStockRepo) Update(_ context.Context, stock *entity.Stock) error {
	copied := *stock
	r.stocks[stock.Symbol] = &copied
	return nil
}

func (r *fakeStockRepo) FindBySymbol(_ context.Context, symbol string) (*entity.Stock, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	stock, ok := r.stocks[symbol]
	if !ok {
		return nil, nil
	}
	copied := *stock
	return &copied, nil
}

func (r *fakeStockRepo) FindAll(_ context.Context) ([]entity.Stock, error) {
	out := make([]entity.Stock, 0, len(r.stocks))
	for _, stock := range r.stocks {
		out = append(out, *stock)
	}
	return out, nil
}

func (r *fakeStockRepo) FindFeatured(_ context.Context) (*entity.Stock, error) {
	for _, stock := range r.stocks {
		if stock.IsFeatured {
			copied := *stock
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeStockRepo) Delete(_ context.Context, symbol string) error {
	delete(r.stocks, symbol)
	return nil
}

func (r *fakeStockRepo) SetFeatured(_ context.Context, symbol string) error {
	for _, stock := range r.stocks {
		stock.IsFeatured = false
	}
	stock, ok := r.stocks[symbol]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stock.IsFeatured = true
	return nil
}

type fakeMarket struct {
	quotes map[string]dto.Quote
	calls  int
}

func (m *fakeMarket) GetQuote(_ context.Context, symbol string) (*dto.Quote, error) {
	q, ok := m.quotes[strings.ToUpper(symbol)]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (m *fakeMarket) GetHeadlines(context.Context, string) []string { return nil }

func (m *fakeMarket) GetQuotes(_ context.Context, symbols []string) []dto.Quote {
	m.calls++
	out := make([]dto.Quote, 0, len(symbols))
	for _, symbol := range symbols {
		if q, ok := m.quotes[strings.ToUpper(symbol)]; ok {
			out = append(out, q)
		}
	}
	return out
}

type fakeNarrative struct {
	text  string
	calls int
}

func (n *fakeNarrative) Generate(context.Context, dto.NarrativeContext) string {
	n.calls++
	return n.text
}

func newTestIngest(repo *fakeStockRepo, market *fakeMarket, narrative *fakeNarrative, now time.Time) *ingestService {
	return &ingestService{
		stockRepo: repo,
		market:    market,
		narrative: narrative,
		log:       logger.NewNop(),
		now:       func() time.Time { return now },
	}
}

func TestIngestTicker_NewSymbolCreatesRowWithNarrative(t *testing.T) {
	repo := newFakeStockRepo()
	market := &fakeMarket{quotes: map[string]dto.Quote{
		"AAPL": {Symbol: "AAPL", Name: "Apple Inc.", Price: 175.5, ChangePercent: 1.2, Currency: "$"},
	}}
	narrative := &fakeNarrative{text: "Apple is climbing."}
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	svc := newTestIngest(repo, market, narrative, now)

	resp, err := svc.IngestTicker(context.Background(), "aapl", false)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "AAPL", resp.Symbol)
	assert.Equal(t, "Apple is climbing.", resp.Narrative)
	assert.Equal(t, 1, narrative.calls)

	stored := repo.stocks["AAPL"]
	require.NotNil(t, stored)
	assert.Equal(t, 175.5, stored.Price)
	assert.Equal(t, now, stored.LastUpdated)
}

func TestIngestTicker_NoMarketDataWritesNothing(t *testing.T) {
	repo := newFakeStockRepo()
	market := &fakeMarket{quotes: map[string]dto.Quote{}}
	svc := newTestIngest(repo, market, &fakeNarrative{}, time.Now())

	resp, err := svc.IngestTicker(context.Background(), "BOGUS", false)
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Empty(t, repo.stocks)
}

func TestIngestTicker_FreshNarrativeReusedPriceStillUpdated(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeStockRepo()
	repo.stocks["AAPL"] = &entity.Stock{
		ID: 1, Symbol: "AAPL", Name: "Apple Inc.",
		Price: 170.0, Narrative: "Yesterday's take.",
		LastUpdated: now.Add(-1 * time.Hour),
	}
	market := &fakeMarket{quotes: map[string]dto.Quote{
		"AAPL": {Symbol: "AAPL", Name: "Apple Inc.", Price: 175.5, ChangePercent: 1.2, Currency: "$"},
	}}
	narrative := &fakeNarrative{text: "should not be used"}
	svc := newTestIngest(repo, market, narrative, now)

	resp, err := svc.IngestTicker(context.Background(), "AAPL", false)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "Yesterday's take.", resp.Narrative, "fresh narrative must be reused")
	assert.Equal(t, 0, narrative.calls)
	assert.Equal(t, 175.5, repo.stocks["AAPL"].Price, "price still refreshed")
	assert.Equal(t, now, repo.stocks["AAPL"].LastUpdated)
}

func TestIngestTicker_StaleNarrativeRegenerated(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeStockRepo()
	repo.stocks["AAPL"] = &entity.Stock{
		ID: 1, Symbol: "AAPL", Narrative: "Old take.",
		LastUpdated: now.Add(-13 * time.Hour),
	}
	market := &fakeMarket{quotes: map[string]dto.Quote{
		"AAPL": {Symbol: "AAPL", Price: 175.5},
	}}
	narrative := &fakeNarrative{text: "New take."}
	svc := newTestIngest(repo, market, narrative, now)

	resp, err := svc.IngestTicker(context.Background(), "AAPL", false)
	require.NoError(t, err)
	assert.Equal(t, "New take.", resp.Narrative)
	assert.Equal(t, 1, narrative.calls)
}

func TestIngestTicker_ForceRegeneratesFreshNarrative(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeStockRepo()
	repo.stocks["AAPL"] = &entity.Stock{
		ID: 1, Symbol: "AAPL", Narrative: "Minutes old.",
		LastUpdated: now.Add(-5 * time.Minute),
	}
	market := &fakeMarket{quotes: map[string]dto.Quote{
		"AAPL": {Symbol: "AAPL", Price: 175.5},
	}}
	narrative := &fakeNarrative{text: "Forced take."}
	svc := newTestIngest(repo, market, narrative, now)

	resp, err := svc.IngestTicker(context.Background(), "AAPL", true)
	require.NoError(t, err)
	assert.Equal(t, "Forced take.", resp.Narrative)
	assert.Equal(t, 1, narrative.calls)
}

func TestIngestTicker_PlaceholderNarrativeRegenerated(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeStockRepo()
	repo.stocks["AAPL"] = &entity.Stock{
		ID: 1, Symbol: "AAPL", Narrative: common.NarrativePlaceholder,
		LastUpdated: now.Add(-5 * time.Minute),
	}
	market := &fakeMarket{quotes: map[string]dto.Quote{
		"AAPL": {Symbol: "AAPL", Price: 175.5},
	}}
	narrative := &fakeNarrative{text: "Real take."}
	svc := newTestIngest(repo, market, narrative, now)

	resp, err := svc.IngestTicker(context.Background(), "AAPL", false)
	require.NoError(t, err)
	assert.Equal(t, "Real take.", resp.Narrative)
}

// Repeated ingestions bump LastUpdated even when the narrative is reused, so
// the narrative age is measured from the last ingestion, not from when the
// text was generated. A symbol refreshed more often than the narrative TTL
// keeps its text indefinitely.
func TestIngestTicker_RepeatedRefreshKeepsNarrativePastTTL(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeStockRepo()
	repo.stocks["AAPL"] = &entity.Stock{
		ID: 1, Symbol: "AAPL", Narrative: "Generated at start.",
		LastUpdated: start,
	}
	market := &fakeMarket{quotes: map[string]dto.Quote{
		"AAPL": {Symbol: "AAPL", Price: 175.5},
	}}
	narrative := &fakeNarrative{text: "regenerated"}
	svc := newTestIngest(repo, market, narrative, start)

	// Re-ingest every 11 hours. Each pass sees an age below the 12 hour TTL
	// and bumps LastUpdated, so the narrative survives 33 hours untouched.
	for i := 1; i <= 3; i++ {
		svc.now = func() time.Time { return start.Add(time.Duration(i) * 11 * time.Hour) }
		resp, err := svc.IngestTicker(context.Background(), "AAPL", false)
		require.NoError(t, err)
		assert.Equal(t, "Generated at start.", resp.Narrative)
	}
	assert.Equal(t, 0, narrative.calls, "narrative older than the TTL was never regenerated")
}

func TestUpdateMarketData_ContinuesPastFailures(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeStockRepo()
	repo.stocks["AAPL"] = &entity.Stock{ID: 1, Symbol: "AAPL", LastUpdated: now.Add(-time.Hour)}
	repo.stocks["DEAD"] = &entity.Stock{ID: 2, Symbol: "DEAD", LastUpdated: now.Add(-time.Hour)}
	repo.stocks["MSFT"] = &entity.Stock{ID: 3, Symbol: "MSFT", LastUpdated: now.Add(-time.Hour)}
	market := &fakeMarket{quotes: map[string]dto.Quote{
		"AAPL": {Symbol: "AAPL", Price: 175.5},
		"MSFT": {Symbol: "MSFT", Price: 430.1},
	}}
	svc := newTestIngest(repo, market, &fakeNarrative{text: "n"}, now)

	updated, failed := svc.UpdateMarketData(context.Background())

	assert.ElementsMatch(t, []string{"AAPL", "MSFT"}, updated)
	assert.Equal(t, []string{"DEAD"}, failed)
}
