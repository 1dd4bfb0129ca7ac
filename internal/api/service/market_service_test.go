package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perSymbolYahoo answers quote and headline lookups per symbol, so individual
// symbols in a batch can fail independently.
type perSymbolYahoo struct {
	quotes      map[string]dto.YahooQuote
	headlines   map[string][]string
	failQuote   map[string]bool
	chartErr    error
	trending    []string
	trendingErr error
	searchErr   error
}

func (y *perSymbolYahoo) GetQuotes(_ context.Context, symbols []string) ([]dto.YahooQuote, error) {
	out := make([]dto.YahooQuote, 0, len(symbols))
	for _, symbol := range symbols {
		if y.failQuote[symbol] {
			return nil, errors.New("upstream down")
		}
		if q, ok := y.quotes[symbol]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (y *perSymbolYahoo) GetChart(context.Context, string, string, time.Time) ([]dto.HistoryPoint, error) {
	if y.chartErr != nil {
		return nil, y.chartErr
	}
	return []dto.HistoryPoint{}, nil
}

func (y *perSymbolYahoo) Search(_ context.Context, query string, _, _ int) (*dto.YahooSearchResponse, error) {
	if y.searchErr != nil {
		return nil, y.searchErr
	}
	resp := &dto.YahooSearchResponse{}
	for i, title := range y.headlines[query] {
		resp.News = append(resp.News, struct {
			UUID                string `json:"uuid"`
			Title               string `json:"title"`
			Publisher           string `json:"publisher"`
			Link                string `json:"link"`
			ProviderPublishTime int64  `json:"providerPublishTime"`
			Summary             string `json:"summary"`
		}{UUID: query + "-" + string(rune('a'+i)), Title: title})
	}
	return resp, nil
}

func (y *perSymbolYahoo) GetTrending(context.Context, string) ([]string, error) {
	return y.trending, y.trendingErr
}

func (y *perSymbolYahoo) GetFundamentals(context.Context, string) (*dto.Fundamentals, error) {
	return nil, errors.New("not stubbed")
}

func TestGetQuotes_FailedSymbolDroppedFromBatch(t *testing.T) {
	yahoo := &perSymbolYahoo{
		quotes: map[string]dto.YahooQuote{
			"AAPL": {Symbol: "AAPL", LongName: "Apple Inc.", RegularMarketPrice: 175.5, Currency: "USD"},
			"MSFT": {Symbol: "MSFT", LongName: "Microsoft Corporation", RegularMarketPrice: 430.1, Currency: "USD"},
		},
		headlines: map[string][]string{
			"AAPL": {"Apple rallies on earnings"},
			"MSFT": {"Microsoft expands data centers"},
		},
		failQuote: map[string]bool{"DEAD": true},
	}
	svc := NewMarketService(yahoo, logger.NewNop())

	quotes := svc.GetQuotes(context.Background(), []string{"AAPL", "DEAD", "MSFT"})

	// The failing symbol is dropped; the survivors keep their batch order.
	require.Len(t, quotes, 2)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.Equal(t, "MSFT", quotes[1].Symbol)
	assert.Equal(t, []string{"Apple rallies on earnings"}, quotes[0].Headlines)
	assert.Equal(t, []string{"Microsoft expands data centers"}, quotes[1].Headlines)
}

func TestGetQuotes_HeadlineFailureStillYieldsQuote(t *testing.T) {
	yahoo := &perSymbolYahoo{
		quotes: map[string]dto.YahooQuote{
			"AAPL": {Symbol: "AAPL", RegularMarketPrice: 175.5},
		},
		searchErr: errors.New("upstream down"),
	}
	svc := NewMarketService(yahoo, logger.NewNop())

	quotes := svc.GetQuotes(context.Background(), []string{"AAPL"})

	require.Len(t, quotes, 1)
	assert.Equal(t, 175.5, quotes[0].Price)
	assert.Empty(t, quotes[0].Headlines)
}

func TestNormalizeQuote_NameFallbacksAndCurrency(t *testing.T) {
	tests := []struct {
		name         string
		raw          dto.YahooQuote
		wantName     string
		wantCurrency string
	}{
		{"long name wins", dto.YahooQuote{Symbol: "AAPL", LongName: "Apple Inc.", ShortName: "Apple", Currency: "USD"}, "Apple Inc.", "$"},
		{"short name next", dto.YahooQuote{Symbol: "AAPL", ShortName: "Apple", Currency: "EUR"}, "Apple", "€"},
		{"symbol last", dto.YahooQuote{Symbol: "aapl"}, "AAPL", "$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := normalizeQuote(tt.raw)
			assert.Equal(t, tt.wantName, quote.Name)
			assert.Equal(t, tt.wantCurrency, quote.Currency)
		})
	}
}
