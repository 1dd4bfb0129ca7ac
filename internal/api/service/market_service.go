package service

import (
	"context"
	"strings"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/api/repository"
	"go-stock-dashboard/pkg/logger"
	"go-stock-dashboard/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// MarketService normalizes provider quotes and headlines into the shapes the
// rest of the system consumes.
type MarketService interface {
	GetQuote(ctx context.Context, symbol string) (*dto.Quote, error)
	GetHeadlines(ctx context.Context, symbol string) []string
	GetQuotes(ctx context.Context, symbols []string) []dto.Quote
}

// NewMarketService creates a market data adapter over the Yahoo repository.
func NewMarketService(yahooRepo repository.YahooFinanceRepository, log *logger.Logger) MarketService {
	return &marketService{yahooRepo: yahooRepo, log: log}
}

type marketService struct {
	yahooRepo repository.YahooFinanceRepository
	log       *logger.Logger
}

// GetQuote fetches one normalized quote.
func (s *marketService) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	upper := strings.ToUpper(symbol)
	quotes, err := s.yahooRepo.GetQuotes(ctx, []string{upper})
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, nil
	}
	quote := normalizeQuote(quotes[0])
	quote.Symbol = upper
	return &quote, nil
}

// GetHeadlines fetches up to three recent headline titles for a symbol.
// Upstream failure degrades to an empty list.
func (s *marketService) GetHeadlines(ctx context.Context, symbol string) []string {
	result, err := s.yahooRepo.Search(ctx, symbol, 0, 3)
	if err != nil {
		s.log.Error("Failed to fetch headlines", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return []string{}
	}
	headlines := make([]string, 0, len(result.News))
	for _, item := range result.News {
		headlines = append(headlines, item.Title)
	}
	return headlines
}

// GetQuotes fetches quotes and headlines for multiple symbols. Quote and
// headline retrieval run concurrently per symbol; symbols whose quote fetch
// fails are dropped from the result rather than failing the batch.
func (s *marketService) GetQuotes(ctx context.Context, symbols []string) []dto.Quote {
	results := make([]*dto.Quote, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	for i, symbol := range symbols {
		g.Go(func() error {
			var (
				quote     *dto.Quote
				headlines []string
			)

			sub, subCtx := errgroup.WithContext(gctx)
			sub.Go(func() error {
				q, err := s.GetQuote(subCtx, symbol)
				if err != nil {
					s.log.Error("Failed to fetch quote", logger.ErrorField(err), logger.StringField("symbol", symbol))
					return nil
				}
				quote = q
				return nil
			})
			sub.Go(func() error {
				headlines = s.GetHeadlines(subCtx, symbol)
				return nil
			})
			_ = sub.Wait()

			if quote != nil {
				quote.Headlines = headlines
				results[i] = quote
			}
			return nil
		})
	}
	_ = g.Wait()

	quotes := make([]dto.Quote, 0, len(symbols))
	for _, q := range results {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	return quotes
}

func normalizeQuote(raw dto.YahooQuote) dto.Quote {
	name := raw.LongName
	if name == "" {
		name = raw.ShortName
	}
	if name == "" {
		name = strings.ToUpper(raw.Symbol)
	}
	return dto.Quote{
		Symbol:        strings.ToUpper(raw.Symbol),
		Name:          name,
		Price:         raw.RegularMarketPrice,
		ChangePercent: raw.RegularMarketChangePercent,
		Currency:      utils.GetCurrencySymbol(raw.Currency),
	}
}
