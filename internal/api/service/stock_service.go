package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/api/repository"
	"go-stock-dashboard/internal/entity"
	"go-stock-dashboard/pkg/cache"
	"go-stock-dashboard/pkg/common"
	"go-stock-dashboard/pkg/logger"

	"gorm.io/gorm"
)

var (
	// ErrStockExists signals a duplicate watchlist add.
	ErrStockExists = errors.New("stock already in watchlist")
	// ErrNoMarketData signals the provider knows nothing about the symbol.
	ErrNoMarketData = errors.New("no market data for symbol")
	// ErrStockNotFound signals the symbol is not on the watchlist.
	ErrStockNotFound = errors.New("stock not found")
)

// StockService manages the watchlist itself: add, list, delete, feature pin
// and the per-symbol detail view.
type StockService interface {
	AddStock(ctx context.Context, symbol string) (*dto.StockResponse, error)
	ListStocks(ctx context.Context) ([]dto.StockResponse, error)
	DeleteStock(ctx context.Context, symbol string) error
	FeatureStock(ctx context.Context, symbol string) error
	GetDetails(ctx context.Context, symbol string) (*dto.StockDetailsResponse, error)
}

// NewStockService creates the watchlist service.
func NewStockService(stockRepo repository.StockRepository, market MarketService, yahooRepo repository.YahooFinanceRepository, gateway *cache.Gateway, log *logger.Logger) StockService {
	return &stockService{
		stockRepo: stockRepo,
		market:    market,
		yahooRepo: yahooRepo,
		gateway:   gateway,
		log:       log,
	}
}

type stockService struct {
	stockRepo repository.StockRepository
	market    MarketService
	yahooRepo repository.YahooFinanceRepository
	gateway   *cache.Gateway
	log       *logger.Logger
}

// AddStock inserts a new watchlist row with a placeholder narrative. The AI
// step is deliberately skipped here to keep adds fast; the next ingestion
// fills the narrative in.
func (s *stockService) AddStock(ctx context.Context, symbol string) (*dto.StockResponse, error) {
	upper := strings.ToUpper(symbol)

	quote, err := s.market.GetQuote(ctx, upper)
	if err != nil || quote == nil {
		if err != nil {
			s.log.Error("Quote lookup failed on add", logger.ErrorField(err), logger.StringField("symbol", upper))
		}
		return nil, ErrNoMarketData
	}

	stock := &entity.Stock{
		Symbol:    upper,
		Name:      quote.Name,
		Price:     quote.Price,
		Change:    quote.ChangePercent,
		Currency:  quote.Currency,
		Narrative: common.NarrativePlaceholder,
	}
	if stock.Name == "" {
		stock.Name = upper
	}

	if err := s.stockRepo.Create(ctx, stock); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStockExists
		}
		return nil, err
	}

	response := mapStockResponse(stock)
	return &response, nil
}

// ListStocks returns every watchlist row.
func (s *stockService) ListStocks(ctx context.Context) ([]dto.StockResponse, error) {
	stocks, err := s.stockRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.StockResponse, 0, len(stocks))
	for i := range stocks {
		responses = append(responses, mapStockResponse(&stocks[i]))
	}
	return responses, nil
}

// DeleteStock removes a symbol. Deleting a symbol that is not present is
// success, not an error.
func (s *stockService) DeleteStock(ctx context.Context, symbol string) error {
	return s.stockRepo.Delete(ctx, strings.ToUpper(symbol))
}

// FeatureStock pins the symbol as the single featured row.
func (s *stockService) FeatureStock(ctx context.Context, symbol string) error {
	err := s.stockRepo.SetFeatured(ctx, strings.ToUpper(symbol))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrStockNotFound
	}
	return err
}

// GetDetails assembles the detail-page payload: price, deep fundamentals and
// rich company news. Individual sub-fetches degrade; the call fails only when
// nothing at all could be retrieved.
func (s *stockService) GetDetails(ctx context.Context, symbol string) (*dto.StockDetailsResponse, error) {
	upper := strings.ToUpper(symbol)
	key := fmt.Sprintf(common.CacheKeyDetails, upper)

	return cache.Fetch(ctx, s.gateway, key, common.TTLDetails, cache.Options{}, func(ctx context.Context) (*dto.StockDetailsResponse, error) {
		details := &dto.StockDetailsResponse{Symbol: upper, News: []dto.NewsItem{}}

		quote, err := s.market.GetQuote(ctx, upper)
		if err == nil && quote != nil {
			details.Price = quote.Price
		}

		fundamentals, err := s.yahooRepo.GetFundamentals(ctx, upper)
		if err != nil {
			s.log.Error("Failed to fetch fundamentals", logger.ErrorField(err), logger.StringField("symbol", upper))
		} else {
			details.Fundamentals = fundamentals
		}

		search, err := s.yahooRepo.Search(ctx, upper, 0, 5)
		if err != nil {
			s.log.Error("Failed to fetch company news", logger.ErrorField(err), logger.StringField("symbol", upper))
		} else {
			for _, n := range search.News {
				details.News = append(details.News, dto.NewsItem{
					ID:          n.UUID,
					Title:       n.Title,
					Publisher:   n.Publisher,
					Link:        n.Link,
					PublishedAt: n.ProviderPublishTime,
					Summary:     n.Summary,
				})
			}
		}

		if details.Price == 0 && details.Fundamentals == nil && len(details.News) == 0 {
			return nil, ErrNoMarketData
		}
		return details, nil
	})
}
