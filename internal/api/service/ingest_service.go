package service

import (
	"context"
	"strings"
	"time"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/api/repository"
	"go-stock-dashboard/internal/entity"
	"go-stock-dashboard/pkg/common"
	"go-stock-dashboard/pkg/logger"
)

// IngestService refreshes watchlist rows: the price is always fetched fresh,
// the narrative is regenerated only when stale, missing or forced.
type IngestService interface {
	// IngestTicker refreshes one symbol. It returns nil (and no error) when
	// the provider has no data for the symbol; nothing is written in that case.
	IngestTicker(ctx context.Context, symbol string, forceUpdate bool) (*dto.StockResponse, error)
	// UpdateMarketData refreshes every stored symbol sequentially and returns
	// the symbols that were updated and those that failed.
	UpdateMarketData(ctx context.Context) (updated, failed []string)
}

// NewIngestService creates the ticker ingestion service.
func NewIngestService(stockRepo repository.StockRepository, market MarketService, narrative NarrativeService, log *logger.Logger) IngestService {
	return &ingestService{
		stockRepo: stockRepo,
		market:    market,
		narrative: narrative,
		log:       log,
		now:       time.Now,
	}
}

type ingestService struct {
	stockRepo repository.StockRepository
	market    MarketService
	narrative NarrativeService
	log       *logger.Logger
	now       func() time.Time
}

func (s *ingestService) IngestTicker(ctx context.Context, symbol string, forceUpdate bool) (*dto.StockResponse, error) {
	upper := strings.ToUpper(symbol)

	// Price data is always fetched fresh, never from cache.
	quotes := s.market.GetQuotes(ctx, []string{upper})
	if len(quotes) == 0 {
		s.log.Warn("No market data for symbol, skipping ingestion", logger.StringField("symbol", upper))
		return nil, nil
	}
	data := quotes[0]

	existing, err := s.stockRepo.FindBySymbol(ctx, upper)
	if err != nil {
		return nil, err
	}

	lastUpdated := time.Time{}
	narrative := common.NarrativePlaceholder
	if existing != nil {
		lastUpdated = existing.LastUpdated
		if existing.Narrative != "" {
			narrative = existing.Narrative
		}
	}

	hoursSinceUpdate := s.now().Sub(lastUpdated).Hours()
	isStale := hoursSinceUpdate > common.NarrativeTTLHours
	hasNoNarrative := existing == nil ||
		existing.Narrative == "" ||
		existing.Narrative == common.NarrativePlaceholder ||
		existing.Narrative == common.NarrativeUnavailable

	if isStale || hasNoNarrative || forceUpdate {
		s.log.DebugContext(ctx, "Regenerating narrative",
			logger.StringField("symbol", upper),
			logger.Float64Field("age_hours", hoursSinceUpdate),
			logger.Field("forced", forceUpdate))
		narrative = s.narrative.Generate(ctx, dto.NarrativeContext{
			Symbol:    data.Symbol,
			Price:     data.Price,
			Change:    data.ChangePercent,
			Headlines: data.Headlines,
		})
	} else {
		s.log.DebugContext(ctx, "Reusing stored narrative",
			logger.StringField("symbol", upper),
			logger.Float64Field("age_hours", hoursSinceUpdate))
	}

	// LastUpdated is bumped on every ingestion regardless of whether the
	// narrative was regenerated, so it tracks price freshness: a frequently
	// viewed ticker keeps its narrative past the nominal TTL.
	var stock *entity.Stock
	if existing == nil {
		stock = &entity.Stock{
			Symbol:      data.Symbol,
			Name:        data.Name,
			Price:       data.Price,
			Change:      data.ChangePercent,
			Currency:    data.Currency,
			Narrative:   narrative,
			LastUpdated: s.now(),
		}
		if stock.Name == "" {
			stock.Name = data.Symbol
		}
		if err := s.stockRepo.Create(ctx, stock); err != nil {
			return nil, err
		}
	} else {
		existing.Price = data.Price
		existing.Change = data.ChangePercent
		existing.Currency = data.Currency
		existing.Narrative = narrative
		existing.LastUpdated = s.now()
		if err := s.stockRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		stock = existing
	}

	response := mapStockResponse(stock)
	response.Headlines = data.Headlines
	return &response, nil
}

func (s *ingestService) UpdateMarketData(ctx context.Context) (updated, failed []string) {
	stocks, err := s.stockRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list stocks for refresh", logger.ErrorField(err))
		return nil, nil
	}
	if len(stocks) == 0 {
		s.log.Info("No stocks to refresh")
		return nil, nil
	}

	s.log.Info("Starting market data refresh", logger.IntField("count", len(stocks)))

	// Sequential on purpose: one symbol at a time keeps us under upstream
	// rate limits. Individual failures do not halt the batch.
	for _, stock := range stocks {
		record, err := s.IngestTicker(ctx, stock.Symbol, false)
		if err != nil || record == nil {
			s.log.Error("Failed to refresh symbol", logger.ErrorField(err), logger.StringField("symbol", stock.Symbol))
			failed = append(failed, stock.Symbol)
			continue
		}
		updated = append(updated, stock.Symbol)
	}

	s.log.Info("Market data refresh complete",
		logger.IntField("updated", len(updated)),
		logger.IntField("failed", len(failed)))
	return updated, failed
}

func mapStockResponse(stock *entity.Stock) dto.StockResponse {
	return dto.StockResponse{
		ID:          stock.ID,
		Symbol:      stock.Symbol,
		Name:        stock.Name,
		Price:       stock.Price,
		Change:      stock.Change,
		Currency:    stock.Currency,
		Narrative:   stock.Narrative,
		IsFeatured:  stock.IsFeatured,
		LastUpdated: stock.LastUpdated,
	}
}
