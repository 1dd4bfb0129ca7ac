package service

import (
	"context"
	"fmt"
	"time"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/api/repository"
	"go-stock-dashboard/pkg/cache"
	"go-stock-dashboard/pkg/common"
	"go-stock-dashboard/pkg/logger"
	"go-stock-dashboard/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// Sector ETF proxies shown on the dashboard.
var sectorSymbols = []string{"XLK", "XLF", "XLV", "XLE", "XLY", "XLP", "XLI", "XLU", "XLB", "XLRE", "XLC"}

// marketGroups are the market-summary tiles by asset class.
var marketGroups = map[string][]string{
	"crypto":      {"BTC-USD", "ETH-USD", "SOL-USD", "DOGE-USD"},
	"rates":       {"^TNX", "^TYX", "^FVX", "^IRX"},
	"commodities": {"CL=F", "GC=F", "SI=F", "NG=F"},
	"currencies":  {"EURUSD=X", "JPY=X", "GBPUSD=X", "INR=X"},
}

const (
	defaultHeroSymbol = "AAPL"
	defaultHeroName   = "Apple Inc."
)

// DashboardService assembles the aggregated dashboard payload. Every section
// is fetched independently and degrades to its empty value on failure, so
// the dashboard never hard-fails as a whole.
type DashboardService interface {
	GetDashboard(ctx context.Context) *dto.DashboardResponse
}

// NewDashboardService creates the dashboard aggregation service.
func NewDashboardService(yahooRepo repository.YahooFinanceRepository, stockRepo repository.StockRepository, market MarketService, history HistoryService, gateway *cache.Gateway, log *logger.Logger) DashboardService {
	return &dashboardService{
		yahooRepo: yahooRepo,
		stockRepo: stockRepo,
		market:    market,
		history:   history,
		gateway:   gateway,
		log:       log,
	}
}

type dashboardService struct {
	yahooRepo repository.YahooFinanceRepository
	stockRepo repository.StockRepository
	market    MarketService
	history   HistoryService
	gateway   *cache.Gateway
	log       *logger.Logger
}

func (s *dashboardService) GetDashboard(ctx context.Context) *dto.DashboardResponse {
	heroSymbol, heroName := s.heroStock(ctx)

	response := &dto.DashboardResponse{
		Sectors: []dto.SectorQuote{},
		MarketSummary: dto.MarketSummary{
			Crypto:      []dto.Quote{},
			Rates:       []dto.Quote{},
			Commodities: []dto.Quote{},
			Currencies:  []dto.Quote{},
		},
		Trending:    []dto.Quote{},
		HeroSymbol:  heroSymbol,
		HeroName:    heroName,
		HeroHistory: []dto.HistoryPoint{},
		News:        []dto.NewsItem{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		response.Sectors = s.sectors(gctx)
		return nil
	})
	g.Go(func() error {
		response.MarketSummary = s.marketSummary(gctx)
		return nil
	})
	g.Go(func() error {
		response.VIX = s.vix(gctx)
		return nil
	})
	g.Go(func() error {
		response.Trending = s.trending(gctx)
		return nil
	})
	g.Go(func() error {
		response.News = s.news(gctx)
		return nil
	})
	g.Go(func() error {
		history, err := s.history.GetStockHistory(gctx, heroSymbol, "1mo")
		if err != nil {
			s.log.Error("Failed to fetch hero history", logger.ErrorField(err), logger.StringField("symbol", heroSymbol))
			return nil
		}
		response.HeroHistory = history
		return nil
	})
	_ = g.Wait()

	return response
}

func (s *dashboardService) heroStock(ctx context.Context) (string, string) {
	featured, err := s.stockRepo.FindFeatured(ctx)
	if err != nil {
		s.log.Error("Failed to look up featured stock", logger.ErrorField(err))
	}
	if featured == nil {
		return defaultHeroSymbol, defaultHeroName
	}
	return featured.Symbol, featured.Name
}

// sectors returns sector ETF quotes with a trailing 7-day sparkline each.
func (s *dashboardService) sectors(ctx context.Context) []dto.SectorQuote {
	quotes, err := cache.Fetch(ctx, s.gateway, common.CacheKeySectors, common.TTLQuote, cache.Options{}, func(ctx context.Context) ([]dto.Quote, error) {
		return s.batchQuotes(ctx, sectorSymbols)
	})
	if err != nil || len(quotes) == 0 {
		return []dto.SectorQuote{}
	}

	sparklines := make(map[string][]float64, len(sectorSymbols))
	var (
		g, gctx = errgroup.WithContext(ctx)
		results = make([][]float64, len(sectorSymbols))
	)
	for i, symbol := range sectorSymbols {
		g.Go(func() error {
			results[i] = s.sparkline(gctx, symbol)
			return nil
		})
	}
	_ = g.Wait()
	for i, symbol := range sectorSymbols {
		sparklines[symbol] = results[i]
	}

	sectors := make([]dto.SectorQuote, 0, len(quotes))
	for _, quote := range quotes {
		spark := sparklines[quote.Symbol]
		if spark == nil {
			spark = []float64{}
		}
		sectors = append(sectors, dto.SectorQuote{Quote: quote, Sparkline: spark})
	}
	return sectors
}

func (s *dashboardService) sparkline(ctx context.Context, symbol string) []float64 {
	key := fmt.Sprintf(common.CacheKeySparkline, symbol)
	points, err := cache.Fetch(ctx, s.gateway, key, common.TTLSparkline, cache.Options{}, func(ctx context.Context) ([]dto.HistoryPoint, error) {
		return s.yahooRepo.GetChart(ctx, symbol, "1d", time.Now().AddDate(0, 0, -7))
	})
	if err != nil {
		s.log.Error("Failed to fetch sparkline", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return []float64{}
	}
	closes := make([]float64, 0, len(points))
	for _, p := range points {
		closes = append(closes, p.Price)
	}
	return closes
}

func (s *dashboardService) marketSummary(ctx context.Context) dto.MarketSummary {
	var all []string
	for _, group := range []string{"crypto", "rates", "commodities", "currencies"} {
		all = append(all, marketGroups[group]...)
	}

	quotes, err := cache.Fetch(ctx, s.gateway, common.CacheKeySummary, common.TTLQuote, cache.Options{}, func(ctx context.Context) ([]dto.Quote, error) {
		return s.batchQuotes(ctx, all)
	})
	if err != nil {
		quotes = nil
	}

	bySymbol := make(map[string]dto.Quote, len(quotes))
	for _, q := range quotes {
		bySymbol[q.Symbol] = q
	}
	pick := func(symbols []string) []dto.Quote {
		group := make([]dto.Quote, 0, len(symbols))
		for _, sym := range symbols {
			if q, ok := bySymbol[sym]; ok {
				group = append(group, q)
			}
		}
		return group
	}

	return dto.MarketSummary{
		Crypto:      pick(marketGroups["crypto"]),
		Rates:       pick(marketGroups["rates"]),
		Commodities: pick(marketGroups["commodities"]),
		Currencies:  pick(marketGroups["currencies"]),
	}
}

func (s *dashboardService) vix(ctx context.Context) *dto.Quote {
	quotes, err := s.batchQuotes(ctx, []string{"^VIX"})
	if err != nil || len(quotes) == 0 {
		return nil
	}
	return utils.ToPointer(quotes[0])
}

func (s *dashboardService) trending(ctx context.Context) []dto.Quote {
	symbols, err := cache.Fetch(ctx, s.gateway, fmt.Sprintf(common.CacheKeyTrending, "US"), common.TTLTrending, cache.Options{}, func(ctx context.Context) ([]string, error) {
		return s.yahooRepo.GetTrending(ctx, "US")
	})
	if err != nil || len(symbols) == 0 {
		return []dto.Quote{}
	}
	if len(symbols) > 5 {
		symbols = symbols[:5]
	}
	quotes, err := s.batchQuotes(ctx, symbols)
	if err != nil {
		return []dto.Quote{}
	}
	return quotes
}

// news merges three broad searches to guarantee volume, deduplicated and
// capped at ten items.
func (s *dashboardService) news(ctx context.Context) []dto.NewsItem {
	key := fmt.Sprintf(common.CacheKeyNewsFeed, "dashboard", 10)
	items, err := cache.Fetch(ctx, s.gateway, key, common.TTLNewsFeed, cache.Options{}, func(ctx context.Context) ([]dto.NewsItem, error) {
		var (
			g, gctx = errgroup.WithContext(ctx)
			queries = []string{"Finance News", "Stock Market", "Economy"}
			batches = make([][]dto.NewsItem, len(queries))
		)
		for i, query := range queries {
			g.Go(func() error {
				result, err := s.yahooRepo.Search(gctx, query, 0, 10)
				if err != nil {
					s.log.Error("Dashboard news search failed", logger.ErrorField(err), logger.StringField("query", query))
					return nil
				}
				items := make([]dto.NewsItem, 0, len(result.News))
				for _, n := range result.News {
					items = append(items, dto.NewsItem{
						ID:          n.UUID,
						Title:       n.Title,
						Publisher:   n.Publisher,
						Link:        n.Link,
						PublishedAt: n.ProviderPublishTime,
						Summary:     n.Summary,
					})
				}
				batches[i] = items
				return nil
			})
		}
		_ = g.Wait()

		var merged []dto.NewsItem
		for _, batch := range batches {
			merged = append(merged, batch...)
		}
		deduped := dedupeNewsItems(merged)
		if len(deduped) > 10 {
			deduped = deduped[:10]
		}
		return deduped, nil
	})
	if err != nil {
		return []dto.NewsItem{}
	}
	return items
}

func (s *dashboardService) batchQuotes(ctx context.Context, symbols []string) ([]dto.Quote, error) {
	raw, err := s.yahooRepo.GetQuotes(ctx, symbols)
	if err != nil {
		s.log.Error("Batch quote fetch failed", logger.ErrorField(err))
		return []dto.Quote{}, nil
	}
	quotes := make([]dto.Quote, 0, len(raw))
	for _, q := range raw {
		quotes = append(quotes, normalizeQuote(q))
	}
	return quotes, nil
}
