package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/api/repository"
	"go-stock-dashboard/pkg/cache"
	"go-stock-dashboard/pkg/common"
	"go-stock-dashboard/pkg/logger"
)

// HistoryService serves cached price history series.
type HistoryService interface {
	GetStockHistory(ctx context.Context, symbol, rng string) ([]dto.HistoryPoint, error)
}

// NewHistoryService creates the history service.
func NewHistoryService(yahooRepo repository.YahooFinanceRepository, gateway *cache.Gateway, log *logger.Logger) HistoryService {
	return &historyService{yahooRepo: yahooRepo, gateway: gateway, log: log}
}

type historyService struct {
	yahooRepo repository.YahooFinanceRepository
	gateway   *cache.Gateway
	log       *logger.Logger
}

// GetStockHistory returns the price series for the requested range. Ranges
// map to an upstream interval and cache tier; an unknown range falls back to
// one month. Upstream failure degrades to an empty series.
func (s *historyService) GetStockHistory(ctx context.Context, symbol, rng string) ([]dto.HistoryPoint, error) {
	upper := strings.ToUpper(symbol)
	period1, interval, ttl := historyRangeParams(rng, time.Now())

	key := fmt.Sprintf(common.CacheKeyHistory, upper, rng)
	return cache.Fetch(ctx, s.gateway, key, ttl, cache.Options{}, func(ctx context.Context) ([]dto.HistoryPoint, error) {
		points, err := s.yahooRepo.GetChart(ctx, upper, interval, period1)
		if err != nil {
			s.log.Error("Failed to fetch history", logger.ErrorField(err), logger.StringField("symbol", upper), logger.StringField("range", rng))
			return []dto.HistoryPoint{}, nil
		}
		return points, nil
	})
}

// historyRangeParams maps a UI range to (start, upstream interval, cache TTL).
// The 1d window reaches back four days so weekends and holidays still yield
// a session.
func historyRangeParams(rng string, now time.Time) (time.Time, string, time.Duration) {
	switch rng {
	case "1d":
		return now.AddDate(0, 0, -4), "5m", 15 * time.Minute
	case "1w":
		return now.AddDate(0, 0, -7), "15m", time.Hour
	case "1y":
		return now.AddDate(-1, 0, 0), "1d", 24 * time.Hour
	case "1mo":
		fallthrough
	default:
		return now.AddDate(0, -1, 0), "1d", 12 * time.Hour
	}
}
