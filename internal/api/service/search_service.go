package service

import (
	"context"
	"fmt"
	"strings"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/api/repository"
	"go-stock-dashboard/pkg/cache"
	"go-stock-dashboard/pkg/common"
	"go-stock-dashboard/pkg/logger"
)

// SearchService serves cached symbol searches.
type SearchService interface {
	Search(ctx context.Context, query string) []dto.SearchResult
}

// NewSearchService creates the search service.
func NewSearchService(yahooRepo repository.YahooFinanceRepository, gateway *cache.Gateway, log *logger.Logger) SearchService {
	return &searchService{yahooRepo: yahooRepo, gateway: gateway, log: log}
}

type searchService struct {
	yahooRepo repository.YahooFinanceRepository
	gateway   *cache.Gateway
	log       *logger.Logger
}

// Search returns up to five symbol matches for the query, cached for a day.
// Upstream failure degrades to an empty result set.
func (s *searchService) Search(ctx context.Context, query string) []dto.SearchResult {
	key := fmt.Sprintf(common.CacheKeySearch, strings.ToLower(query))

	results, err := cache.Fetch(ctx, s.gateway, key, common.TTLSearch, cache.Options{}, func(ctx context.Context) ([]dto.SearchResult, error) {
		response, err := s.yahooRepo.Search(ctx, query, 5, 0)
		if err != nil {
			s.log.Error("Search failed", logger.ErrorField(err), logger.StringField("query", query))
			return []dto.SearchResult{}, nil
		}
		matches := make([]dto.SearchResult, 0, len(response.Quotes))
		for _, q := range response.Quotes {
			matches = append(matches, dto.SearchResult{
				Symbol:    q.Symbol,
				ShortName: q.ShortName,
				LongName:  q.LongName,
				Exchange:  q.ExchDisp,
				QuoteType: q.QuoteType,
			})
		}
		return matches, nil
	})
	if err != nil {
		return []dto.SearchResult{}
	}
	return results
}
