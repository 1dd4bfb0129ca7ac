package service

import (
	"context"
	"fmt"
	"sync"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/api/repository"
	"go-stock-dashboard/pkg/cache"
	"go-stock-dashboard/pkg/common"
	"go-stock-dashboard/pkg/logger"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

const defaultNewsCategory = "US Markets"

// NewsService aggregates market news from the provider's search endpoint and
// any configured RSS feeds.
type NewsService interface {
	GetNewsFeed(ctx context.Context, count int, category string) []dto.NewsItem
	GetMarketNews(ctx context.Context) []dto.NewsItem
}

// NewNewsService creates the news aggregation service.
func NewNewsService(yahooRepo repository.YahooFinanceRepository, gateway *cache.Gateway, rssFeeds []string, log *logger.Logger) NewsService {
	return &newsService{
		yahooRepo:  yahooRepo,
		gateway:    gateway,
		rssFeeds:   rssFeeds,
		feedParser: gofeed.NewParser(),
		log:        log,
	}
}

type newsService struct {
	yahooRepo  repository.YahooFinanceRepository
	gateway    *cache.Gateway
	rssFeeds   []string
	feedParser *gofeed.Parser
	log        *logger.Logger
}

// GetNewsFeed returns up to count deduplicated news items for a category.
// Two provider searches run in parallel (a single query rarely yields enough
// items) alongside the RSS feeds; every source degrades independently.
func (s *newsService) GetNewsFeed(ctx context.Context, count int, category string) []dto.NewsItem {
	if count <= 0 {
		count = 20
	}
	if category == "" {
		category = defaultNewsCategory
	}

	key := fmt.Sprintf(common.CacheKeyNewsFeed, category, count)
	items, err := cache.Fetch(ctx, s.gateway, key, common.TTLNewsFeed, cache.Options{}, func(ctx context.Context) ([]dto.NewsItem, error) {
		return s.fetchAllSources(ctx, count, category), nil
	})
	if err != nil {
		return []dto.NewsItem{}
	}
	return items
}

// GetMarketNews returns the default ten-item feed used by the dashboard and
// the news page alike.
func (s *newsService) GetMarketNews(ctx context.Context) []dto.NewsItem {
	return s.GetNewsFeed(ctx, 10, defaultNewsCategory)
}

func (s *newsService) fetchAllSources(ctx context.Context, count int, category string) []dto.NewsItem {
	var (
		mu      sync.Mutex
		batches [][]dto.NewsItem
	)
	collect := func(items []dto.NewsItem) {
		mu.Lock()
		batches = append(batches, items)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, query := range []string{category, category + " economy stocks"} {
		g.Go(func() error {
			collect(s.searchNews(gctx, query, count))
			return nil
		})
	}
	for _, feedURL := range s.rssFeeds {
		g.Go(func() error {
			collect(s.fetchRSS(gctx, feedURL))
			return nil
		})
	}
	_ = g.Wait()

	var merged []dto.NewsItem
	for _, batch := range batches {
		merged = append(merged, batch...)
	}
	deduped := dedupeNewsItems(merged)
	if len(deduped) > count {
		deduped = deduped[:count]
	}
	return deduped
}

func (s *newsService) searchNews(ctx context.Context, query string, count int) []dto.NewsItem {
	result, err := s.yahooRepo.Search(ctx, query, 0, count)
	if err != nil {
		s.log.Error("News search failed", logger.ErrorField(err), logger.StringField("query", query))
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
	return items
}

func (s *newsService) fetchRSS(ctx context.Context, feedURL string) []dto.NewsItem {
	feed, err := s.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		s.log.Error("RSS fetch failed", logger.ErrorField(err), logger.StringField("feed", feedURL))
		return nil
	}
	items := make([]dto.NewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		id := item.GUID
		if id == "" {
			id = item.Link
		}
		var publishedAt int64
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed.Unix()
		}
		items = append(items, dto.NewsItem{
			ID:          id,
			Title:       item.Title,
			Publisher:   feed.Title,
			Link:        item.Link,
			PublishedAt: publishedAt,
			Summary:     item.Description,
		})
	}
	return items
}

// dedupeNewsItems drops items without an id and repeated ids, keeping first
// occurrence order.
func dedupeNewsItems(items []dto.NewsItem) []dto.NewsItem {
	seen := make(map[string]struct{}, len(items))
	unique := make([]dto.NewsItem, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}
