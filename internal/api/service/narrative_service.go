package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/api/repository"
	"go-stock-dashboard/pkg/cache"
	"go-stock-dashboard/pkg/common"
	"go-stock-dashboard/pkg/logger"
)

// NarrativeService produces a short text summary for a symbol. It always
// yields a usable string: provider failures degrade to templated text and are
// never surfaced to the caller.
type NarrativeService interface {
	Generate(ctx context.Context, nc dto.NarrativeContext) string
}

// NewNarrativeService creates a narrative generator. A nil aiRepo means no
// provider is configured; generation then uses the templated fallback.
func NewNarrativeService(aiRepo repository.AIRepository, yahooRepo repository.YahooFinanceRepository, gateway *cache.Gateway, log *logger.Logger) NarrativeService {
	return &narrativeService{
		aiRepo:    aiRepo,
		yahooRepo: yahooRepo,
		gateway:   gateway,
		log:       log,
	}
}

type narrativeService struct {
	aiRepo    repository.AIRepository
	yahooRepo repository.YahooFinanceRepository
	gateway   *cache.Gateway
	log       *logger.Logger
}

// Generate returns a narrative for the given context. Fundamentals are
// fetched here (cached for an hour) and are optional: generation proceeds
// without them when the fetch fails.
func (s *narrativeService) Generate(ctx context.Context, nc dto.NarrativeContext) string {
	if s.aiRepo == nil {
		return fallbackNarrative(nc.Symbol, nc.Price, nc.Change)
	}

	if nc.Fundamentals == nil {
		fundamentals, err := cache.Fetch(ctx, s.gateway,
			fmt.Sprintf(common.CacheKeyFundamentals, nc.Symbol),
			common.TTLFundamentals, cache.Options{},
			func(ctx context.Context) (*dto.Fundamentals, error) {
				return s.yahooRepo.GetFundamentals(ctx, nc.Symbol)
			})
		if err != nil {
			s.log.Warn("Failed to fetch fundamentals, generating without them",
				logger.ErrorField(err), logger.StringField("symbol", nc.Symbol))
		} else {
			nc.Fundamentals = fundamentals
		}
	}

	prompt := repository.BuildNarrativePrompt(nc)
	text, err := s.aiRepo.GenerateText(ctx, prompt)
	if err != nil {
		s.log.Error("Narrative generation failed", logger.ErrorField(err), logger.StringField("symbol", nc.Symbol))
		return fmt.Sprintf("%s is trading at $%.2f. Detailed analysis is currently unavailable.", nc.Symbol, nc.Price)
	}

	return strings.TrimSpace(strings.ReplaceAll(text, "**", ""))
}

// fallbackNarrative is the deterministic template used when no provider is
// configured. Flat phrasing below half a percent, directional otherwise.
func fallbackNarrative(symbol string, price, change float64) string {
	if math.Abs(change) < 0.5 {
		return fmt.Sprintf("%s is trading flat at $%.2f.", symbol, price)
	}
	return fmt.Sprintf("%s is moving %.2f%% to $%.2f.", symbol, change, price)
}
