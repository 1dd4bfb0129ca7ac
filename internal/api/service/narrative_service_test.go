package service

import (
	"context"
	"errors"
	"testing"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/api/repository"
	"go-stock-dashboard/pkg/cache"
	"go-stock-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type fakeAI struct {
	text string
	err  error
}

func (a *fakeAI) GenerateText(context.Context, string) (string, error) {
	return a.text, a.err
}

func newTestNarrative(ai repository.AIRepository) NarrativeService {
	gateway := cache.NewGateway(cache.NewMemoryStore(), logger.NewNop())
	return NewNarrativeService(ai, nil, gateway, logger.NewNop())
}

func TestGenerate_NoProviderFlatTemplate(t *testing.T) {
	svc := newTestNarrative(nil)

	text := svc.Generate(context.Background(), dto.NarrativeContext{
		Symbol: "AAPL", Price: 175.5, Change: 0.3,
	})

	assert.Equal(t, "AAPL is trading flat at $175.50.", text)
}

func TestGenerate_NoProviderDirectionalTemplate(t *testing.T) {
	svc := newTestNarrative(nil)

	up := svc.Generate(context.Background(), dto.NarrativeContext{
		Symbol: "AAPL", Price: 175.5, Change: 2.1,
	})
	down := svc.Generate(context.Background(), dto.NarrativeContext{
		Symbol: "TSLA", Price: 240.0, Change: -3.25,
	})

	assert.Equal(t, "AAPL is moving 2.10% to $175.50.", up)
	assert.Equal(t, "TSLA is moving -3.25% to $240.00.", down)
}

func TestGenerate_ProviderErrorDegradesToTemplate(t *testing.T) {
	svc := newTestNarrative(&fakeAI{err: errors.New("quota exceeded")})

	text := svc.Generate(context.Background(), dto.NarrativeContext{
		Symbol: "AAPL", Price: 175.5, Change: 2.1,
		Fundamentals: &dto.Fundamentals{},
	})

	assert.Equal(t, "AAPL is trading at $175.50. Detailed analysis is currently unavailable.", text)
}

func TestGenerate_StripsBoldMarkersAndWhitespace(t *testing.T) {
	svc := newTestNarrative(&fakeAI{text: "  **Apple** shares rallied on **strong** earnings.\n"})

	text := svc.Generate(context.Background(), dto.NarrativeContext{
		Symbol: "AAPL", Price: 175.5, Change: 2.1,
		Fundamentals: &dto.Fundamentals{},
	})

	assert.Equal(t, "Apple shares rallied on strong earnings.", text)
}
