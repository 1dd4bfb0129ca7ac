package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/api/repository"
	"go-stock-dashboard/internal/entity"

	"gorm.io/datatypes"
)

const defaultLayoutName = "default"

// defaultWidgetOrder is the dashboard ordering served before the user has
// saved one.
var defaultWidgetOrder = []string{
	"hero-chart",
	"market-summary",
	"sectors",
	"movers",
	"news",
	"watchlist",
	"economic-calendar",
	"financials",
}

// ErrUnknownWidget signals a save request naming a widget that does not exist.
var ErrUnknownWidget = errors.New("unknown widget id")

// LayoutService persists the user's dashboard widget ordering as an explicit
// ordered list, independent of any rendering concern.
type LayoutService interface {
	GetLayout(ctx context.Context) (*dto.LayoutResponse, error)
	SaveLayout(ctx context.Context, req *dto.UpdateLayoutRequest) (*dto.LayoutResponse, error)
}

// NewLayoutService creates the layout service.
func NewLayoutService(layoutRepo repository.DashboardLayoutRepository) LayoutService {
	return &layoutService{layoutRepo: layoutRepo}
}

type layoutService struct {
	layoutRepo repository.DashboardLayoutRepository
}

// GetLayout returns the stored ordering, or the default when none is stored.
func (s *layoutService) GetLayout(ctx context.Context) (*dto.LayoutResponse, error) {
	layout, err := s.layoutRepo.FindByName(ctx, defaultLayoutName)
	if err != nil {
		return nil, err
	}
	if layout == nil {
		return &dto.LayoutResponse{Name: defaultLayoutName, Widgets: defaultWidgetOrder}, nil
	}

	var widgets []string
	if err := json.Unmarshal(layout.Widgets, &widgets); err != nil {
		// A corrupt stored ordering falls back to the default.
		return &dto.LayoutResponse{Name: defaultLayoutName, Widgets: defaultWidgetOrder}, nil
	}
	return &dto.LayoutResponse{Name: layout.Name, Widgets: widgets, UpdatedAt: layout.UpdatedAt}, nil
}

// SaveLayout validates and stores a new ordering. Every widget must be a
// known id and appear at most once.
func (s *layoutService) SaveLayout(ctx context.Context, req *dto.UpdateLayoutRequest) (*dto.LayoutResponse, error) {
	if len(req.Widgets) == 0 {
		return nil, fmt.Errorf("%w: empty widget list", ErrUnknownWidget)
	}

	known := make(map[string]struct{}, len(defaultWidgetOrder))
	for _, id := range defaultWidgetOrder {
		known[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(req.Widgets))
	for _, id := range req.Widgets {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownWidget, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate %s", ErrUnknownWidget, id)
		}
		seen[id] = struct{}{}
	}

	payload, err := json.Marshal(req.Widgets)
	if err != nil {
		return nil, err
	}

	layout := &entity.DashboardLayout{
		Name:    defaultLayoutName,
		Widgets: datatypes.JSON(payload),
	}
	if err := s.layoutRepo.Upsert(ctx, layout); err != nil {
		return nil, err
	}
	return &dto.LayoutResponse{Name: layout.Name, Widgets: req.Widgets, UpdatedAt: layout.UpdatedAt}, nil
}
