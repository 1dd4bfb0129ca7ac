package service

import (
	"context"
	"testing"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeLayoutRepo struct {
	layouts map[string]*entity.DashboardLayout
}

func newFakeLayoutRepo() *fakeLayoutRepo {
	return &fakeLayoutRepo{layouts: map[string]*entity.DashboardLayout{}}
}

func (r *fakeLayoutRepo) FindByName(_ context.Context, name string) (*entity.DashboardLayout, error) {
	layout, ok := r.layouts[name]
	if !ok {
		return nil, nil
	}
	copied := *layout
	return &copied, nil
}

func (r *fakeLayoutRepo) Upsert(_ context.Context, layout *entity.DashboardLayout) error {
	copied := *layout
	r.layouts[layout.Name] = &copied
	return nil
}

func TestGetLayout_MissingFallsBackToDefault(t *testing.T) {
	svc := NewLayoutService(newFakeLayoutRepo())

	layout, err := svc.GetLayout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "default", layout.Name)
	assert.Equal(t, defaultWidgetOrder, layout.Widgets)
}

func TestGetLayout_CorruptStoredOrderingFallsBackToDefault(t *testing.T) {
	repo := newFakeLayoutRepo()
	repo.layouts["default"] = &entity.DashboardLayout{Name: "default", Widgets: datatypes.JSON("{broken")}
	svc := NewLayoutService(repo)

	layout, err := svc.GetLayout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, defaultWidgetOrder, layout.Widgets)
}

func TestSaveLayout_RoundTrip(t *testing.T) {
	svc := NewLayoutService(newFakeLayoutRepo())
	want := []string{"news", "hero-chart", "watchlist"}

	saved, err := svc.SaveLayout(context.Background(), &dto.UpdateLayoutRequest{Widgets: want})
	require.NoError(t, err)
	assert.Equal(t, want, saved.Widgets)

	layout, err := svc.GetLayout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, layout.Widgets)
}

func TestSaveLayout_RejectsInvalidOrderings(t *testing.T) {
	svc := NewLayoutService(newFakeLayoutRepo())

	tests := []struct {
		name    string
		widgets []string
	}{
		{"empty", nil},
		{"unknown id", []string{"hero-chart", "crypto-ticker"}},
		{"duplicate id", []string{"news", "news"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveLayout(context.Background(), &dto.UpdateLayoutRequest{Widgets: tt.widgets})
			assert.ErrorIs(t, err, ErrUnknownWidget)
		})
	}
}
