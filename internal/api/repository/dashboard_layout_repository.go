package repository

import (
	"context"

	"go-stock-dashboard/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DashboardLayoutRepository defines the interface for layout persistence.
type DashboardLayoutRepository interface {
	FindByName(ctx context.Context, name string) (*entity.DashboardLayout, error)
	Upsert(ctx context.Context, layout *entity.DashboardLayout) error
}

// NewDashboardLayoutRepository creates a new GORM-based layout repository.
func NewDashboardLayoutRepository(db *gorm.DB) DashboardLayoutRepository {
	return &dashboardLayoutRepository{db: db}
}

type dashboardLayoutRepository struct {
	db *gorm.DB
}

// FindByName retrieves a layout by name, or nil when none is stored.
func (r *dashboardLayoutRepository) FindByName(ctx context.Context, name string) (*entity.DashboardLayout, error) {
	var layout entity.DashboardLayout
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&layout)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &layout, nil
}

// Upsert inserts the layout or replaces the widget ordering of an existing
// layout with the same name.
func (r *dashboardLayoutRepository) Upsert(ctx context.Context, layout *entity.DashboardLayout) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"widgets", "updated_at"}),
	}).Create(layout).Error
}
