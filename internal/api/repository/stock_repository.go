package repository

import (
	"context"

	"go-stock-dashboard/internal/entity"

	"gorm.io/gorm"
)

// StockRepository defines the interface for watchlist data operations.
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	Update(ctx context.Context, stock *entity.Stock) error
	FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error)
	FindAll(ctx context.Context) ([]entity.Stock, error)
	FindFeatured(ctx context.Context) (*entity.Stock, error)
	Delete(ctx context.Context, symbol string) error
	SetFeatured(ctx context.Context, symbol string) error
}

// NewStockRepository creates a new GORM-based stock repository.
func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

type stockRepository struct {
	db *gorm.DB
}

// Create inserts a new watchlist row. A duplicate symbol surfaces as
// gorm.ErrDuplicatedKey.
func (r *stockRepository) Create(ctx context.Context, stock *entity.Stock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

// Update saves the full row.
func (r *stockRepository) Update(ctx context.Context, stock *entity.Stock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

// FindBySymbol retrieves the row for a symbol, or nil when none exists.
func (r *stockRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	var stock entity.Stock
	result := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&stock)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &stock, nil
}

// FindAll retrieves every watchlist row.
func (r *stockRepository) FindAll(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	if err := r.db.WithContext(ctx).Order("symbol asc").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindFeatured retrieves the featured row, or nil when none is pinned.
func (r *stockRepository) FindFeatured(ctx context.Context) (*entity.Stock, error) {
	var stock entity.Stock
	result := r.db.WithContext(ctx).Where("is_featured = ?", true).First(&stock)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &stock, nil
}

// Delete removes the row for a symbol. Deleting a symbol that is not present
// is a no-op, not an error.
func (r *stockRepository) Delete(ctx context.Context, symbol string) error {
	return r.db.WithContext(ctx).Where("symbol = ?", symbol).Delete(&entity.Stock{}).Error
}

// SetFeatured pins exactly one symbol: unset every featured row, then set the
// target. Both statements run inside one transaction; a concurrent caller can
// interleave between them, so a transient zero-featured state is possible but
// two committed featured rows are not.
func (r *stockRepository) SetFeatured(ctx context.Context, symbol string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Stock{}).
			Where("is_featured = ?", true).
			Update("is_featured", false).Error; err != nil {
			return err
		}

		result := tx.Model(&entity.Stock{}).
			Where("symbol = ?", symbol).
			Update("is_featured", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
