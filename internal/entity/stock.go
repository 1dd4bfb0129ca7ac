package entity

import (
	"time"
)

// Stock is one tracked watchlist row, keyed by its uppercase ticker symbol.
// At most one row has IsFeatured set; the exclusivity is enforced by an
// application-level transaction, not a database constraint.
type Stock struct {
	ID          uint      `gorm:"primaryKey"`
	Symbol      string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"not null"`
	Price       float64   `gorm:"not null;default:0"`
	Change      float64   `gorm:"not null;default:0"`
	Currency    string    `gorm:"default:'$'"`
	Narrative   string    `gorm:"type:text"`
	IsFeatured  bool      `gorm:"not null;default:false"`
	LastUpdated time.Time `gorm:"autoCreateTime"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}
