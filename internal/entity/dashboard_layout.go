package entity

import (
	"time"

	"gorm.io/datatypes"
)

// DashboardLayout stores the user's widget ordering for one named layout.
// Widgets holds a JSON array of widget identifiers in display order.
type DashboardLayout struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"uniqueIndex;not null"`
	Widgets   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}
