package dto

import "time"

// UpdateLayoutRequest is the body for saving a widget ordering.
type UpdateLayoutRequest struct {
	Widgets []string `json:"widgets"`
}

// LayoutResponse is the stored (or default) widget ordering.
type LayoutResponse struct {
	Name      string    `json:"name"`
	Widgets   []string  `json:"widgets"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
