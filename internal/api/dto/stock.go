package dto

import "time"

// AddStockRequest is the body for adding a symbol to the watchlist.
type AddStockRequest struct {
	Symbol string `json:"symbol"`
}

// FeatureStockRequest is the body for pinning a symbol as featured.
type FeatureStockRequest struct {
	Symbol string `json:"symbol"`
}

// StockResponse is one watchlist row as returned to the UI. Headlines are
// attached for immediate display only; they are never persisted.
type StockResponse struct {
	ID          uint      `json:"id"`
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Change      float64   `json:"change"`
	Currency    string    `json:"currency,omitempty"`
	Narrative   string    `json:"narrative"`
	IsFeatured  bool      `json:"isFeatured"`
	LastUpdated time.Time `json:"lastUpdated"`
	Headlines   []string  `json:"headlines,omitempty"`
}

// StockDetailsResponse is the payload for the stock detail page.
type StockDetailsResponse struct {
	Symbol       string        `json:"symbol"`
	Price        float64       `json:"price"`
	Fundamentals *Fundamentals `json:"fundamentals,omitempty"`
	News         []NewsItem    `json:"news"`
}
