package dto

// SectorQuote is one sector ETF quote with a trailing sparkline series.
type SectorQuote struct {
	Quote
	Sparkline []float64 `json:"sparkline"`
}

// MarketSummary groups the market-wide quote tiles by asset class.
type MarketSummary struct {
	Crypto      []Quote `json:"crypto"`
	Rates       []Quote `json:"rates"`
	Commodities []Quote `json:"commodities"`
	Currencies  []Quote `json:"currencies"`
}

// DashboardResponse is the aggregated dashboard payload. Every section
// degrades independently to its empty value on upstream failure.
type DashboardResponse struct {
	Sectors       []SectorQuote  `json:"sectors"`
	MarketSummary MarketSummary  `json:"marketSummary"`
	VIX           *Quote         `json:"vix"`
	Trending      []Quote        `json:"trending"`
	HeroSymbol    string         `json:"heroSymbol"`
	HeroName      string         `json:"heroName"`
	HeroHistory   []HistoryPoint `json:"heroHistory"`
	News          []NewsItem     `json:"news"`
}
