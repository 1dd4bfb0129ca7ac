package dto

// Quote is a normalized real-time quote for one symbol.
type Quote struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name,omitempty"`
	Price         float64  `json:"price"`
	ChangePercent float64  `json:"changePercent"`
	Currency      string   `json:"currency,omitempty"`
	Headlines     []string `json:"headlines,omitempty"`
}

// HistoryPoint is one sample of a price history series.
type HistoryPoint struct {
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

// NewsItem is one normalized headline from any news source.
type NewsItem struct {
	ID          string `json:"uuid"`
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Link        string `json:"link"`
	PublishedAt int64  `json:"providerPublishTime"`
	Summary     string `json:"summary,omitempty"`
}

// SearchResult is one symbol match from a text search.
type SearchResult struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortname,omitempty"`
	LongName  string `json:"longname,omitempty"`
	Exchange  string `json:"exchDisp,omitempty"`
	QuoteType string `json:"quoteType,omitempty"`
}

// FormattedValue mirrors the upstream raw/formatted number pair.
type FormattedValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

// RecommendationPeriod is one month of analyst recommendation counts.
type RecommendationPeriod struct {
	Period     string `json:"period"`
	StrongBuy  int    `json:"strongBuy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strongSell"`
}

// InsiderTransaction is one reported insider trade.
type InsiderTransaction struct {
	FilerName       string `json:"filerName"`
	TransactionText string `json:"transactionText"`
}

// EarningsPeriod is one quarter of reported earnings.
type EarningsPeriod struct {
	Quarter     string          `json:"quarter"`
	EPSActual   *FormattedValue `json:"epsActual,omitempty"`
	EPSEstimate *FormattedValue `json:"epsEstimate,omitempty"`
}

// Fundamentals is the deep per-symbol context used when generating a
// narrative. It is fetched separately from quotes and cached aggressively.
type Fundamentals struct {
	TrailingPE      *FormattedValue        `json:"trailingPE,omitempty"`
	TargetMeanPrice *FormattedValue        `json:"targetMeanPrice,omitempty"`
	RevenueGrowth   *FormattedValue        `json:"revenueGrowth,omitempty"`
	GrossMargins    *FormattedValue        `json:"grossMargins,omitempty"`
	ProfitMargins   *FormattedValue        `json:"profitMargins,omitempty"`
	MarketCap       *FormattedValue        `json:"marketCap,omitempty"`
	Recommendations []RecommendationPeriod `json:"recommendations,omitempty"`
	Insiders        []InsiderTransaction   `json:"insiders,omitempty"`
	Earnings        []EarningsPeriod       `json:"earnings,omitempty"`
}

// NarrativeContext is everything the narrative generator may use for one
// symbol. Fundamentals is optional; generation degrades without it.
type NarrativeContext struct {
	Symbol       string
	Price        float64
	Change       float64
	Headlines    []string
	Fundamentals *Fundamentals
}
