package dto

// YahooQuoteResponse mirrors the v7/finance/quote payload.
type YahooQuoteResponse struct {
	QuoteResponse struct {
		Result []YahooQuote `json:"result"`
		Error  *YahooError  `json:"error"`
	} `json:"quoteResponse"`
}

// YahooQuote is one raw quote record.
type YahooQuote struct {
	Symbol                     string  `json:"symbol"`
	LongName                   string  `json:"longName"`
	ShortName                  string  `json:"shortName"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	Currency                   string  `json:"currency"`
}

// YahooError is the error object embedded in Yahoo responses.
type YahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// YahooChartResponse mirrors the v8/finance/chart payload. Close values are
// pointers because market holidays produce explicit nulls.
type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *YahooError `json:"error"`
	} `json:"chart"`
}

// YahooSearchResponse mirrors the v1/finance/search payload.
type YahooSearchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		ExchDisp  string `json:"exchDisp"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
	News []struct {
		UUID                string `json:"uuid"`
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
		Summary             string `json:"summary"`
	} `json:"news"`
}

// YahooTrendingResponse mirrors the v1/finance/trending payload.
type YahooTrendingResponse struct {
	Finance struct {
		Result []struct {
			Quotes []struct {
				Symbol string `json:"symbol"`
			} `json:"quotes"`
		} `json:"result"`
		Error *YahooError `json:"error"`
	} `json:"finance"`
}

// YahooQuoteSummaryResponse mirrors the v10/finance/quoteSummary payload for
// the modules the narrative context needs.
type YahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE *FormattedValue `json:"trailingPE"`
				MarketCap  *FormattedValue `json:"marketCap"`
			} `json:"summaryDetail"`
			FinancialData struct {
				TargetMeanPrice *FormattedValue `json:"targetMeanPrice"`
				RevenueGrowth   *FormattedValue `json:"revenueGrowth"`
				GrossMargins    *FormattedValue `json:"grossMargins"`
				ProfitMargins   *FormattedValue `json:"profitMargins"`
			} `json:"financialData"`
			RecommendationTrend struct {
				Trend []RecommendationPeriod `json:"trend"`
			} `json:"recommendationTrend"`
			InsiderTransactions struct {
				Transactions []InsiderTransaction `json:"transactions"`
			} `json:"insiderTransactions"`
			EarningsHistory struct {
				History []struct {
					Quarter     *FormattedValue `json:"quarter"`
					EPSActual   *FormattedValue `json:"epsActual"`
					EPSEstimate *FormattedValue `json:"epsEstimate"`
				} `json:"history"`
			} `json:"earningsHistory"`
		} `json:"result"`
		Error *YahooError `json:"error"`
	} `json:"quoteSummary"`
}
