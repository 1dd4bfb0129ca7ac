package repository

import (
	"fmt"
	"math"
	"strings"

	"go-stock-dashboard/internal/api/dto"
)

// BuildNarrativePrompt renders the executive-summary prompt for one symbol.
// Derived fields (direction, headline digest, analyst sentiment, insider
// activity) are computed here so the model receives plain statements.
func BuildNarrativePrompt(c dto.NarrativeContext) string {
	direction := "DOWN"
	if c.Change > 0 {
		direction = "UP"
	}
	absChange := math.Abs(c.Change)

	headlines := c.Headlines
	if len(headlines) > 3 {
		headlines = headlines[:3]
	}
	headlineText := strings.Join(headlines, "; ")

	peRatio := formattedOrNA(fundamentalField(c.Fundamentals, func(f *dto.Fundamentals) *dto.FormattedValue { return f.TrailingPE }))
	targetPrice := formattedOrNA(fundamentalField(c.Fundamentals, func(f *dto.Fundamentals) *dto.FormattedValue { return f.TargetMeanPrice }))
	revenueGrowth := formattedOrNA(fundamentalField(c.Fundamentals, func(f *dto.Fundamentals) *dto.FormattedValue { return f.RevenueGrowth }))
	grossMargins := formattedOrNA(fundamentalField(c.Fundamentals, func(f *dto.Fundamentals) *dto.FormattedValue { return f.GrossMargins }))

	buyCount, holdCount := 0, 0
	if c.Fundamentals != nil && len(c.Fundamentals.Recommendations) > 0 {
		latest := c.Fundamentals.Recommendations[0]
		buyCount = latest.StrongBuy + latest.Buy
		holdCount = latest.Hold
	}
	analystSentiment := "Neutral/Bearish"
	if buyCount > holdCount {
		analystSentiment = "Bullish"
	}

	recentInsider := "No recent significant activity"
	if c.Fundamentals != nil && len(c.Fundamentals.Insiders) > 0 {
		tx := c.Fundamentals.Insiders[0]
		recentInsider = fmt.Sprintf("%s (%s)", tx.FilerName, tx.TransactionText)
	}

	promptTemplate := `You are a Wall Street Senior Equity Analyst.
Write a professional, 3-section executive summary for %s.

## REAL-TIME DATA
- Price: $%.2f (%s %.2f%%)
- Key Headlines: %s

## DEEP FUNDAMENTALS
- Valuation: P/E is %s. Revenue Growth is %s. Gross Margins: %s.
- Analyst Consensus: %s (%d Buys, %d Holds). Target Price: %s.
- Insider Action: %s.

## INSTRUCTIONS
Write exactly 3 short paragraphs (plain text, no markdown bolding).

Paragraph 1 (The Move): Explain why the stock is moving today. Connect the price action to the headlines or macro trends.

Paragraph 2 (The Fundamentals): Analyze the valuation and growth. Is it expensive? Is it profitable? Reference the P/E and Margins.

Paragraph 3 (The Sentiment): Summarize analyst views and insider behavior. Give a final verdict on the market mood (Bullish/Bearish).

Keep it concise (max 120 words total). Professional financial tone.`

	return fmt.Sprintf(promptTemplate,
		c.Symbol,
		c.Price, direction, absChange,
		headlineText,
		peRatio, revenueGrowth, grossMargins,
		analystSentiment, buyCount, holdCount, targetPrice,
		recentInsider,
	)
}

func fundamentalField(f *dto.Fundamentals, pick func(*dto.Fundamentals) *dto.FormattedValue) *dto.FormattedValue {
	if f == nil {
		return nil
	}
	return pick(f)
}

func formattedOrNA(v *dto.FormattedValue) string {
	if v == nil || v.Fmt == "" {
		return "N/A"
	}
	return v.Fmt
}
