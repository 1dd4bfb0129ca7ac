package common

import "time"

// Cache key formats. Keys are looked up by exact string match only.
const (
	CacheKeyQuote        = "market:quote:%s"
	CacheKeyHistory      = "stock:history:%s:%s"
	CacheKeyFundamentals = "stock:fundamentals:%s"
	CacheKeySearch       = "search:query:%s"
	CacheKeyNewsFeed     = "news:feed:%s:%d"
	CacheKeySectors      = "market:sectors"
	CacheKeySummary      = "market:summary"
	CacheKeyTrending     = "market:trending:%s"
	CacheKeySparkline    = "market:sparkline:%s"
	CacheKeyDetails      = "stock:details:%s"
)

// TTL tiers per key class.
const (
	TTLQuote        = time.Minute
	TTLHeadlines    = 10 * time.Minute
	TTLFundamentals = time.Hour
	TTLSearch       = 24 * time.Hour
	TTLNewsFeed     = 10 * time.Minute
	TTLTrending     = 10 * time.Minute
	TTLSparkline    = time.Hour
	TTLDetails      = 10 * time.Minute
)

// Narrative lifecycle markers. A stored narrative equal to one of these is
// treated as absent and regenerated on the next ingestion.
const (
	NarrativePlaceholder = "Analysis pending... Click refresh to generate."
	NarrativeUnavailable = "Analyst unavailable."
)

// NarrativeTTLHours is how long a stored narrative is considered fresh,
// measured from the row's last_updated column.
const NarrativeTTLHours = 12
