package telegram

import (
	"fmt"
	"strings"
	"time"
)

// RefreshDigest summarizes one scheduled watchlist refresh run.
type RefreshDigest struct {
	StartedAt time.Time
	Duration  time.Duration
	Updated   []string
	Failed    []string
}

// FormatRefreshDigest renders a refresh run as a Markdown message.
func FormatRefreshDigest(d RefreshDigest) string {
	var b strings.Builder
	b.WriteString("*Watchlist refresh*\n")
	fmt.Fprintf(&b, "Started: %s\n", d.StartedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Duration: %s\n", d.Duration.Round(time.Second))
	fmt.Fprintf(&b, "Updated: %d", len(d.Updated))
	if len(d.Failed) > 0 {
		fmt.Fprintf(&b, "\nFailed: %s", strings.Join(d.Failed, ", "))
	}
	return b.String()
}
