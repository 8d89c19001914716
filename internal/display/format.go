// Package display formats domain values for terminal output. Formatters never
// fail: malformed input yields a fixed fallback.
package display

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// UnknownDate is shown for missing or malformed timestamps.
const UnknownDate = "Unknown date"

const dateLayout = "Jan 2, 2006"

var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a timestamp string as "Jan 2, 2006".
func FormatDate(raw string) string {
	t, ok := parseTimestamp(raw)
	if !ok {
		return UnknownDate
	}
	return FormatTime(t)
}

// FormatTime renders t as "Jan 2, 2006".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return UnknownDate
	}
	return t.Format(dateLayout)
}

// Relative renders a timestamp string relative to now, e.g. "3 hours ago".
func Relative(raw string, now time.Time) string {
	t, ok := parseTimestamp(raw)
	if !ok {
		return UnknownDate
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatDuration renders seconds as m:ss or h:mm:ss.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}
	total := int(math.Round(seconds))
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatScore renders an optional viral score.
func FormatScore(score *float64) string {
	if score == nil || math.IsNaN(*score) {
		return "–"
	}
	return fmt.Sprintf("%d", int(math.Round(*score)))
}

// FormatCount renders large counts with separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
