package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/allanboury/ao-trading-dasboard/internal/util"
)

// layouts the platform has been seen to render, most common first. The
// non-padded day and hour verbs accept the padded forms too.
var timeLayouts = []string{
	"2 Jan 2006, 3:04 PM",
	"2 Jan 2006 3:04 PM",
	"2 Jan 2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// parseTime parses one timestamp cell. Relative stamps like "2 hours ago"
// only ever appear for positions closed today, so they collapse to now's
// calendar day.
func parseTime(raw string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if strings.Contains(strings.ToLower(s), "ago") {
		return util.Day(now), nil
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
		// month names match case-insensitively but AM/PM does not,
		// so retry lowercase meridiems in upper case
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
