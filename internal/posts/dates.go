package posts

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate interprets a free-form front matter date. Dates without a zone
// are read as UTC. The boolean is false for values such as "Unknown".
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// SortByDate orders records newest first. Records without a parseable date
// go last and equal dates keep their incoming order.
func SortByDate(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		left, right := records[i].Published, records[j].Published
		switch {
		case left.IsZero():
			return false
		case right.IsZero():
			return true
		default:
			return left.After(right)
		}
	})
}
