package mapping

import (
	"sort"
	"strings"
	"time"
)

// Layouts a header must fully match to count as a date-valued header.
// Day-first layouts come first: the source workbooks are Chilean, so an
// ambiguous "01-02-2024" reads as the 1st of February.
var headerDateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
	"01-02-2006",
	"02-01-06",
	"02/01/06",
}

// DateColumn is a source column whose header parses as a calendar date.
type DateColumn struct {
	Index  int
	Header string
	Date   time.Time
}

// DateColumns is the per-run index of date-headed columns, ascending by
// parsed date. Built once per source table and read-only afterwards.
type DateColumns []DateColumn

// LocateDateColumns scans resolved headers for ones that are themselves
// calendar dates. The valuation columns carry no stable name, only their
// date, so this is the only way to find them.
func LocateDateColumns(headers []string) DateColumns {
	var cols DateColumns
	for i, h := range headers {
		d, ok := ParseHeaderDate(h)
		if !ok {
			continue
		}
		cols = append(cols, DateColumn{Index: i, Header: h, Date: d})
	}
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Date.Before(cols[j].Date) })
	return cols
}

// ParseHeaderDate attempts a tolerant full-string date parse of a header.
func ParseHeaderDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range headerDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// Nth returns the n-th (1-based) date column in chronological order.
func (d DateColumns) Nth(n int) (DateColumn, bool) {
	if n < 1 || n > len(d) {
		return DateColumn{}, false
	}
	return d[n-1], true
}
