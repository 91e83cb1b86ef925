package query

import (
	"strings"
	"time"
)

// slot is a (date, start) pair exactly as stored. Grouping uses the raw
// strings; parsing only decides the order in which slots are reported.
type slot struct {
	Date  string
	Start string
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Monday, January 2, 2006",
	"Mon, Jan 2, 2006",
}

var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseClock(s string) (time.Duration, bool) {
	s = strings.ToUpper(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}

func (s slot) instant() (time.Time, bool) {
	d, ok := parseDate(s.Date)
	if !ok {
		return time.Time{}, false
	}
	c, ok := parseClock(s.Start)
	if !ok {
		return time.Time{}, false
	}
	return d.Add(c), true
}

// compareSlots orders slots chronologically when both parse, puts parsed
// slots before unparsed ones, and falls back to lexical order otherwise.
func compareSlots(a, b slot) int {
	ta, okA := a.instant()
	tb, okB := b.instant()
	switch {
	case okA && okB:
		if c := ta.Compare(tb); c != 0 {
			return c
		}
	case okA:
		return -1
	case okB:
		return 1
	}
	if c := strings.Compare(a.Date, b.Date); c != 0 {
		return c
	}
	return strings.Compare(a.Start, b.Start)
}
