// Package calendar indexes a fetched availability calendar by date and
// answers the blocked-date queries used when the manager creates a block.
package calendar

import "time"

const dateLayout = "2006-01-02"

// Day is one per-date availability record, date in YYYY-MM-DD form.
type Day struct {
	Date      string
	Available bool
}

// Index is a date-keyed view over one availability fetch. It is built fresh
// per validation and read-only afterwards.
type Index struct {
	days map[string]bool
	// selectionStart is the check-in date of the range being picked; it is
	// never reported as blocked so the user's own in-progress selection
	// cannot reject itself.
	selectionStart string
}

// BuildIndex indexes days by date. Duplicate dates keep the last record.
func BuildIndex(days []Day, selectionStart string) Index {
	ix := Index{days: make(map[string]bool, len(days)), selectionStart: selectionStart}
	for _, d := range days {
		ix.days[d.Date] = d.Available
	}
	return ix
}

// Blocked reports whether a record exists for date with zero availability.
// Dates with no record count as available: the upstream calendar only spans
// the queried window and days outside it must not look blocked.
func (ix Index) Blocked(date string) bool {
	if date == ix.selectionStart {
		return false
	}
	avail, ok := ix.days[date]
	return ok && !avail
}

// HasUnavailableInRange walks every day from start to end inclusive and
// reports whether any is blocked. Missing or unparseable bounds, or end
// before start, report no violation; range ordering is validated by the
// caller before any write.
func (ix Index) HasUnavailableInRange(start, end string) bool {
	if start == "" || end == "" {
		return false
	}
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return false
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return false
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if ix.Blocked(d.Format(dateLayout)) {
			return true
		}
	}
	return false
}
