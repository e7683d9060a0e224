// Package stats turns raw booking records into month-bucketed series for the
// dashboard charts. All functions are pure; malformed records are expected to
// be filtered out by the caller before they reach this package.
package stats

import (
	"strconv"
	"time"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthKey identifies one calendar month. Keeping the year in the key means
// the same month in different years lands in different buckets; collapsing
// to bare month names is left to CollapseByName.
type MonthKey struct {
	Year  int
	Month time.Month
}

// Name returns the short month name ("Jan".."Dec").
func (k MonthKey) Name() string {
	return monthNames[k.Month-1]
}

func monthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// DeriveMonths computes the chart axis: every calendar month between the
// earliest and latest date (inclusive), in chronological order. An empty
// input yields an empty axis; a single-day range yields exactly one bucket.
func DeriveMonths(dates []time.Time) []MonthKey {
	if len(dates) == 0 {
		return nil
	}
	min, max := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}

	var months []MonthKey
	cur := time.Date(min.Year(), min.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(max.Year(), max.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(last) {
		months = append(months, monthOf(cur))
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

// Labels projects an axis to display labels. When the axis spans more than
// one year the labels carry the year ("Jan 2024"), otherwise just the short
// month name.
func Labels(months []MonthKey) []string {
	if len(months) == 0 {
		return nil
	}
	multiYear := false
	for _, m := range months[1:] {
		if m.Year != months[0].Year {
			multiYear = true
			break
		}
	}
	labels := make([]string, len(months))
	for i, m := range months {
		if multiYear {
			labels[i] = m.Name() + " " + strconv.Itoa(m.Year)
		} else {
			labels[i] = m.Name()
		}
	}
	return labels
}

func indexOf(months []MonthKey, k MonthKey) int {
	for i, m := range months {
		if m == k {
			return i
		}
	}
	return -1
}
