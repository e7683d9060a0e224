package stats

import "time"

// CountPoint is one bucket of a counting series. Empty buckets are an
// explicit 0, never absent.
type CountPoint struct {
	Month MonthKey
	Value int
}

// AveragePoint is one bucket of an averaging series. Value is nil when the
// bucket had no qualifying records; an empty bucket is not a zero average.
type AveragePoint struct {
	Month MonthKey
	Value *float64
}

// Sample is a dated value fed to AverageByMonth. Records lacking a value must
// not be turned into samples by the caller, so that "no data" never reads as
// a zero.
type Sample struct {
	Date  time.Time
	Value float64
}

// Day is one calendar day fed to SplitByAvailability.
type Day struct {
	Date      time.Time
	Available bool
}

// CountByMonth counts records per bucket of the supplied axis. Dates whose
// month is not on the axis are silently dropped; that cannot happen when the
// axis was derived from the same dates.
func CountByMonth(dates []time.Time, months []MonthKey) []CountPoint {
	series := make([]CountPoint, len(months))
	for i, m := range months {
		series[i].Month = m
	}
	for _, d := range dates {
		if i := indexOf(months, monthOf(d)); i >= 0 {
			series[i].Value++
		}
	}
	return series
}

// AverageByMonth folds samples into per-bucket {sum, count} pairs and emits
// the mean per bucket, nil where the bucket saw no samples.
func AverageByMonth(samples []Sample, months []MonthKey) []AveragePoint {
	sums := make([]float64, len(months))
	counts := make([]int, len(months))
	for _, s := range samples {
		if i := indexOf(months, monthOf(s.Date)); i >= 0 {
			sums[i] += s.Value
			counts[i]++
		}
	}
	series := make([]AveragePoint, len(months))
	for i, m := range months {
		series[i].Month = m
		if counts[i] > 0 {
			avg := sums[i] / float64(counts[i])
			series[i].Value = &avg
		}
	}
	return series
}

// SplitByAvailability counts available and unavailable days per bucket. For
// every bucket available+unavailable equals the number of days observed in
// that bucket.
func SplitByAvailability(days []Day, months []MonthKey) (available, unavailable []CountPoint) {
	available = make([]CountPoint, len(months))
	unavailable = make([]CountPoint, len(months))
	for i, m := range months {
		available[i].Month = m
		unavailable[i].Month = m
	}
	for _, d := range days {
		i := indexOf(months, monthOf(d.Date))
		if i < 0 {
			continue
		}
		if d.Available {
			available[i].Value++
		} else {
			unavailable[i].Value++
		}
	}
	return available, unavailable
}

// CollapseByName merges buckets that share a month name, keeping first
// occurrence order. This reproduces the old chart behavior where January of
// two different years fell into a single "Jan" bucket.
func CollapseByName(series []CountPoint) []CountPoint {
	var out []CountPoint
	byName := map[string]int{}
	for _, p := range series {
		if i, ok := byName[p.Month.Name()]; ok {
			out[i].Value += p.Value
			continue
		}
		byName[p.Month.Name()] = len(out)
		out = append(out, p)
	}
	return out
}
