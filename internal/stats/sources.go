package stats

// DirectSource is the bucket for reservations that arrived without a partner,
// i.e. booked directly with the property.
const DirectSource = "Direct"

// Distribution is the reservation-source breakdown behind the pie chart.
// Percentages are unrounded; rounding is a presentation concern.
type Distribution struct {
	Labels      []string
	Counts      []int
	Percentages []float64
}

// SourceDistribution groups reservations by partner name in first-occurrence
// order. Empty names fall into DirectSource. An empty input yields an empty
// distribution.
func SourceDistribution(names []string) Distribution {
	var dist Distribution
	index := map[string]int{}
	for _, name := range names {
		if name == "" {
			name = DirectSource
		}
		i, ok := index[name]
		if !ok {
			i = len(dist.Labels)
			index[name] = i
			dist.Labels = append(dist.Labels, name)
			dist.Counts = append(dist.Counts, 0)
		}
		dist.Counts[i]++
	}
	if total := len(names); total > 0 {
		dist.Percentages = make([]float64, len(dist.Counts))
		for i, c := range dist.Counts {
			dist.Percentages[i] = float64(c) / float64(total) * 100
		}
	}
	return dist
}
