// Package export turns an aggregated dataset into a feature file: class
// balancing for training sets, then tabular serialization.
package export

// Balancer evens the class distribution of a dataset. Implementations may
// add or remove entries; the returned parallel slices replace the dataset
// wholesale.
type Balancer interface {
	Balance(values [][]float64, labels []string) ([][]float64, []string)
}

// Downsampler balances by keeping, per class, only the first n entries in
// original order, where n is the size of the smallest class. Deterministic:
// the same input always yields the same output.
type Downsampler struct{}

// Balance trims every class to the minority class size.
func (Downsampler) Balance(values [][]float64, labels []string) ([][]float64, []string) {
	if len(labels) == 0 {
		return values, labels
	}

	counts := make(map[string]int)
	for _, label := range labels {
		counts[label]++
	}
	limit := -1
	for _, c := range counts {
		if limit < 0 || c < limit {
			limit = c
		}
	}

	kept := make(map[string]int, len(counts))
	outValues := make([][]float64, 0, limit*len(counts))
	outLabels := make([]string, 0, limit*len(counts))
	for i, label := range labels {
		if kept[label] >= limit {
			continue
		}
		kept[label]++
		outValues = append(outValues, values[i])
		outLabels = append(outLabels, label)
	}
	return outValues, outLabels
}
