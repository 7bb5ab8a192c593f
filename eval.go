package hnsw

// RecallAtK computes Recall@k: the fraction of queries for which the
// true nearest id (truth[i]) appears among the first k ids returned for
// that query in predicted[i]. Both slices must have the same length,
// one entry per query.
func RecallAtK(truth []int, predicted [][]int, k int) float64 {
	if len(truth) == 0 {
		return 0
	}
	hits := 0
	for i, want := range truth {
		row := predicted[i]
		if k < len(row) {
			row = row[:k]
		}
		for _, got := range row {
			if got == want {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(truth))
}
