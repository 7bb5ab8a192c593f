package hnsw

import "sort"

// BruteForceIndex answers nearest-neighbor queries exactly via a full
// distance matrix and argsort. It exists as a recall oracle for the
// approximate HNSW index, not as a scalable search path: every query is
// O(ntotal).
type BruteForceIndex struct {
	baseIndex
}

// NewBruteForceIndex constructs an empty exact index over d-dimensional
// vectors under the given distance metric.
func NewBruteForceIndex(d int, metric Metric) *BruteForceIndex {
	return &BruteForceIndex{baseIndex: newBaseIndex(d, metric)}
}

// Add appends V (n×d) to the index. Fails with ErrInvalidShape if any
// row has the wrong number of columns.
func (idx *BruteForceIndex) Add(V [][]float32) error {
	_, err := idx.addRows(V)
	return err
}

// Search returns, for each query row in Q, the k nearest stored ids and
// their distances, ascending by distance with ties broken by ascending
// id. If the index is untrained, returns a result with one empty row
// per query.
func (idx *BruteForceIndex) Search(Q [][]float32, k int) ([][]float32, [][]int, error) {
	for i, row := range Q {
		if len(row) != idx.d {
			return nil, nil, shapeErrorf("hnsw: query row %d has %d columns, want %d", i, len(row), idx.d)
		}
	}

	dists := make([][]float32, len(Q))
	ids := make([][]int, len(Q))

	if !idx.isTrained {
		for i := range Q {
			dists[i] = []float32{}
			ids[i] = []int{}
		}
		return dists, ids, nil
	}

	kk := k
	if kk > len(idx.vectors) {
		kk = len(idx.vectors)
	}

	for i, q := range Q {
		row := make([]candidate, len(idx.vectors))
		for id, v := range idx.vectors {
			row[id] = candidate{idx.metric.rowDistance(q, v), id}
		}
		sort.Slice(row, func(a, b int) bool {
			if row[a].dist != row[b].dist {
				return row[a].dist < row[b].dist
			}
			return row[a].id < row[b].id
		})
		row = row[:kk]

		d := make([]float32, kk)
		id := make([]int, kk)
		for j, c := range row {
			d[j] = c.dist
			id[j] = c.id
		}
		dists[i] = d
		ids[i] = id
	}

	return dists, ids, nil
}

// SearchOne is a single-query convenience wrapper over Search.
func (idx *BruteForceIndex) SearchOne(q []float32, k int) ([]float32, []int, error) {
	d, id, err := idx.Search([][]float32{q}, k)
	if err != nil {
		return nil, nil, err
	}
	return d[0], id[0], nil
}
