package hnsw

// FilteredHNSWIndex wraps an HNSWIndex to restrict search results to a
// caller-supplied allow-list of ids, without confining graph traversal
// to that allow-list. Graph traversal confined to the allow-list would
// disconnect the layer-0 graph and break beam search; instead the
// allow-list is injected only into the result side of layer-0 beam
// search, exactly as hnswLayer.search already supports.
type FilteredHNSWIndex struct {
	*HNSWIndex
}

// NewFilteredHNSWIndex constructs an empty filtered index with the same
// construction contract as NewHNSWIndex.
func NewFilteredHNSWIndex(d int, metric Metric, cfg HNSWConfig, opts ...HNSWIndexOption) *FilteredHNSWIndex {
	return &FilteredHNSWIndex{HNSWIndex: NewHNSWIndex(d, metric, cfg, opts...)}
}

// SearchFiltered returns the k nearest ids to q among those present in
// valid. If valid is nil, behavior is identical to HNSWIndex.Search.
func (idx *FilteredHNSWIndex) SearchFiltered(q []float32, k int, valid map[int]bool) ([]float32, []int, error) {
	if len(q) != idx.d {
		return nil, nil, shapeErrorf("hnsw: query has %d columns, want %d", len(q), idx.d)
	}
	if !idx.isTrained {
		return []float32{}, []int{}, nil
	}

	distTo := func(id int) float32 { return idx.distanceTo(q, id) }

	ep := idx.ep
	for layer := idx.l; layer > 0; layer-- {
		found := idx.layers[layer].search(distTo, ep, 1, nil)
		if len(found) > 0 {
			ep = found[0].id
		}
	}

	ef := idx.config.EfSearch
	if k > ef {
		ef = k
	}
	if ef > idx.Ntotal() {
		ef = idx.Ntotal()
	}

	found := idx.layers[0].search(distTo, ep, ef, valid)
	return topK(found, k)
}
