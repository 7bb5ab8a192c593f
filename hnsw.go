package hnsw

import (
	"math"
	"math/rand"

	"go.uber.org/zap"
)

// HNSWIndex is an approximate nearest-neighbor index backed by a
// Hierarchical Navigable Small World graph: a stack of layers of
// decreasing density, with the densest (layer 0) containing every
// inserted vector.
type HNSWIndex struct {
	baseIndex

	config HNSWConfig
	layers []*hnswLayer
	l      int // current top layer index
	ep     int // current entry-point id
	rng    *rand.Rand
	log    *zap.SugaredLogger
}

// HNSWIndexOption configures construction-only aspects of an HNSWIndex
// that are not part of HNSWConfig (currently just logging and the RNG
// seed).
type HNSWIndexOption func(*HNSWIndex)

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(log *zap.SugaredLogger) HNSWIndexOption {
	return func(idx *HNSWIndex) { idx.log = log }
}

// WithSeed fixes the RNG driving probabilistic level assignment, making
// builds reproducible. Defaults to a fixed seed so that two indexes
// built without an explicit seed still assign identical levels given
// identical insertion order.
func WithSeed(seed int64) HNSWIndexOption {
	return func(idx *HNSWIndex) { idx.rng = rand.New(rand.NewSource(seed)) }
}

// NewHNSWIndex constructs an empty index over d-dimensional vectors
// under the given distance metric and configuration.
func NewHNSWIndex(d int, metric Metric, cfg HNSWConfig, opts ...HNSWIndexOption) *HNSWIndex {
	idx := &HNSWIndex{
		baseIndex: newBaseIndex(d, metric),
		config:    cfg,
		l:         0,
		ep:        0,
		rng:       defaultRNG(),
		log:       nopLogger(),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// assignLevel draws a probabilistic layer assignment: floor(-ln(u) * m_L)
// for u ~ Uniform(0,1), which makes layer membership geometrically
// distributed with P(layer >= l) = e^(-l/m_L).
func (idx *HNSWIndex) assignLevel() int {
	u := idx.rng.Float64()
	for u == 0 {
		u = idx.rng.Float64()
	}
	return int(math.Floor(-math.Log(u) * idx.config.ML))
}

func (idx *HNSWIndex) pairDistance(a, b int) float32 {
	return idx.distanceBetween(a, b)
}

// Add appends V (n×d) to the index, inserting each row into the graph
// in order. Fails with ErrInvalidShape if any row has the wrong number
// of columns; in that case no row from V is added.
func (idx *HNSWIndex) Add(V [][]float32) error {
	for i, row := range V {
		if len(row) != idx.d {
			return shapeErrorf("hnsw: row %d has %d columns, want %d", i, len(row), idx.d)
		}
	}
	for _, row := range V {
		idx.insertOne(row)
	}
	return nil
}

// insertOne runs the full multi-layer insertion protocol for a single
// new vector: greedy single-width descent from the current top layer
// down to just above the new node's assigned level, then full
// construction-width inserts from there down to layer 0.
func (idx *HNSWIndex) insertOne(q []float32) {
	newID := len(idx.vectors)
	idx.vectors = append(idx.vectors, q)
	idx.isTrained = true

	level := idx.assignLevel()
	distTo := func(id int) float32 { return idx.distanceTo(q, id) }

	if len(idx.layers) == 0 {
		idx.layers = append(idx.layers, newHNSWLayer(idx.config.MMax0))
		idx.layers[0].addNode(newID)
		idx.l = level
		idx.ep = newID
		for i := 1; i <= level; i++ {
			nl := newHNSWLayer(idx.config.MMax)
			nl.addNode(newID)
			idx.layers = append(idx.layers, nl)
		}
		idx.log.Debugw("bootstrapped index with first vector", "id", newID, "level", level)
		return
	}

	ep := idx.ep
	for layer := idx.l; layer > level; layer-- {
		found := idx.layers[layer].search(distTo, ep, 1, nil)
		if len(found) > 0 {
			ep = found[0].id
		}
	}

	top := idx.l
	if level < top {
		top = level
	}
	for layer := top; layer >= 0; layer-- {
		idx.layers[layer].insert(idx.config, distTo, idx.pairDistance, newID, ep)
	}

	if level > idx.l {
		for i := idx.l + 1; i <= level; i++ {
			nl := newHNSWLayer(idx.config.MMax)
			nl.addNode(newID)
			idx.layers = append(idx.layers, nl)
		}
		idx.l = level
		idx.ep = newID
		idx.log.Debugw("promoted entry point", "id", newID, "level", level)
	}
}

// Search returns the k nearest ids to q and their distances, ascending.
// If the index is untrained (no vectors added yet), returns empty
// slices rather than an error.
func (idx *HNSWIndex) Search(q []float32, k int) ([]float32, []int, error) {
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

	found := idx.layers[0].search(distTo, ep, ef, nil)
	return topK(found, k)
}

// topK truncates an ascending-sorted candidate slice to k entries and
// splits it into parallel distance/id slices.
func topK(found []candidate, k int) ([]float32, []int, error) {
	if k < len(found) {
		found = found[:k]
	}
	dists := make([]float32, len(found))
	ids := make([]int, len(found))
	for i, c := range found {
		dists[i] = c.dist
		ids[i] = c.id
	}
	return dists, ids, nil
}
