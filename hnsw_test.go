package hnsw

import (
	"math/rand"
	"testing"
)

// TestHNSWSelfSearchSmall mirrors the literal scenario: a small HNSW
// built over 10 random 2-D vectors finds each inserted vector as its
// own nearest neighbor.
func TestHNSWSelfSearchSmall(t *testing.T) {
	cfg, err := NewHNSWConfig(WithM(3), WithEfConstruction(32))
	if err != nil {
		t.Fatalf("NewHNSWConfig: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	X := make([][]float32, 10)
	for i := range X {
		X[i] = randomVector(2, rng)
	}

	idx := NewHNSWIndex(2, L2, cfg, WithSeed(42))
	if err := idx.Add(X); err != nil {
		t.Fatalf("Add: %v", err)
	}

	for i, v := range X {
		_, ids, err := idx.Search(v, 1)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(ids) != 1 || ids[0] != i {
			t.Errorf("search(v_%d, 1) = %v, want [%d]", i, ids, i)
		}
	}
}

func TestHNSWCounts(t *testing.T) {
	cfg := DefaultHNSWConfig()
	idx := NewHNSWIndex(4, Cosine, cfg)

	rng := rand.New(rand.NewSource(1))
	n, m := 20, 15
	A := make([][]float32, n)
	for i := range A {
		A[i] = randomVector(4, rng)
	}
	B := make([][]float32, m)
	for i := range B {
		B[i] = randomVector(4, rng)
	}

	if err := idx.Add(A); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := idx.Add(B); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if idx.Ntotal() != n+m {
		t.Errorf("Ntotal = %d, want %d", idx.Ntotal(), n+m)
	}
}

func TestHNSWSearchShape(t *testing.T) {
	cfg := DefaultHNSWConfig()
	idx := NewHNSWIndex(8, L2, cfg)

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 30; i++ {
		if err := idx.Add([][]float32{randomVector(8, rng)}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	dists, ids, err := idx.Search(randomVector(8, rng), 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(dists) != 5 || len(ids) != 5 {
		t.Fatalf("search(k=5) returned %d distances, %d ids, want 5 each", len(dists), len(ids))
	}
}

func TestHNSWSearchUntrainedReturnsEmpty(t *testing.T) {
	idx := NewHNSWIndex(4, Cosine, DefaultHNSWConfig())
	dists, ids, err := idx.Search([]float32{1, 0, 0, 0}, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(dists) != 0 || len(ids) != 0 {
		t.Errorf("untrained search returned non-empty result: %v %v", dists, ids)
	}
}

// TestHNSWLayerInvariants checks that after a batch of inserts, every
// layer's vertex set is a subset of the layer below, every vertex's
// degree stays within its configured cap, and every edge is mirrored.
func TestHNSWLayerInvariants(t *testing.T) {
	cfg, err := NewHNSWConfig(WithM(8), WithEfConstruction(32))
	if err != nil {
		t.Fatalf("NewHNSWConfig: %v", err)
	}
	idx := NewHNSWIndex(16, L2, cfg, WithSeed(9))

	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 300; i++ {
		if err := idx.Add([][]float32{randomVector(16, rng)}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	for l := 1; l < len(idx.layers); l++ {
		for id := range idx.layers[l].adj {
			if !idx.layers[l-1].has(id) {
				t.Fatalf("layer %d has vertex %d not present in layer %d", l, id, l-1)
			}
		}
	}

	for l, layer := range idx.layers {
		degCap := cfg.MMax
		if l == 0 {
			degCap = cfg.MMax0
		}
		for id, neighbors := range layer.adj {
			if len(neighbors) > degCap {
				t.Errorf("layer %d vertex %d has degree %d, want <= %d", l, id, len(neighbors), degCap)
			}
			for other, dist := range neighbors {
				back, ok := layer.adj[other][id]
				if !ok {
					t.Errorf("layer %d: edge %d->%d has no mirrored back-edge", l, id, other)
					continue
				}
				if back != dist {
					t.Errorf("layer %d: edge %d<->%d weights disagree: %v vs %v", l, id, other, dist, back)
				}
			}
		}
	}
}

// TestHNSWDeterminism checks that two indexes built with the same seed
// and insertion order return identical results for the same query.
func TestHNSWDeterminism(t *testing.T) {
	cfg := DefaultHNSWConfig()
	rng := rand.New(rand.NewSource(123))
	X := make([][]float32, 50)
	for i := range X {
		X[i] = randomVector(10, rng)
	}
	q := randomVector(10, rng)

	idx1 := NewHNSWIndex(10, Cosine, cfg, WithSeed(55))
	idx2 := NewHNSWIndex(10, Cosine, cfg, WithSeed(55))
	if err := idx1.Add(X); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := idx2.Add(X); err != nil {
		t.Fatalf("Add: %v", err)
	}

	d1, ids1, err := idx1.Search(q, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	d2, ids2, err := idx2.Search(q, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	for i := range ids1 {
		if ids1[i] != ids2[i] || d1[i] != d2[i] {
			t.Fatalf("non-deterministic results: %v/%v vs %v/%v", ids1, d1, ids2, d2)
		}
	}
}

func TestHNSWShapeMismatch(t *testing.T) {
	idx := NewHNSWIndex(4, Cosine, DefaultHNSWConfig())
	err := idx.Add([][]float32{{1, 2, 3}})
	if err == nil {
		t.Fatal("expected ErrInvalidShape, got nil")
	}
	if idx.Ntotal() != 0 {
		t.Errorf("Ntotal = %d after failed Add, want 0", idx.Ntotal())
	}
}
