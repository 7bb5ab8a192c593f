package hnsw

import (
	"github.com/chewxy/math32"
	"github.com/viterin/vek/vek32"
)

// Metric names the distance function an index uses. Smaller values are
// always closer under every metric: cosine distance is 1 minus cosine
// similarity, L2 is the Euclidean norm of the difference, and
// inner-product distance is 1 minus the raw dot product.
type Metric int

const (
	// Cosine distance: 1 - cosine_similarity(a, b), computed over
	// L2-normalized vectors.
	Cosine Metric = iota
	// L2 distance: the Euclidean norm of (a - b).
	L2
	// InnerProduct distance: 1 - dot(a, b), on raw (non-normalized)
	// vectors.
	InnerProduct
)

// String implements fmt.Stringer.
func (m Metric) String() string {
	switch m {
	case Cosine:
		return "cosine"
	case L2:
		return "l2"
	case InnerProduct:
		return "inner_product"
	default:
		return "unknown"
	}
}

// rowDistance returns the single-pair distance kernel for m. Every
// kernel is built on vek32.Dot, the SIMD-friendly dot-product primitive
// vek32 provides, rather than hand-rolled summation loops.
func (m Metric) rowDistance(a, b []float32) float32 {
	switch m {
	case Cosine:
		return cosineDistance(a, b)
	case L2:
		return l2Distance(a, b)
	case InnerProduct:
		return 1 - vek32.Dot(a, b)
	default:
		return cosineDistance(a, b)
	}
}

// cosineDistance is 1 minus cosine similarity, computed from raw dot
// products so callers need not pre-normalize their vectors.
func cosineDistance(a, b []float32) float32 {
	dot := vek32.Dot(a, b)
	normA := math32.Sqrt(vek32.Dot(a, a))
	normB := math32.Sqrt(vek32.Dot(b, b))
	if normA == 0 || normB == 0 {
		return 1
	}
	sim := dot / (normA * normB)
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return 1 - sim
}

// l2Distance is the Euclidean norm of (a - b), expanded as
// dot(a,a) - 2*dot(a,b) + dot(b,b) so it reuses the same vek32.Dot
// kernel as every other metric instead of a manual difference loop.
func l2Distance(a, b []float32) float32 {
	sq := vek32.Dot(a, a) - 2*vek32.Dot(a, b) + vek32.Dot(b, b)
	if sq < 0 {
		sq = 0
	}
	return math32.Sqrt(sq)
}

// RowDistance computes the distance between two single vectors under m.
// Returns ErrInvalidShape if a and b disagree on length.
func RowDistance(m Metric, a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, shapeErrorf("hnsw: distance operands have lengths %d and %d", len(a), len(b))
	}
	return m.rowDistance(a, b), nil
}

// Distance computes the n×m distance matrix between A (n×d) and B (m×d)
// under metric. Row i, column j of the result is the distance between
// A[i] and B[j]; smaller is closer. Fails with ErrInvalidShape if A and B
// disagree on inner dimension d, or if any row within A or within B has a
// different length than its siblings.
func Distance(metric Metric, A, B [][]float32) ([][]float32, error) {
	d, err := commonDim(A, B)
	if err != nil {
		return nil, err
	}
	_ = d

	out := make([][]float32, len(A))
	for i, a := range A {
		row := make([]float32, len(B))
		for j, b := range B {
			row[j] = metric.rowDistance(a, b)
		}
		out[i] = row
	}
	return out, nil
}

// commonDim validates that every row of A and every row of B share one
// common length, and returns it. An empty A or B is allowed (yielding a
// zero-dimension result in that axis) but mixed row lengths within a
// single matrix are a shape error, as is inner-dimension disagreement
// between a non-empty A and a non-empty B.
func commonDim(A, B [][]float32) (int, error) {
	d := -1
	for _, row := range A {
		if d == -1 {
			d = len(row)
		} else if len(row) != d {
			return 0, shapeErrorf("hnsw: ragged matrix: row has %d columns, want %d", len(row), d)
		}
	}
	for _, row := range B {
		if d == -1 {
			d = len(row)
		} else if len(row) != d {
			return 0, shapeErrorf("hnsw: inner dimension mismatch: row has %d columns, want %d", len(row), d)
		}
	}
	if d == -1 {
		d = 0
	}
	return d, nil
}

// Normalize scales v to unit L2 norm in place and returns it. A
// zero-length vector (all-zero) is returned unchanged rather than
// dividing by zero. The norm itself is computed via math32 so that
// normalizing float32 vectors never round-trips through float64.
func Normalize(v []float32) []float32 {
	var sumSq float32
	for _, x := range v {
		sumSq += x * x
	}
	if sumSq == 0 {
		return v
	}
	norm := math32.Sqrt(sumSq)
	for i := range v {
		v[i] /= norm
	}
	return v
}

// NormalizeCopy returns a normalized copy of v, leaving v untouched.
func NormalizeCopy(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return Normalize(out)
}
