package hnsw

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomVector(dims int, rng *rand.Rand) []float32 {
	v := make([]float32, dims)
	for i := range v {
		v[i] = rng.Float32()*2 - 1
	}
	return v
}

func TestRowDistanceCosineSelfSimilarity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	v := NormalizeCopy(randomVector(32, rng))

	d, err := RowDistance(Cosine, v, v)
	require.NoError(t, err)
	assert.InDelta(t, 0, d, 1e-5)
}

func TestRowDistanceShapeMismatch(t *testing.T) {
	_, err := RowDistance(Cosine, []float32{1, 2, 3}, []float32{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestDistanceMatrixShape(t *testing.T) {
	A := [][]float32{{1, 0}, {0, 1}}
	B := [][]float32{{1, 0}, {0, 1}, {1, 1}}

	out, err := Distance(L2, A, B)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if len(out) != 2 || len(out[0]) != 3 {
		t.Fatalf("got shape %dx%d, want 2x3", len(out), len(out[0]))
	}
	if out[0][0] != 0 {
		t.Errorf("A[0] == B[0], want distance 0, got %v", out[0][0])
	}
}

func TestDistanceRaggedShape(t *testing.T) {
	A := [][]float32{{1, 0}, {0, 1, 1}}
	_, err := Distance(L2, A, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestNormalizeZeroVector(t *testing.T) {
	v := []float32{0, 0, 0}
	got := Normalize(v)
	for _, x := range got {
		if x != 0 {
			t.Errorf("Normalize(zero) = %v, want all-zero", got)
		}
	}
}

func TestNormalizeCopyLeavesOriginal(t *testing.T) {
	v := []float32{3, 4}
	out := NormalizeCopy(v)
	if v[0] != 3 || v[1] != 4 {
		t.Errorf("NormalizeCopy mutated input: %v", v)
	}
	if math.Abs(float64(out[0]*out[0]+out[1]*out[1])-1) > 1e-5 {
		t.Errorf("NormalizeCopy result not unit norm: %v", out)
	}
}
