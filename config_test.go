package hnsw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHNSWConfig(t *testing.T) {
	cfg := DefaultHNSWConfig()
	assert.Equal(t, 16, cfg.M)
	assert.Equal(t, 16, cfg.MMax)
	assert.Equal(t, 32, cfg.MMax0)
	assert.Equal(t, 32, cfg.EfConstruction)
	assert.Equal(t, 32, cfg.EfSearch)
	assert.Equal(t, SelectSimple, cfg.Neighbors)
}

func TestNewHNSWConfigRejectsSmallM(t *testing.T) {
	_, err := NewHNSWConfig(WithM(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewHNSWConfigRejectsLowEfConstruction(t *testing.T) {
	_, err := NewHNSWConfig(WithM(16), WithEfConstruction(4))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewHNSWConfigRejectsNonPositiveML(t *testing.T) {
	_, err := NewHNSWConfig(WithML(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWithMDerivesRelatedFields(t *testing.T) {
	cfg, err := NewHNSWConfig(WithM(8))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MMax)
	assert.Equal(t, 16, cfg.MMax0)
}

func TestNewHNSWConfigAcceptsHeuristicOptions(t *testing.T) {
	cfg, err := NewHNSWConfig(
		WithNeighborSelector(SelectHeuristic),
		WithExtendCandidates(true),
		WithKeepPrunedConnections(false),
	)
	require.NoError(t, err)
	assert.Equal(t, SelectHeuristic, cfg.Neighbors)
	assert.True(t, cfg.ExtendCandidates)
	assert.False(t, cfg.KeepPrunedConnections)
}
