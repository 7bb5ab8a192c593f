package hnsw

import (
	"math/rand"

	"go.uber.org/zap"
)

// nopLogger returns the default no-op logger used by indexes that
// weren't given a WithLogger option.
func nopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// defaultRNG returns the default fixed-seed RNG that drives level
// assignment for indexes built without WithSeed and for indexes
// reconstructed from a persisted blob (used by any further Add).
func defaultRNG() *rand.Rand {
	return rand.New(rand.NewSource(0))
}
