package hnsw

import "math"

// NeighborSelector names the strategy hnswLayer.insert uses to cut a
// beam-search candidate list down to size. See HNSWConfig.
type NeighborSelector int

const (
	// SelectSimple keeps the M closest candidates by distance.
	SelectSimple NeighborSelector = iota
	// SelectHeuristic admits a candidate only if it is closer to the
	// query than to every already-admitted neighbor, which tends to
	// produce better-connected graphs on clustered data.
	SelectHeuristic
)

// HNSWConfig holds the construction- and query-time parameters of an
// HNSWIndex. It is immutable once built by NewHNSWConfig; an index keeps
// its own copy for its lifetime.
type HNSWConfig struct {
	// M is the target out-degree per node for layers >= 1.
	M int
	// MMax is the hard out-degree cap for layers >= 1.
	MMax int
	// MMax0 is the hard out-degree cap for layer 0 (conventionally 2*M).
	MMax0 int
	// ML is the level-assignment scale factor, conventionally 1/ln(M).
	ML float64
	// EfConstruction is the beam width used while inserting.
	EfConstruction int
	// EfSearch is the beam width used at layer 0 during a query.
	EfSearch int
	// Neighbors selects the neighbor-selection strategy.
	Neighbors NeighborSelector
	// ExtendCandidates widens the heuristic selector's candidate pool
	// with neighbors-of-neighbors before it runs. Ignored under
	// SelectSimple.
	ExtendCandidates bool
	// KeepPrunedConnections backfills the heuristic selector's result
	// from its rejected pool until M members are reached. Ignored under
	// SelectSimple. Independently configurable from ExtendCandidates.
	KeepPrunedConnections bool
}

// HNSWConfigOption configures an HNSWConfig under construction.
type HNSWConfigOption func(*HNSWConfig)

// WithM sets the per-layer target out-degree and, following convention,
// derives MMax = M, MMax0 = 2*M, and ML = 1/ln(M). Apply WithMMax,
// WithMMax0, or WithML afterward to override any of those derived
// values.
func WithM(m int) HNSWConfigOption {
	return func(c *HNSWConfig) {
		c.M = m
		c.MMax = m
		c.MMax0 = m * 2
		if m > 1 {
			c.ML = 1.0 / math.Log(float64(m))
		}
	}
}

// WithMMax overrides the out-degree cap for layers >= 1.
func WithMMax(mMax int) HNSWConfigOption {
	return func(c *HNSWConfig) { c.MMax = mMax }
}

// WithMMax0 overrides the out-degree cap for layer 0.
func WithMMax0(mMax0 int) HNSWConfigOption {
	return func(c *HNSWConfig) { c.MMax0 = mMax0 }
}

// WithML overrides the level-assignment scale factor.
func WithML(ml float64) HNSWConfigOption {
	return func(c *HNSWConfig) { c.ML = ml }
}

// WithEfConstruction sets the beam width used while inserting.
func WithEfConstruction(ef int) HNSWConfigOption {
	return func(c *HNSWConfig) { c.EfConstruction = ef }
}

// WithEfSearch sets the beam width used at layer 0 during a query.
func WithEfSearch(ef int) HNSWConfigOption {
	return func(c *HNSWConfig) { c.EfSearch = ef }
}

// WithNeighborSelector chooses between SelectSimple and SelectHeuristic.
func WithNeighborSelector(s NeighborSelector) HNSWConfigOption {
	return func(c *HNSWConfig) { c.Neighbors = s }
}

// WithExtendCandidates toggles the heuristic selector's
// neighbors-of-neighbors seeding.
func WithExtendCandidates(enabled bool) HNSWConfigOption {
	return func(c *HNSWConfig) { c.ExtendCandidates = enabled }
}

// WithKeepPrunedConnections toggles backfilling the heuristic selector's
// result from its rejected pool.
func WithKeepPrunedConnections(enabled bool) HNSWConfigOption {
	return func(c *HNSWConfig) { c.KeepPrunedConnections = enabled }
}

// DefaultHNSWConfig returns the package's default tuning: M=16, MMax=16,
// MMax0=32, ML=1/ln(16), EfConstruction=32, EfSearch=32, simple neighbor
// selection with pruned connections kept.
func DefaultHNSWConfig() HNSWConfig {
	return HNSWConfig{
		M:                     16,
		MMax:                  16,
		MMax0:                 32,
		ML:                    1.0 / math.Log(16),
		EfConstruction:        32,
		EfSearch:              32,
		Neighbors:             SelectSimple,
		ExtendCandidates:      false,
		KeepPrunedConnections: true,
	}
}

// NewHNSWConfig builds an HNSWConfig from DefaultHNSWConfig plus opts,
// validating the result. Fails with ErrInvalidConfig if M < 2,
// EfConstruction < M, or ML <= 0.
func NewHNSWConfig(opts ...HNSWConfigOption) (HNSWConfig, error) {
	cfg := DefaultHNSWConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.M < 2 {
		return HNSWConfig{}, configErrorf("hnsw: M must be >= 2, got %d", cfg.M)
	}
	if cfg.EfConstruction < cfg.M {
		return HNSWConfig{}, configErrorf("hnsw: EfConstruction (%d) must be >= M (%d)", cfg.EfConstruction, cfg.M)
	}
	if cfg.ML <= 0 {
		return HNSWConfig{}, configErrorf("hnsw: ML must be > 0, got %v", cfg.ML)
	}

	return cfg, nil
}
