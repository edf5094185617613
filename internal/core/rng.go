package core

// RNG is a small deterministic generator so that a seed fully determines a run.
type RNG struct {
	state uint64
}

// NewRNG creates a new generator with the given seed.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &RNG{state: s}
}

// Next generates the next random uint64.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 11) % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Range returns a random float64 in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Jitter returns base shifted by a random amount in [-spread, spread).
func (r *RNG) Jitter(base, spread float64) float64 {
	return base + r.Range(-spread, spread)
}

// State returns the generator state, used by snapshots.
func (r *RNG) State() uint64 {
	return r.state
}
