package dungeon

import "math/rand"

// RandomSource draws uniform integers from an inclusive range.
type RandomSource interface {
	Range(min, max int) int
}

// Random is a seeded RandomSource. The same seed replays the same layouts,
// and regenerations keep drawing from one stream.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a source seeded with seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Range returns a value in [min, max].
func (r *Random) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min+1)
}
