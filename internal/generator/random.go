package generator

// Seed initialises the catalog sequence.
const Seed int64 = 1962

const (
	lcgMultiplier int64 = 9301
	lcgIncrement  int64 = 49297
	lcgModulus    int64 = 233280
)

// Random is a small linear-congruential generator. It is not safe for concurrent use.
type Random struct {
	state int64
}

// NewRandom returns a generator seeded with seed.
func NewRandom(seed int64) *Random {
	return &Random{state: seed}
}

// Next advances the sequence and returns a value in [0, 1).
func (r *Random) Next() float64 {
	r.state = (r.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(r.state) / float64(lcgModulus)
}

// Intn returns floor(Next() * n).
func (r *Random) Intn(n int) int {
	return int(r.Next() * float64(n))
}
