package vehicle

import "math/rand/v2"

// pcgRNG adapts math/rand/v2's PCG source to the narrow RNG interface
// this package consumes.
type pcgRNG struct {
	r *rand.Rand
}

// NewRNG returns an RNG seeded from a single 16-bit entropy reading
// taken once at boot. The same seed value is fed into both halves of
// the PCG state; math/rand/v2's generator fully mixes the seed, so
// there is no value in sourcing two independent halves from one
// 16-bit reading.
func NewRNG(seed16 uint16) RNG {
	s := uint64(seed16)
	return &pcgRNG{r: rand.New(rand.NewPCG(s, s))}
}

func (p *pcgRNG) NextUnitFloat() float64 {
	return p.r.Float64()
}
