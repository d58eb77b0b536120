// Package light implements phototactic sensing: reading the two LDR
// channels and normalizing them against a continuously widening
// auto-range, the way the vehicle's AnalogIn abstraction does on real
// hardware.
package light

// Sensor is a single analog channel, already scaled to [0,1] by the
// underlying ADC driver (see driver/ldr). It has no normalization of its
// own — that's this package's job.
type Sensor interface {
	Read() float64
}

// LightReading is a pair of normalized light levels, each in [0,1].
type LightReading struct {
	Left  float64
	Right float64
}

// Avg is the mean of the two channels, used by vehicle for reward
// computation.
func (r LightReading) Avg() float64 {
	return (r.Left + r.Right) / 2
}

// AutoRange is a running (min, max) pair per channel. The zero value is
// not usable directly; use NewAutoRange, which sets a deliberately
// degenerate, wider-than-possible starting range so the first real
// reading collapses it to a realistic one.
type AutoRange struct {
	MinLeft, MaxLeft   float64
	MinRight, MaxRight float64
}

// NewAutoRange returns an AutoRange with min=1.0, max=0.0 on both
// channels.
func NewAutoRange() AutoRange {
	return AutoRange{
		MinLeft: 1, MaxLeft: 0,
		MinRight: 1, MaxRight: 0,
	}
}

// Read takes one raw sample from each sensor, widens auto to include it,
// and returns the normalized reading. When a channel's range is
// degenerate (max == min, e.g. the first read or constant illumination)
// that channel's normalized value is defined as 0.0 — never NaN or Inf.
func Read(left, right Sensor, auto *AutoRange) LightReading {
	rawL := left.Read()
	rawR := right.Read()

	auto.MinLeft = min(auto.MinLeft, rawL)
	auto.MaxLeft = max(auto.MaxLeft, rawL)
	auto.MinRight = min(auto.MinRight, rawR)
	auto.MaxRight = max(auto.MaxRight, rawR)

	return LightReading{
		Left:  normalize(rawL, auto.MinLeft, auto.MaxLeft),
		Right: normalize(rawR, auto.MinRight, auto.MaxRight),
	}
}

func normalize(raw, lo, hi float64) float64 {
	span := hi - lo
	if span == 0 {
		return 0
	}
	return (raw - lo) / span
}
