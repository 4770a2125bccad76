package backoff

import (
	"math"
	"math/rand/v2"
	"time"
)

// Backoff computes exponential delays between Min and Max.
type Backoff struct {
	Min    time.Duration
	Max    time.Duration
	Factor float64
	Jitter bool
}

func New(min, max time.Duration, factor float64) *Backoff {
	return &Backoff{
		Min:    min,
		Max:    max,
		Factor: factor,
		Jitter: true,
	}
}

// Duration returns the delay before retry number attempt (starting at 1).
// With jitter the delay lies in [d/2, d].
func (b *Backoff) Duration(attempt int) time.Duration {
	if attempt <= 1 {
		return b.jitter(float64(b.Min))
	}

	d := float64(b.Min) * math.Pow(b.Factor, float64(attempt-1))
	if d > float64(b.Max) || math.IsInf(d, 1) {
		d = float64(b.Max)
	}
	return b.jitter(d)
}

func (b *Backoff) jitter(d float64) time.Duration {
	if b.Jitter {
		d *= 0.5 + rand.Float64()*0.5
	}
	return time.Duration(d)
}
