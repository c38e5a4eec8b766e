package vision

import (
	"time"

	"github.com/chewxy/math32"
)

const (
	fadeInEnd    = 0.10
	fadeOutStart = 0.85
)

// Envelope is the session intensity multiplier: a linear ramp over the first
// 10% of duration, a hold at 1, and a linear fall over the last 15%.
func Envelope(elapsed, duration time.Duration) float32 {
	if duration <= 0 {
		return 0
	}
	p := float32(elapsed) / float32(duration)
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return 0
	case p < fadeInEnd:
		return p / fadeInEnd
	case p > fadeOutStart:
		return (1 - p) / (1 - fadeOutStart)
	}
	return 1
}

// Pulse oscillates in [0.4, 1.0] and drives the chrome border.
func Pulse(elapsed time.Duration) float32 {
	ms := float32(elapsed.Milliseconds())
	return 0.7 + 0.3*math32.Sin(ms*0.005)
}
