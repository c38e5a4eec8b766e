package engine3D

import (
	"math"
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TimeOfDay is the fraction of the wall-clock day elapsed at t.
func TimeOfDay(t time.Time) float64 {
	hour, minute, second := t.Clock()
	millisecond := t.Nanosecond() / 1e6
	return (float64(hour*3600+minute*60+second) + float64(millisecond)/1000.0) / 86400.0
}

// DayCycle drives the sky colour. With MinutesPerDay set a full day passes
// in that many real minutes from Start; otherwise it follows the wall clock.
type DayCycle struct {
	MinutesPerDay float64
	Start         time.Time
	// Offset shifts the accelerated cycle so it can start mid-morning.
	Offset float64
}

func (d DayCycle) Fraction(now time.Time) float64 {
	if d.MinutesPerDay <= 0 {
		return TimeOfDay(now)
	}
	days := now.Sub(d.Start).Minutes() / d.MinutesPerDay
	f := math.Mod(days+d.Offset, 1)
	if f < 0 {
		f++
	}
	return f
}

type skyKey struct {
	at    float32
	color rl.Color
}

var skyKeys = []skyKey{
	{0.00, rl.NewColor(8, 10, 24, 255)},
	{0.25, rl.NewColor(230, 130, 80, 255)},
	{0.50, rl.NewColor(120, 170, 230, 255)},
	{0.75, rl.NewColor(150, 80, 140, 255)},
	{1.00, rl.NewColor(8, 10, 24, 255)},
}

// SkyColor interpolates the sky keyframes at a day fraction.
func SkyColor(fraction float64) rl.Color {
	f := float32(fraction) - math32.Floor(float32(fraction))
	for i := 1; i < len(skyKeys); i++ {
		a, b := skyKeys[i-1], skyKeys[i]
		if f > b.at {
			continue
		}
		t := (f - a.at) / (b.at - a.at)
		return rl.NewColor(
			lerp8(a.color.R, b.color.R, t),
			lerp8(a.color.G, b.color.G, t),
			lerp8(a.color.B, b.color.B, t),
			255,
		)
	}
	return skyKeys[0].color
}

// SunHeight is the sine of the sun's elevation, peaking at noon.
func SunHeight(fraction float64) float32 {
	return -math32.Cos(float32(fraction) * 2 * math32.Pi)
}

func lerp8(a, b uint8, t float32) uint8 {
	return uint8(math32.Round(float32(a) + (float32(b)-float32(a))*t))
}
