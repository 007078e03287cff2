package timer

import (
	"fmt"
	"math"
)

// RGB is an urgency color. Components are in [0,255]; blue is always zero.
type RGB struct {
	R float64
	G float64
	B float64
}

var (
	colorBlack = RGB{}
	colorRed   = RGB{R: 255}
)

// ColorFor maps the remaining share of the talk to an urgency color.
//
// The first half of elapsed time ramps black to yellow (red and green rise
// together); the second half holds red at 255 and drains green, passing
// through orange to pure red at zero remaining.
func ColorFor(remainingSeconds, totalSeconds float64) RGB {
	if totalSeconds <= 0 {
		return colorRed
	}
	percent := remainingSeconds / totalSeconds
	inverse := 1 - percent
	if inverse < 0.5 {
		v := clampChannel(inverse * 255 * 2)
		return RGB{R: v, G: v}
	}
	return RGB{R: 255, G: clampChannel(percent * 2 * 255)}
}

func clampChannel(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// String renders the color as a CSS-style rgb() triple with two decimals.
// Blue is never used and prints as a bare 0.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%.2f, %.2f, 0)", c.R, c.G)
}

// Hex renders the color as #rrggbb, rounding each channel.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

func channelByte(v float64) uint8 {
	return uint8(math.Round(clampChannel(v)))
}
