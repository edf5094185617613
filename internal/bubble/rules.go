// Package bubble implements the color bubbles the drone collects: their asset
// catalog, their lifecycle from floating to attached to released, and the
// effect each color has when it touches something.
package bubble

import (
	"strings"
	"time"

	"github.com/vovakirdan/bubble-drone/internal/core"
)

// Type is the color of a bubble and selects its effect.
type Type int

const (
	None Type = iota
	Red
	Yellow
	Orange
	Green
)

// Types lists every color, effect colors first.
var Types = []Type{Red, Yellow, Orange, Green, None}

// String returns the asset name of the color. Unknown values map to "None".
func (t Type) String() string {
	switch t {
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	case Orange:
		return "Orange"
	case Green:
		return "Green"
	default:
		return "None"
	}
}

// ParseType parses a color name case-insensitively.
func ParseType(s string) (Type, bool) {
	for _, t := range Types {
		if strings.EqualFold(s, t.String()) {
			return t, true
		}
	}
	return None, false
}

// Mode is how a bubble moves.
type Mode int

const (
	Float   Mode = iota // drifting on its own path
	Combine             // stuck to the drone
)

// String returns the asset name of the mode.
func (m Mode) String() string {
	if m == Combine {
		return "Combine"
	}
	return "Float"
}

const assetRoot = "Prefabs/Bubble/"

// AssetKey returns the pool kind for a color and mode,
// e.g. "Prefabs/Bubble/Combine/RedCombine".
func AssetKey(t Type, m Mode) string {
	return assetRoot + m.String() + "/" + t.String() + m.String()
}

// FloatKey is AssetKey(t, Float).
func FloatKey(t Type) string { return AssetKey(t, Float) }

// CombineKey is AssetKey(t, Combine).
func CombineKey(t Type) string { return AssetKey(t, Combine) }

// RGBA is a tint in the 0..1 range.
type RGBA struct {
	R, G, B, A float64
}

// Tint returns the display tint of a color.
func Tint(t Type) RGBA {
	switch t {
	case Red:
		return RGBA{1, 0, 0, 1}
	case Yellow:
		return RGBA{1, 0.92, 0.016, 0.5}
	case Orange:
		return RGBA{1, 0.5, 0, 1}
	case Green:
		return RGBA{0, 1, 0, 1}
	default:
		return RGBA{1, 1, 1, 1}
	}
}

// Color returns the terminal color used to draw a bubble.
func (t Type) Color() core.Color {
	switch t {
	case Red:
		return core.ColorBrightRed
	case Yellow:
		return core.ColorBrightYellow
	case Orange:
		return core.ColorOrange
	case Green:
		return core.ColorBrightGreen
	default:
		return core.ColorWhite
	}
}

// Glyph returns the character drawn for a bubble.
func (t Type) Glyph(m Mode) rune {
	if m == Combine {
		return '●'
	}
	return 'o'
}

// Bounds on per-instance parameters. SpeedMin is the floor of both drift
// speeds; there is no upper bound.
const (
	SpeedMin = 0.1
	SizeMin  = 0.1
	SizeMax  = 0.5
)

// Tuning holds the numbers behind bubble behavior.
type Tuning struct {
	Radius       float64       // collider radius at scale 1
	ClosestRatio float64       // offset ratio for a fresh pick-up
	ReskinRatio  float64       // offset ratio for a dye re-skin
	AttackDelay  time.Duration // pop animation before release

	YellowDuration time.Duration
	YellowScale    float64
	OrangeRadius   float64
	GreenSizeRatio float64
	GreenSpawn     float64 // new bubbles per attached bubble, rounded up

	BurstThreshold    float64 // compression ratio that pops a bubble
	MaxCompression    float64 // penetration depth mapped to ratio 1
	Expansion         float64 // sideways bulge per unit of squash
	RecoverySpeed     float64 // ratio per second
	KnockbackDistance float64
	KnockbackSpeed    float64
}

// DefaultTuning returns the stock bubble tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Radius:            0.5,
		ClosestRatio:      0.8,
		ReskinRatio:       1,
		AttackDelay:       400 * time.Millisecond,
		YellowDuration:    4 * time.Second,
		YellowScale:       5.5,
		OrangeRadius:      2,
		GreenSizeRatio:    0.5,
		GreenSpawn:        0.5,
		BurstThreshold:    0.7,
		MaxCompression:    1,
		Expansion:         0.5,
		RecoverySpeed:     2,
		KnockbackDistance: 0.5,
		KnockbackSpeed:    10,
	}
}
