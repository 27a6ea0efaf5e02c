package hue

import "math"

const (
	// MinBrightness is the lowest brightness level accepted by this package
	MinBrightness = 0
	// MaxBrightness is the highest brightness level accepted by this package
	MaxBrightness = 100

	// maxBri is the top of the bridge's native 1-254 brightness scale
	maxBri = 254
)

// ClampBrightness limits level to [MinBrightness, MaxBrightness].
func ClampBrightness(level int) int {
	if level > MaxBrightness {
		return MaxBrightness
	}
	if level < MinBrightness {
		return MinBrightness
	}
	return level
}

// levelToBri converts a 1-100 level to the bridge scale. Level 0 has no
// bridge equivalent; callers switch the group off instead.
func levelToBri(level int) uint8 {
	level = ClampBrightness(level)
	if level == 0 {
		return 0
	}
	bri := int(math.Round(float64(level) * maxBri / MaxBrightness))
	if bri < 1 {
		bri = 1
	}
	return uint8(bri)
}

// briToLevel converts a bridge brightness to a 0-100 level. A group with no
// light on reads as 0.
func briToLevel(anyOn bool, bri uint8) int {
	if !anyOn {
		return 0
	}
	level := int(math.Round(float64(bri) * MaxBrightness / maxBri))
	return ClampBrightness(level)
}
