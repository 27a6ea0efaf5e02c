package hue

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
)

var hexColorPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// ValidColor reports whether s is exactly six hexadecimal digits.
func ValidColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// ParseColor parses a six-digit hex RGB code such as "FF5733".
func ParseColor(s string) (color.RGBA, error) {
	if !ValidColor(s) {
		return color.RGBA{}, fmt.Errorf("%w: %q must be six hexadecimal digits", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}, nil
}
