// Package colorspace converts user-specified colors into the engine's
// signed RGB representation.
//
// Engine color components live in [-1, 1] where -1 is the channel
// minimum, 0 the mid gray, and 1 the maximum. Material and light setters
// call ToRGB before caching device-space values.
package colorspace

import "fmt"

// Supported color space tags.
const (
	RGB    = "rgb"    // signed [-1, 1], passed through
	RGB1   = "rgb1"   // unsigned [0, 1], remapped 2v-1
	RGB255 = "rgb255" // 8-bit [0, 255], remapped v/127.5-1
)

// ToRGB converts a color triple from the named space to signed RGB.
// Unknown spaces are configuration errors.
func ToRGB(c [3]float32, space string) ([3]float32, error) {
	switch space {
	case RGB:
		return c, nil
	case RGB1:
		return [3]float32{2*c[0] - 1, 2*c[1] - 1, 2*c[2] - 1}, nil
	case RGB255:
		return [3]float32{c[0]/127.5 - 1, c[1]/127.5 - 1, c[2]/127.5 - 1}, nil
	default:
		return [3]float32{}, fmt.Errorf("colorspace: unknown space %q", space)
	}
}
