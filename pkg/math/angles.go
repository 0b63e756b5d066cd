package math

import gomath "math"

// Radians converts degrees to radians.
func Radians(degrees float32) float32 {
	return degrees * (gomath.Pi / 180.0)
}

// Degrees converts radians to degrees.
func Degrees(radians float32) float32 {
	return radians * (180.0 / gomath.Pi)
}
