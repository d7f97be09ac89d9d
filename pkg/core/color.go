package core

import "math"

// LinearToGamma converts a linear channel value to gamma 2 space
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToByte quantizes a gamma-space channel to [0,255], clamping through IntensityInterval
func ToByte(c float64) int {
	if math.IsNaN(c) {
		return 0
	}
	return int(256 * IntensityInterval.Clamp(c))
}

// ColorToBytes gamma-corrects and quantizes a linear color
func ColorToBytes(c Vec3) (r, g, b int) {
	return ToByte(LinearToGamma(c.X)), ToByte(LinearToGamma(c.Y)), ToByte(LinearToGamma(c.Z))
}
