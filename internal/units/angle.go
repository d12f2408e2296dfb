// Package units provides shared angle unit constants and conversions.
package units

import "math"

// Unit constants
const (
	Degrees = "deg"
	Radians = "rad"
)

// ValidUnits contains all valid angle unit values
var ValidUnits = []string{Degrees, Radians}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// RadiansToDegrees converts an angle from radians to degrees.
// Detected line angles are carried in radians internally and reported
// in degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// DegreesToRadians converts an angle from degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// ConvertAngle converts an angle in radians to the target units.
// Angles are stored in radians; unknown units fall back to radians.
func ConvertAngle(angleRad float64, targetUnits string) float64 {
	switch targetUnits {
	case Degrees:
		return RadiansToDegrees(angleRad)
	case Radians:
		return angleRad
	default:
		return angleRad
	}
}
