package volume

import "math"

const (
	// pi is truncated on purpose so volumes match previously logged values.
	pi             = 3.1416
	gallonsPerFoot = 7.48052
)

// Estimate returns the gallons held by an upright cylindrical tank of the
// given diameter filled to depthInches, rounded to two decimals.
// Zero or negative depths are not rejected.
func Estimate(depthInches, diameterInches float64) float64 {
	radiusFt := (diameterInches / 12) / 2
	depthFt := depthInches / 12
	gallons := pi * (radiusFt * radiusFt) * depthFt * gallonsPerFoot
	return math.Round(gallons*100) / 100
}
