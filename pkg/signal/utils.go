package signal

import (
	"math"
)

// thermal noise density at 290 K
const thermalNoiseDbmHz = -174.0

// NoiseFloorDBm returns the receiver noise floor over the given bandwidth
func NoiseFloorDBm(bandwidthHz, noiseFigureDB float64) float64 {
	return thermalNoiseDbmHz + 10*math.Log10(bandwidthHz) + noiseFigureDB
}
