package signal

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nfvri/lora-telemetry-sim/pkg/utils"
)

// GammaFadingDb draws n multipath fading samples in dB.
// The fading power follows Gamma(shape m, scale 1/m) so that its mean is unit power.
func GammaFadingDb(m float64, n int, src rand.Source) []float64 {
	// distuv.Gamma takes the rate, i.e. 1/scale
	dist := distuv.Gamma{Alpha: m, Beta: m, Src: src}
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = utils.LinearToDb(dist.Rand())
	}
	return samples
}
