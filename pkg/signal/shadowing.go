package signal

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ShadowingDb draws n independent shadowing samples from N(0, sigma^2) in dB
func ShadowingDb(sigma float64, n int, src rand.Source) []float64 {
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = dist.Rand()
	}
	return samples
}
