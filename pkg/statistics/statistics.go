package statistics

import (
	"math"
	"sort"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/nfvri/lora-telemetry-sim/pkg/model"
	"github.com/nfvri/lora-telemetry-sim/pkg/signal"
)

// SweepPoint is the packet success rate of one environment at one distance
type SweepPoint struct {
	Environment model.Environment
	DistanceKm  float64
	PSR         float64
}

func sorted(samples []float64) []float64 {
	s := make([]float64, len(samples))
	copy(s, samples)
	sort.Float64s(s)
	return s
}

// percentileSorted interpolates linearly between the two closest ranks
func percentileSorted(s []float64, p float64) float64 {
	h := float64(len(s)-1) * p / 100
	lo := int(math.Floor(h))
	if lo >= len(s)-1 {
		return s[len(s)-1]
	}
	return s[lo] + (h-float64(lo))*(s[lo+1]-s[lo])
}

// Percentile returns the p-th percentile (0..100) of samples, linear interpolation between ranks
func Percentile(samples []float64, p float64) (float64, error) {
	if len(samples) == 0 {
		return 0, errors.NewInvalid("percentile of an empty sample set")
	}
	if p < 0 || p > 100 || math.IsNaN(p) {
		return 0, errors.NewInvalid("percentile must be within 0..100, got %v", p)
	}
	return percentileSorted(sorted(samples), p), nil
}

// Median is the 50th percentile
func Median(samples []float64) (float64, error) {
	return Percentile(samples, 50)
}

// Mean of samples
func Mean(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, errors.NewInvalid("mean of an empty sample set")
	}
	return stat.Mean(samples, nil), nil
}

// CCDF returns the samples sorted ascending and P(X > x) at each of them.
// The curve is non-increasing and ends at 0.
func CCDF(samples []float64) ([]float64, []float64, error) {
	n := len(samples)
	if n == 0 {
		return nil, nil, errors.NewInvalid("ccdf of an empty sample set")
	}
	x := sorted(samples)
	ccdf := make([]float64, n)
	for i := range ccdf {
		ccdf[i] = 1 - float64(i+1)/float64(n)
	}
	return x, ccdf, nil
}

// Summarize computes median and the lowerPct/upperPct percentiles of samples
func Summarize(label string, samples []float64, lowerPct, upperPct float64) (model.SummaryRow, error) {
	if len(samples) == 0 {
		return model.SummaryRow{}, errors.NewInvalid("no samples for %q", label)
	}
	if lowerPct > upperPct {
		return model.SummaryRow{}, errors.NewInvalid("percentile pair out of order: %v > %v", lowerPct, upperPct)
	}
	for _, p := range []float64{lowerPct, upperPct} {
		if p < 0 || p > 100 {
			return model.SummaryRow{}, errors.NewInvalid("percentile must be within 0..100, got %v", p)
		}
	}

	s := sorted(samples)
	return model.SummaryRow{
		Label:  label,
		Median: percentileSorted(s, 50),
		Lower:  percentileSorted(s, lowerPct),
		Upper:  percentileSorted(s, upperPct),
	}, nil
}

// DistanceSweep evaluates SimulatePSR over every environment and distance.
// Points are returned environment-major in the order given; every point reseeds with seed.
func DistanceSweep(distances []float64, envs []model.Environment, trials int, channel model.ChannelParameters, seed uint64) ([]SweepPoint, error) {
	if len(distances) == 0 {
		return nil, errors.NewInvalid("no sweep distances")
	}
	if len(envs) == 0 {
		return nil, errors.NewInvalid("no sweep environments")
	}
	if nearest := floats.Min(distances); nearest <= 0 {
		return nil, errors.NewInvalid("distance must be positive, got %v km", nearest)
	}

	points := make([]SweepPoint, 0, len(envs)*len(distances))
	for _, env := range envs {
		for _, d := range distances {
			run := model.DistanceSweepRun{DistanceKm: d, Trials: trials, Environment: env}
			psr, err := signal.SimulatePSR(run, channel, seed)
			if err != nil {
				return nil, err
			}
			points = append(points, SweepPoint{Environment: env, DistanceKm: d, PSR: psr})
		}
		log.Debugf("%s sweep done over %d distances", env, len(distances))
	}
	return points, nil
}
