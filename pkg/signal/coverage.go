package signal

import (
	"fmt"
	"math"

	"github.com/davidkleiven/gononlin/nonlin"
	log "github.com/sirupsen/logrus"

	"github.com/nfvri/lora-telemetry-sim/pkg/model"
)

// LinkRange is the distance at which the median SNR reaches the SNR threshold
type LinkRange struct {
	Environment model.Environment
	RangeKm     float64
	Converged   bool
}

// ComputeLinkRangeNewtonKrylov runs the Newton Krylov solver on MedianSNR(d) - threshold = 0.
// The unknown is log10(d) so that every iterate maps to a positive distance.
func ComputeLinkRangeNewtonKrylov(env model.Environment, ch model.ChannelParameters) (LinkRange, error) {
	solver := nonlin.NewtonKrylov{
		// Maximum number of Newton iterations
		Maxiter: 50,

		// Stepsize used to approximate the jacobian with finite differences
		StepSize: 1e-4,

		// Tolerance for the solution
		Tol: 1e-7,
	}
	return solveLinkRange(env, ch, solver)
}

func solveLinkRange(env model.Environment, ch model.ChannelParameters, solver nonlin.NewtonKrylov) (LinkRange, error) {
	if err := env.Validate(); err != nil {
		return LinkRange{}, err
	}
	if err := ch.Validate(); err != nil {
		return LinkRange{}, err
	}

	problem := nonlin.Problem{
		F: func(out, x []float64) {
			snr, err := MedianSNR(math.Pow(10, x[0]), env, ch)
			if err != nil {
				out[0] = math.NaN()
				return
			}
			out[0] = snr - ch.SNRThresholdDB
		},
	}

	// start from 1 km
	x0 := []float64{0.0}
	res, err := solver.Solve(problem, x0)
	if err != nil {
		return LinkRange{}, fmt.Errorf("median range for %v: %w", env, err)
	}
	log.Debugf("env: %v root: %v f: %v converged: %v", env, res.X, res.F, res.Converged)
	if len(res.X) == 0 {
		return LinkRange{}, fmt.Errorf("median range for %v: solver returned no root", env)
	}
	if !res.Converged {
		log.Warnf("median range for %v did not converge", env)
	}

	return LinkRange{
		Environment: env,
		RangeKm:     math.Pow(10, res.X[0]),
		Converged:   res.Converged,
	}, nil
}
