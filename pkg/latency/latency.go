package latency

import (
	"math"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nfvri/lora-telemetry-sim/pkg/model"
	"github.com/nfvri/lora-telemetry-sim/pkg/signal"
)

// Composer draws the per-packet latency contributors of one fleet size
type Composer struct {
	airtime float64
	budget  model.LatencyBudgetParameters
	uiMean  float64
	mac     distuv.Uniform
	backend distuv.LogNormal
	ui      distuv.Normal
}

// NewComposer prepares the latency distributions for a fleet of uavCount UAVs
func NewComposer(uavCount int, radio model.RadioParameters, budget model.LatencyBudgetParameters, src rand.Source) (*Composer, error) {
	if err := budget.Validate(); err != nil {
		return nil, err
	}
	toa, err := signal.Airtime(radio)
	if err != nil {
		return nil, err
	}

	return &Composer{
		airtime: toa,
		budget:  budget,
		uiMean:  budget.UIBaseS + budget.UIPerUAVSlopeS*float64(uavCount),
		mac:     distuv.Uniform{Min: 0, Max: budget.MacJitterMaxS, Src: src},
		backend: distuv.LogNormal{Mu: math.Log(budget.BackendMedianS), Sigma: budget.BackendSigma, Src: src},
		ui:      distuv.Normal{Mu: 0, Sigma: budget.UIJitterStdS, Src: src},
	}, nil
}

// Airtime is the fixed on-air time added to every sample
func (c *Composer) Airtime() float64 {
	return c.airtime
}

// Floor is the smallest latency a sample can take
func (c *Composer) Floor() float64 {
	return c.airtime + c.budget.SerialDelayS
}

// Next draws one end-to-end latency sample in seconds.
// Draw order per sample is MAC jitter, backend delay, UI jitter.
func (c *Composer) Next() float64 {
	mac := c.mac.Rand()
	backend := c.backend.Rand()
	ui := c.uiMean + c.ui.Rand()
	return c.airtime + mac + c.budget.SerialDelayS + backend + math.Max(ui, 0)
}

// Simulate returns run.Samples() latency samples, tick-major and UAV-minor
func Simulate(run model.SimulationRun, radio model.RadioParameters, budget model.LatencyBudgetParameters, src rand.Source) ([]float64, error) {
	if err := run.Validate(); err != nil {
		return nil, err
	}
	composer, err := NewComposer(run.UAVCount, radio, budget, src)
	if err != nil {
		return nil, err
	}

	samples := make([]float64, 0, run.Samples())
	for tick := 0; tick < run.Ticks(); tick++ {
		for uav := 0; uav < run.UAVCount; uav++ {
			samples = append(samples, composer.Next())
		}
	}
	log.Debugf("N=%d: %s latency samples, airtime %.4fs", run.UAVCount, humanize.Comma(int64(len(samples))), composer.Airtime())
	return samples, nil
}

// SimulateSeeded runs Simulate on a fresh generator seeded with seed
func SimulateSeeded(run model.SimulationRun, radio model.RadioParameters, budget model.LatencyBudgetParameters, seed uint64) ([]float64, error) {
	return Simulate(run, radio, budget, rand.NewSource(seed))
}
