package latency

import (
	"testing"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/nfvri/lora-telemetry-sim/pkg/model"
	"github.com/nfvri/lora-telemetry-sim/pkg/signal"
)

func TestSingleSample(t *testing.T) {
	m := model.Default()
	run := model.SimulationRun{UAVCount: 1, DurationS: 1, SampleRateHz: 1}
	samples, err := SimulateSeeded(run, m.Radio, m.Latency, m.Seeds.Latency)
	require.NoError(t, err)
	assert.Equal(t, 1, len(samples))
}

func TestSampleCount(t *testing.T) {
	m := model.Default()
	for _, run := range m.Runs() {
		samples, err := SimulateSeeded(run, m.Radio, m.Latency, m.Seeds.Latency)
		require.NoError(t, err)
		assert.Equal(t, run.UAVCount*180, len(samples))
	}

	// fractional ticks are truncated
	samples, err := SimulateSeeded(model.SimulationRun{UAVCount: 3, DurationS: 2.5, SampleRateHz: 2}, m.Radio, m.Latency, 1)
	require.NoError(t, err)
	assert.Equal(t, 15, len(samples))
}

func TestSamplesAboveFloor(t *testing.T) {
	m := model.Default()
	toa, err := signal.Airtime(m.Radio)
	require.NoError(t, err)
	floor := toa + m.Latency.SerialDelayS

	// wide UI jitter makes the zero floor of the UI term bite
	budget := m.Latency
	budget.UIJitterStdS = 0.05

	for _, b := range []model.LatencyBudgetParameters{m.Latency, budget} {
		samples, err := SimulateSeeded(model.SimulationRun{UAVCount: 50, DurationS: 180, SampleRateHz: 1}, m.Radio, b, 1)
		require.NoError(t, err)
		for _, s := range samples {
			assert.GreaterOrEqual(t, s, floor)
		}
	}
}

func TestReproducible(t *testing.T) {
	m := model.Default()
	run := model.SimulationRun{UAVCount: 10, DurationS: 30, SampleRateHz: 1}
	first, err := SimulateSeeded(run, m.Radio, m.Latency, 1)
	require.NoError(t, err)
	second, err := SimulateSeeded(run, m.Radio, m.Latency, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := SimulateSeeded(run, m.Radio, m.Latency, 2)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestMeanLatency(t *testing.T) {
	m := model.Default()
	composer, err := NewComposer(10, m.Radio, m.Latency, rand.NewSource(1))
	require.NoError(t, err)

	samples := make([]float64, 20000)
	for i := range samples {
		samples[i] = composer.Next()
	}
	// airtime + E[mac] + serial + E[backend] + ui mean
	expected := composer.Airtime() + 0.015 + 0.003 + 0.006*1.0317 + 0.004 + 0.0005
	assert.InDelta(t, expected, stat.Mean(samples, nil), 0.001)
	assert.Equal(t, composer.Airtime()+0.003, composer.Floor())
}

func TestFleetSizeSlowsUI(t *testing.T) {
	m := model.Default()
	small, err := SimulateSeeded(model.SimulationRun{UAVCount: 1, DurationS: 9000, SampleRateHz: 1}, m.Radio, m.Latency, 1)
	require.NoError(t, err)
	large, err := SimulateSeeded(model.SimulationRun{UAVCount: 50, DurationS: 180, SampleRateHz: 1}, m.Radio, m.Latency, 1)
	require.NoError(t, err)
	// 49 extra UAVs add 49 * 0.05 ms of UI time
	assert.InDelta(t, 49*m.Latency.UIPerUAVSlopeS, stat.Mean(large, nil)-stat.Mean(small, nil), 0.001)
}

func TestInvalidRun(t *testing.T) {
	m := model.Default()
	_, err := SimulateSeeded(model.SimulationRun{UAVCount: 0, DurationS: 1, SampleRateHz: 1}, m.Radio, m.Latency, 1)
	assert.True(t, errors.IsInvalid(err))

	_, err = SimulateSeeded(model.SimulationRun{UAVCount: 1, DurationS: 0.2, SampleRateHz: 1}, m.Radio, m.Latency, 1)
	assert.True(t, errors.IsInvalid(err))

	radio := m.Radio
	radio.BandwidthHz = 0
	_, err = SimulateSeeded(model.SimulationRun{UAVCount: 1, DurationS: 1, SampleRateHz: 1}, radio, m.Latency, 1)
	assert.True(t, errors.IsInvalid(err))

	budget := m.Latency
	budget.BackendMedianS = 0
	_, err = SimulateSeeded(model.SimulationRun{UAVCount: 1, DurationS: 1, SampleRateHz: 1}, m.Radio, budget, 1)
	assert.True(t, errors.IsInvalid(err))
}
