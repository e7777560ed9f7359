// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"math"

	"github.com/onosproject/onos-lib-go/pkg/errors"
)

// Model is the complete, fixed parameter set of the telemetry study
type Model struct {
	Radio     RadioParameters         `mapstructure:"radio" yaml:"radio"`
	Latency   LatencyBudgetParameters `mapstructure:"latency" yaml:"latency"`
	Channel   ChannelParameters       `mapstructure:"channel" yaml:"channel"`
	Seeds     Seeds                   `mapstructure:"seeds" yaml:"seeds"`
	Fleet     FleetScenario           `mapstructure:"fleet" yaml:"fleet"`
	Sweep     SweepScenario           `mapstructure:"sweep" yaml:"sweep"`
	Formative FormativeScenario       `mapstructure:"formative" yaml:"formative"`
	Outputs   Outputs                 `mapstructure:"outputs" yaml:"outputs"`
}

// RadioParameters describes the LoRa physical layer of a telemetry uplink
type RadioParameters struct {
	PayloadBytes    int     `mapstructure:"payloadBytes" yaml:"payloadBytes"`
	SpreadingFactor int     `mapstructure:"spreadingFactor" yaml:"spreadingFactor"`
	BandwidthHz     float64 `mapstructure:"bandwidthHz" yaml:"bandwidthHz"`
	CodingRate      int     `mapstructure:"codingRate" yaml:"codingRate"` // 1 => 4/5 ... 4 => 4/8
	PreambleSymbols int     `mapstructure:"preambleSymbols" yaml:"preambleSymbols"`
}

// LatencyBudgetParameters are the non-radio contributors to end-to-end latency, in seconds
type LatencyBudgetParameters struct {
	MacJitterMaxS  float64 `mapstructure:"macJitterMaxS" yaml:"macJitterMaxS"`
	SerialDelayS   float64 `mapstructure:"serialDelayS" yaml:"serialDelayS"`
	BackendMedianS float64 `mapstructure:"backendMedianS" yaml:"backendMedianS"`
	BackendSigma   float64 `mapstructure:"backendSigma" yaml:"backendSigma"`
	UIBaseS        float64 `mapstructure:"uiBaseS" yaml:"uiBaseS"`
	UIPerUAVSlopeS float64 `mapstructure:"uiPerUAVSlopeS" yaml:"uiPerUAVSlopeS"`
	UIJitterStdS   float64 `mapstructure:"uiJitterStdS" yaml:"uiJitterStdS"`
}

// ChannelParameters is the link budget of the ground station receiver
type ChannelParameters struct {
	CarrierFreqMHz     float64 `mapstructure:"carrierFreqMHz" yaml:"carrierFreqMHz"`
	BaseStationHeightM float64 `mapstructure:"baseStationHeightM" yaml:"baseStationHeightM"`
	MobileHeightM      float64 `mapstructure:"mobileHeightM" yaml:"mobileHeightM"`
	TxPowerDBm         float64 `mapstructure:"txPowerDBm" yaml:"txPowerDBm"`
	TxGainDB           float64 `mapstructure:"txGainDB" yaml:"txGainDB"`
	RxGainDB           float64 `mapstructure:"rxGainDB" yaml:"rxGainDB"`
	CableLossDB        float64 `mapstructure:"cableLossDB" yaml:"cableLossDB"`
	BandwidthHz        float64 `mapstructure:"bandwidthHz" yaml:"bandwidthHz"`
	NoiseFigureDB      float64 `mapstructure:"noiseFigureDB" yaml:"noiseFigureDB"`
	SNRThresholdDB     float64 `mapstructure:"snrThresholdDB" yaml:"snrThresholdDB"`
	PERSmoothing       float64 `mapstructure:"perSmoothing" yaml:"perSmoothing"`
}

// Seeds holds one fixed generator seed per independent run type
type Seeds struct {
	Latency uint64 `mapstructure:"latency" yaml:"latency"`
	PSR     uint64 `mapstructure:"psr" yaml:"psr"`
}

// FleetScenario lists the UAV fleet sizes simulated by the latency run
type FleetScenario struct {
	UAVCounts    []int   `mapstructure:"uavCounts" yaml:"uavCounts"`
	DurationS    float64 `mapstructure:"durationS" yaml:"durationS"`
	SampleRateHz float64 `mapstructure:"sampleRateHz" yaml:"sampleRateHz"`
}

// SweepScenario is the PSR vs distance grid
type SweepScenario struct {
	MinDistanceKm float64  `mapstructure:"minDistanceKm" yaml:"minDistanceKm"`
	MaxDistanceKm float64  `mapstructure:"maxDistanceKm" yaml:"maxDistanceKm"`
	Points        int      `mapstructure:"points" yaml:"points"`
	Trials        int      `mapstructure:"trials" yaml:"trials"`
	Environments  []string `mapstructure:"environments" yaml:"environments"`
}

// FormativeTask maps a CSV timing column onto a task label
type FormativeTask struct {
	Column string `mapstructure:"column" yaml:"column"`
	Label  string `mapstructure:"label" yaml:"label"`
}

// FormativeScenario describes the usability study CSV
type FormativeScenario struct {
	Tasks        []FormativeTask `mapstructure:"tasks" yaml:"tasks"`
	SuccessValue string          `mapstructure:"successValue" yaml:"successValue"`
}

// Outputs are the file names written under the output directory
type Outputs struct {
	LatencyTable     string `mapstructure:"latencyTable" yaml:"latencyTable"`
	LatencyPlot      string `mapstructure:"latencyPlot" yaml:"latencyPlot"`
	PSRTable         string `mapstructure:"psrTable" yaml:"psrTable"`
	PSRPlot          string `mapstructure:"psrPlot" yaml:"psrPlot"`
	RangeTable       string `mapstructure:"rangeTable" yaml:"rangeTable"`
	FormativeTable   string `mapstructure:"formativeTable" yaml:"formativeTable"`
	FormativeBoxplot string `mapstructure:"formativeBoxplot" yaml:"formativeBoxplot"`
	Workbook         string `mapstructure:"workbook" yaml:"workbook"`
}

// SimulationRun is one latency simulation of a UAV fleet
type SimulationRun struct {
	UAVCount     int
	DurationS    float64
	SampleRateHz float64
}

// Ticks returns the number of telemetry ticks of the run
func (r SimulationRun) Ticks() int {
	return int(r.DurationS * r.SampleRateHz)
}

// Samples returns the number of latency samples the run produces
func (r SimulationRun) Samples() int {
	return r.UAVCount * r.Ticks()
}

// Validate checks that the run produces at least one sample
func (r SimulationRun) Validate() error {
	if r.UAVCount < 1 {
		return errors.NewInvalid("uav count must be at least 1, got %d", r.UAVCount)
	}
	if r.Ticks() < 1 {
		return errors.NewInvalid("duration %vs at %vHz yields no ticks", r.DurationS, r.SampleRateHz)
	}
	return nil
}

// DistanceSweepRun is one PSR estimate at a fixed distance
type DistanceSweepRun struct {
	DistanceKm  float64
	Trials      int
	Environment Environment
}

// Validate checks distance and trial count
func (r DistanceSweepRun) Validate() error {
	if !(r.DistanceKm > 0) {
		return errors.NewInvalid("distance must be positive, got %v km", r.DistanceKm)
	}
	if r.Trials < 1 {
		return errors.NewInvalid("trial count must be positive, got %d", r.Trials)
	}
	return r.Environment.Validate()
}

// SummaryRow is the aggregate of one sample set
type SummaryRow struct {
	Label   string
	Median  float64
	Lower   float64
	Upper   float64
	Rate    float64
	HasRate bool
}

// Validate checks the radio parameters are usable by the airtime formula
func (r RadioParameters) Validate() error {
	switch {
	case r.PayloadBytes <= 0:
		return errors.NewInvalid("payload must be positive, got %d bytes", r.PayloadBytes)
	case r.SpreadingFactor < 6 || r.SpreadingFactor > 12:
		return errors.NewInvalid("spreading factor must be within 6..12, got %d", r.SpreadingFactor)
	case !(r.BandwidthHz > 0):
		return errors.NewInvalid("bandwidth must be positive, got %v Hz", r.BandwidthHz)
	case r.CodingRate <= 0:
		return errors.NewInvalid("coding rate must be positive, got %d", r.CodingRate)
	case r.PreambleSymbols <= 0:
		return errors.NewInvalid("preamble must be positive, got %d symbols", r.PreambleSymbols)
	}
	return nil
}

// Validate checks the latency budget terms are non-negative
func (p LatencyBudgetParameters) Validate() error {
	terms := map[string]float64{
		"mac jitter":     p.MacJitterMaxS,
		"serial delay":   p.SerialDelayS,
		"backend sigma":  p.BackendSigma,
		"ui base":        p.UIBaseS,
		"ui slope":       p.UIPerUAVSlopeS,
		"ui jitter":      p.UIJitterStdS,
		"backend median": p.BackendMedianS,
	}
	for name, v := range terms {
		if v < 0 || math.IsNaN(v) {
			return errors.NewInvalid("%s must not be negative, got %v", name, v)
		}
	}
	if p.BackendMedianS == 0 {
		return errors.NewInvalid("backend median must be positive")
	}
	return nil
}

// Validate checks the channel parameters used by path loss and noise floor
func (c ChannelParameters) Validate() error {
	switch {
	case !(c.CarrierFreqMHz > 0):
		return errors.NewInvalid("carrier frequency must be positive, got %v MHz", c.CarrierFreqMHz)
	case !(c.BaseStationHeightM > 0):
		return errors.NewInvalid("base station height must be positive, got %v m", c.BaseStationHeightM)
	case c.MobileHeightM < 0:
		return errors.NewInvalid("mobile height must not be negative, got %v m", c.MobileHeightM)
	case !(c.BandwidthHz > 0):
		return errors.NewInvalid("bandwidth must be positive, got %v Hz", c.BandwidthHz)
	case !(c.PERSmoothing > 0):
		return errors.NewInvalid("PER smoothing constant must be positive, got %v", c.PERSmoothing)
	}
	return nil
}

// Validate checks the whole model before any run starts
func (m *Model) Validate() error {
	if err := m.Radio.Validate(); err != nil {
		return err
	}
	if err := m.Latency.Validate(); err != nil {
		return err
	}
	if err := m.Channel.Validate(); err != nil {
		return err
	}
	if len(m.Fleet.UAVCounts) == 0 {
		return errors.NewInvalid("no fleet sizes configured")
	}
	for _, n := range m.Fleet.UAVCounts {
		run := SimulationRun{UAVCount: n, DurationS: m.Fleet.DurationS, SampleRateHz: m.Fleet.SampleRateHz}
		if err := run.Validate(); err != nil {
			return err
		}
	}
	if !(m.Sweep.MinDistanceKm > 0) || m.Sweep.MaxDistanceKm < m.Sweep.MinDistanceKm {
		return errors.NewInvalid("sweep distances must satisfy 0 < min <= max, got %v..%v km", m.Sweep.MinDistanceKm, m.Sweep.MaxDistanceKm)
	}
	if m.Sweep.Points < 1 {
		return errors.NewInvalid("sweep needs at least one distance point")
	}
	if m.Sweep.Trials < 1 {
		return errors.NewInvalid("trial count must be positive, got %d", m.Sweep.Trials)
	}
	if _, err := m.Environments(); err != nil {
		return err
	}
	return nil
}

// Environments parses the sweep environments
func (m *Model) Environments() ([]Environment, error) {
	if len(m.Sweep.Environments) == 0 {
		return nil, errors.NewInvalid("no sweep environments configured")
	}
	envs := make([]Environment, 0, len(m.Sweep.Environments))
	for _, name := range m.Sweep.Environments {
		env, err := ParseEnvironment(name)
		if err != nil {
			return nil, err
		}
		envs = append(envs, env)
	}
	return envs, nil
}

// Runs returns one latency run per configured fleet size
func (m *Model) Runs() []SimulationRun {
	runs := make([]SimulationRun, 0, len(m.Fleet.UAVCounts))
	for _, n := range m.Fleet.UAVCounts {
		runs = append(runs, SimulationRun{UAVCount: n, DurationS: m.Fleet.DurationS, SampleRateHz: m.Fleet.SampleRateHz})
	}
	return runs
}
