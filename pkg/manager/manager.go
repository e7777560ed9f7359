// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/nfvri/lora-telemetry-sim/pkg/formative"
	"github.com/nfvri/lora-telemetry-sim/pkg/latency"
	"github.com/nfvri/lora-telemetry-sim/pkg/model"
	"github.com/nfvri/lora-telemetry-sim/pkg/report"
	"github.com/nfvri/lora-telemetry-sim/pkg/signal"
	"github.com/nfvri/lora-telemetry-sim/pkg/statistics"
	"github.com/nfvri/lora-telemetry-sim/pkg/utils"
)

// Config is a manager configuration
type Config struct {
	// ConfigPath is an optional parameter file overlaid onto the defaults
	ConfigPath string
	// OutputDir receives every table, plot and the workbook
	OutputDir string
}

// Manager runs the study analyses and writes their outputs
type Manager struct {
	config Config
	model  *model.Model
	runID  string
}

// NewManager creates a new manager
func NewManager(config *Config) (*Manager, error) {
	log.Info("Creating Manager")

	m := model.Default()
	if config.ConfigPath != "" {
		if err := model.LoadConfig(&m, config.ConfigPath); err != nil {
			return nil, err
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	mgr := &Manager{
		config: *config,
		model:  &m,
		runID:  uuid.New().String(),
	}
	log.Infof("Run %s writing to %s", mgr.runID, mgr.outputDir())
	return mgr, nil
}

// RunID identifies the outputs of this manager
func (m *Manager) RunID() string {
	return m.runID
}

// Model returns the parameter set in use
func (m *Manager) Model() model.Model {
	return *m.model
}

// LoadModel replaces the parameter set with defaults overlaid by a YAML document
func (m *Manager) LoadModel(data []byte) error {
	next := model.Default()
	if err := model.LoadConfigFromBytes(&next, data); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	m.model = &next
	return nil
}

func (m *Manager) outputDir() string {
	if m.config.OutputDir == "" {
		return "."
	}
	return m.config.OutputDir
}

func (m *Manager) output(name string) string {
	return filepath.Join(m.outputDir(), name)
}

// scenario names the radio setting in plot titles, e.g. "866 MHz, SF7, TX=14 dBm"
func (m *Manager) scenario() string {
	return fmt.Sprintf("%s, SF%d, TX=%g dBm",
		humanize.SIWithDigits(m.model.Channel.CarrierFreqMHz*1e6, 0, "Hz"),
		m.model.Radio.SpreadingFactor, m.model.Channel.TxPowerDBm)
}

// RunLatency simulates every fleet size and writes the latency table and CCDF plot
func (m *Manager) RunLatency() (*report.Table, error) {
	table := report.NewTable("Latency Budget", "UAV Count", "Median (ms)", "P95 (ms)", "P99 (ms)")
	var curves []report.Curve

	for _, run := range m.model.Runs() {
		samples, err := latency.SimulateSeeded(run, m.model.Radio, m.model.Latency, m.model.Seeds.Latency)
		if err != nil {
			return nil, err
		}
		ms := utils.Scale(samples, 1000)

		row, err := statistics.Summarize(fmt.Sprintf("N=%d", run.UAVCount), ms, 95, 99)
		if err != nil {
			return nil, err
		}
		if err := table.Append(fmt.Sprint(run.UAVCount), report.FormatFloat(row.Median),
			report.FormatFloat(row.Lower), report.FormatFloat(row.Upper)); err != nil {
			return nil, err
		}

		x, ccdf, err := statistics.CCDF(ms)
		if err != nil {
			return nil, err
		}
		curves = append(curves, report.Curve{Label: row.Label, X: x, Y: ccdf})
		log.Infof("%s: %s samples, median %.2f ms, P95 %.2f ms, P99 %.2f ms",
			row.Label, humanize.Comma(int64(len(ms))), row.Median, row.Lower, row.Upper)
	}

	if err := report.WriteCSV(m.output(m.model.Outputs.LatencyTable), table); err != nil {
		return nil, err
	}
	if err := report.PlotCCDF(m.output(m.model.Outputs.LatencyPlot), "Latency CCDF ("+m.scenario()+")", curves); err != nil {
		return nil, err
	}
	return table, nil
}

// RunPSR sweeps packet success rate over distance for every environment
func (m *Manager) RunPSR() (*report.Table, error) {
	envs, err := m.model.Environments()
	if err != nil {
		return nil, err
	}
	sweep := m.model.Sweep
	distances := utils.Linspace(sweep.MinDistanceKm, sweep.MaxDistanceKm, sweep.Points)
	log.Infof("Sweeping %d distances x %d environments, %s trials each",
		len(distances), len(envs), humanize.Comma(int64(sweep.Trials)))

	points, err := statistics.DistanceSweep(distances, envs, sweep.Trials, m.model.Channel, m.model.Seeds.PSR)
	if err != nil {
		return nil, err
	}

	table := report.NewTable("PSR vs Distance", "Environment", "Distance (km)", "PSR")
	curves := make([]report.Curve, len(envs))
	for i, env := range envs {
		curves[i] = report.Curve{Label: env.Title()}
	}
	for i, p := range points {
		c := &curves[i/len(distances)]
		c.X = append(c.X, p.DistanceKm)
		c.Y = append(c.Y, p.PSR)
		if err := table.Append(p.Environment.String(), report.FormatFixed(p.DistanceKm, 4), report.FormatFixed(p.PSR, 4)); err != nil {
			return nil, err
		}
	}

	if err := report.WriteCSV(m.output(m.model.Outputs.PSRTable), table); err != nil {
		return nil, err
	}
	if err := report.PlotPSR(m.output(m.model.Outputs.PSRPlot), "LoRa PSR vs Distance ("+m.scenario()+")", curves); err != nil {
		return nil, err
	}
	return table, nil
}

// RunLinkRange solves the median link range of every environment
func (m *Manager) RunLinkRange() (*report.Table, error) {
	envs, err := m.model.Environments()
	if err != nil {
		return nil, err
	}

	table := report.NewTable("Median Range", "Environment", "Median Range (km)", "Converged")
	for _, env := range envs {
		r, err := signal.ComputeLinkRangeNewtonKrylov(env, m.model.Channel)
		if err != nil {
			return nil, err
		}
		log.Infof("%s median range %.3f km (converged: %v)", env, r.RangeKm, r.Converged)
		if err := table.Append(env.String(), report.FormatFixed(r.RangeKm, 3), fmt.Sprint(r.Converged)); err != nil {
			return nil, err
		}
	}

	if err := report.WriteCSV(m.output(m.model.Outputs.RangeTable), table); err != nil {
		return nil, err
	}
	return table, nil
}

// RunFormative summarizes a usability study CSV; the boxplot is skipped when no timed task exists
func (m *Manager) RunFormative(csvPath string) (*report.Table, error) {
	study, err := formative.Load(csvPath)
	if err != nil {
		return nil, err
	}
	summary, err := formative.Summarize(study, m.model.Formative)
	if err != nil {
		return nil, err
	}

	table, err := summary.Table("Formative Summary")
	if err != nil {
		return nil, err
	}
	if err := report.WriteCSV(m.output(m.model.Outputs.FormativeTable), table); err != nil {
		return nil, err
	}

	if len(summary.Tasks) == 0 {
		log.Warn("No timed tasks found, skipping boxplot")
		return table, nil
	}
	title := fmt.Sprintf("Task Completion Time Distribution (N=%d)", summary.Participants)
	if err := report.PlotBoxes(m.output(m.model.Outputs.FormativeBoxplot), title, "Time (s)", summary.Groups()); err != nil {
		return nil, err
	}
	return table, nil
}

// RunAll runs every simulation, the formative summary when csvPath is set,
// and collects all tables into one workbook
func (m *Manager) RunAll(csvPath string) error {
	var tables []*report.Table
	for _, run := range []func() (*report.Table, error){m.RunLatency, m.RunPSR, m.RunLinkRange} {
		t, err := run()
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}
	if csvPath != "" {
		t, err := m.RunFormative(csvPath)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}
	return report.WriteWorkbook(m.output(m.model.Outputs.Workbook), m.runID, tables...)
}
