package formative

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/nfvri/lora-telemetry-sim/pkg/model"
	"github.com/nfvri/lora-telemetry-sim/pkg/report"
	"github.com/nfvri/lora-telemetry-sim/pkg/statistics"
	"github.com/nfvri/lora-telemetry-sim/pkg/utils"
)

// Study is the raw table of one formative usability session
type Study struct {
	columns map[string]int
	rows    [][]string
}

// TaskResult is the summary of one timed task
type TaskResult struct {
	Row   model.SummaryRow
	Times []float64
}

// Summary is the outcome of summarizing a study
type Summary struct {
	Participants int
	Tasks        []TaskResult
}

// Load reads a study CSV with a header row
func Load(path string) (*Study, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("study file %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a study table from r
func Read(r io.Reader) (*Study, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse study: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.NewInvalid("study has no header row")
	}

	s := &Study{columns: make(map[string]int), rows: records[1:]}
	for i, name := range records[0] {
		s.columns[strings.TrimSpace(name)] = i
	}
	return s, nil
}

// Participants is the number of data rows
func (s *Study) Participants() int {
	return len(s.rows)
}

// HasColumn reports whether the header names column
func (s *Study) HasColumn(column string) bool {
	_, ok := s.columns[column]
	return ok
}

func (s *Study) cell(row []string, column string) string {
	i := s.columns[column]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Numbers returns the parseable values of column; empty and non-numeric cells are dropped
func (s *Study) Numbers(column string) []float64 {
	var values []float64
	for _, row := range s.rows {
		v, err := strconv.ParseFloat(s.cell(row, column), 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}

// Rate is the share of all rows whose column equals value
func (s *Study) Rate(column, value string) float64 {
	if len(s.rows) == 0 {
		return 0
	}
	hits := 0
	for _, row := range s.rows {
		if s.cell(row, column) == value {
			hits++
		}
	}
	return float64(hits) / float64(len(s.rows))
}

// SuccessColumn maps a timed column such as T1_time onto T1_success
func SuccessColumn(timeColumn string) string {
	return strings.SplitN(timeColumn, "_", 2)[0] + "_success"
}

// Summarize computes median, IQR and success rate of every task present in the study
func Summarize(s *Study, scenario model.FormativeScenario) (*Summary, error) {
	summary := &Summary{Participants: s.Participants()}
	for _, task := range scenario.Tasks {
		if !s.HasColumn(task.Column) {
			log.Warnf("Column %s missing, skipping %s", task.Column, task.Label)
			continue
		}
		times := s.Numbers(task.Column)
		if len(times) == 0 {
			log.Warnf("Column %s has no timings, skipping %s", task.Column, task.Label)
			continue
		}

		row, err := statistics.Summarize(task.Label, times, 25, 75)
		if err != nil {
			return nil, err
		}
		row.Median = utils.RoundToDecimal(row.Median, 2)
		if success := SuccessColumn(task.Column); s.HasColumn(success) {
			row.Rate = s.Rate(success, scenario.SuccessValue) * 100
			row.HasRate = true
		}
		summary.Tasks = append(summary.Tasks, TaskResult{Row: row, Times: times})
	}

	labels := make([]string, len(summary.Tasks))
	for i, task := range summary.Tasks {
		labels[i] = task.Row.Label
	}
	log.Infof("Detected tasks: %v", labels)
	return summary, nil
}

// Table renders the summary as Task, Median (s), IQR (s), Success Rate
func (s *Summary) Table(name string) (*report.Table, error) {
	t := report.NewTable(name, "Task", "Median (s)", "IQR (s)", "Success Rate")
	for _, task := range s.Tasks {
		r := task.Row
		rate := utils.If(r.HasRate, fmt.Sprintf("%.0f%%", r.Rate), "N/A")
		if err := t.Append(r.Label, report.FormatFloat(r.Median), fmt.Sprintf("%.1f-%.1f", r.Lower, r.Upper), rate); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Groups returns the task timings for a boxplot
func (s *Summary) Groups() []report.Group {
	groups := make([]report.Group, len(s.Tasks))
	for i, task := range s.Tasks {
		groups[i] = report.Group{Label: task.Row.Label, Values: task.Times}
	}
	return groups
}
