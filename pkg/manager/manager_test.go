// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallRun = `
fleet:
  uavCounts: [1, 5]
  durationS: 20
sweep:
  minDistanceKm: 1
  maxDistanceKm: 9
  points: 5
  trials: 100
`

func newTestManager(t *testing.T) (*Manager, string) {
	dir := t.TempDir()
	mgr, err := NewManager(&Config{OutputDir: dir})
	require.NoError(t, err)
	require.NoError(t, mgr.LoadModel([]byte(smallRun)))
	return mgr, dir
}

func TestNewManager(t *testing.T) {
	mgr, err := NewManager(&Config{})
	require.NoError(t, err)
	assert.NotEmpty(t, mgr.RunID())
	assert.Equal(t, []int{1, 10, 50}, mgr.Model().Fleet.UAVCounts)
	assert.Equal(t, "866 MHz, SF7, TX=14 dBm", mgr.scenario())

	other, err := NewManager(&Config{})
	require.NoError(t, err)
	assert.NotEqual(t, mgr.RunID(), other.RunID())
}

func TestNewManagerWithConfig(t *testing.T) {
	mgr, err := NewManager(&Config{ConfigPath: "../model/test.yaml"})
	require.NoError(t, err)
	assert.Equal(t, 9, mgr.Model().Radio.SpreadingFactor)
	assert.Equal(t, []string{"urban"}, mgr.Model().Sweep.Environments)

	_, err = NewManager(&Config{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoadModelInvalid(t *testing.T) {
	mgr, _ := newTestManager(t)
	err := mgr.LoadModel([]byte("sweep:\n  environments: [jungle]\n"))
	assert.True(t, errors.IsInvalid(err))
	// the previous model stays in place
	assert.Equal(t, []int{1, 5}, mgr.Model().Fleet.UAVCounts)
}

func TestRunLatency(t *testing.T) {
	mgr, dir := newTestManager(t)
	table, err := mgr.RunLatency()
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "1", table.Rows[0][0])
	assert.Equal(t, "5", table.Rows[1][0])
	assert.FileExists(t, filepath.Join(dir, mgr.Model().Outputs.LatencyTable))
	assert.FileExists(t, filepath.Join(dir, mgr.Model().Outputs.LatencyPlot))
}

func TestRunPSR(t *testing.T) {
	mgr, dir := newTestManager(t)
	table, err := mgr.RunPSR()
	require.NoError(t, err)
	assert.Len(t, table.Rows, 3*5)
	assert.Equal(t, []string{"rural", "1.0000"}, table.Rows[0][:2])
	assert.Equal(t, []string{"urban", "9.0000"}, table.Rows[14][:2])
	assert.FileExists(t, filepath.Join(dir, mgr.Model().Outputs.PSRTable))
	assert.FileExists(t, filepath.Join(dir, mgr.Model().Outputs.PSRPlot))
}

func TestRunLinkRange(t *testing.T) {
	mgr, dir := newTestManager(t)
	table, err := mgr.RunLinkRange()
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	for _, row := range table.Rows {
		assert.Equal(t, "true", row[2])
	}
	assert.FileExists(t, filepath.Join(dir, mgr.Model().Outputs.RangeTable))
}

func TestRunFormative(t *testing.T) {
	mgr, dir := newTestManager(t)
	study := filepath.Join(dir, "study.csv")
	require.NoError(t, os.WriteFile(study, []byte("T1_time,T1_success\n10,Y\n20,N\n"), 0o644))

	table, err := mgr.RunFormative(study)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Alert Triage", "15", "12.5-17.5", "50%"}}, table.Rows)
	assert.FileExists(t, filepath.Join(dir, mgr.Model().Outputs.FormativeBoxplot))

	noTasks := filepath.Join(dir, "notes.csv")
	require.NoError(t, os.WriteFile(noTasks, []byte("Participant\nP1\n"), 0o644))
	other, otherDir := newTestManager(t)
	_, err = other.RunFormative(noTasks)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(otherDir, other.Model().Outputs.FormativeTable))
	assert.NoFileExists(t, filepath.Join(otherDir, other.Model().Outputs.FormativeBoxplot))

	_, err = mgr.RunFormative(filepath.Join(dir, "absent.csv"))
	assert.True(t, errors.IsNotFound(err))
}

func TestRunAll(t *testing.T) {
	mgr, dir := newTestManager(t)
	require.NoError(t, mgr.RunAll(""))
	assert.FileExists(t, filepath.Join(dir, mgr.Model().Outputs.Workbook))
	assert.NoFileExists(t, filepath.Join(dir, mgr.Model().Outputs.FormativeTable))
}
