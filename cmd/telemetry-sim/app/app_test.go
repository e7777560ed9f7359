package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir string) string {
	path := filepath.Join(dir, "small.yaml")
	data := "fleet:\n  uavCounts: [1]\n  durationS: 10\nsweep:\n  points: 3\n  trials: 50\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestCommands(t *testing.T) {
	root := NewRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"latency", "psr", "range", "formative", "all"}, names)
}

func TestRange(t *testing.T) {
	dir := t.TempDir()
	root := NewRootCommand()
	root.SetArgs([]string{"range", "--output-dir", dir, "--log-level", "warn"})
	require.NoError(t, root.Execute())
	assert.FileExists(t, filepath.Join(dir, "IN_LoRa_Median_Range_SF7_TX14.csv"))
}

func TestAllWithConfig(t *testing.T) {
	dir := t.TempDir()
	root := NewRootCommand()
	root.SetArgs([]string{"all", "-c", writeConfig(t, dir), "-o", dir})
	require.NoError(t, root.Execute())
	assert.FileExists(t, filepath.Join(dir, "IN_Telemetry_Results.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "IN_Latency_CCDF_SF7_TX14.pdf"))
}

func TestErrors(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"formative"})
	assert.Error(t, root.Execute())

	root = NewRootCommand()
	root.SetArgs([]string{"latency", "--log-level", "loud"})
	assert.Error(t, root.Execute())

	root = NewRootCommand()
	root.SetArgs([]string{"formative", filepath.Join(t.TempDir(), "missing.csv")})
	assert.Error(t, root.Execute())
}

func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
	})
	return &buf
}

func TestLogLevel(t *testing.T) {
	buf := captureLog(t)
	root := NewRootCommand()
	root.SetArgs([]string{"range", "-o", t.TempDir(), "--log-level", "error"})
	require.NoError(t, root.Execute())
	assert.NotContains(t, buf.String(), "level=info")
	assert.NotContains(t, buf.String(), "Creating Manager")

	buf.Reset()
	root = NewRootCommand()
	root.SetArgs([]string{"range", "-o", t.TempDir(), "--log-level", "info"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "Creating Manager")
	assert.Contains(t, buf.String(), "median range")
}
