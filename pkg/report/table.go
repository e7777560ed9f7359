package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Table is a named grid of formatted cells
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// NewTable creates an empty table with the given column names
func NewTable(name string, header ...string) *Table {
	return &Table{Name: name, Header: header}
}

// Append adds one row; the cell count must match the header
func (t *Table) Append(cells ...string) error {
	if len(cells) != len(t.Header) {
		return errors.NewInvalid("table %s: row has %d cells, header has %d", t.Name, len(cells), len(t.Header))
	}
	t.Rows = append(t.Rows, cells)
	return nil
}

// FormatFloat renders v with the shortest representation
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatFixed renders v with prec decimals
func FormatFixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// WriteCSV writes the header and rows of t to path, creating parent directories
func WriteCSV(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Infof("Exported %s", path)
	return nil
}
