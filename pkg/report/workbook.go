package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	runSheet     = "Run"
	maxSheetName = 31
)

// sheetName shortens name to the spreadsheet limit without splitting a character
func sheetName(name string) string {
	runes := []rune(name)
	if len(runes) > maxSheetName {
		return string(runes[:maxSheetName])
	}
	return name
}

// cellValue stores numeric cells as numbers so spreadsheets can chart them
func cellValue(cell string) interface{} {
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return v
	}
	return cell
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = cellValue(c)
	}
	return f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values)
}

// WriteWorkbook writes every table to its own sheet of an .xlsx file, plus a Run sheet
// carrying runID and the creation time
func WriteWorkbook(path string, runID string, tables ...*Table) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("closing workbook %s: %v", path, err)
		}
	}()

	if _, err := f.NewSheet(runSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(runSheet, "A1", &[]string{"Run ID", runID}); err != nil {
		return err
	}
	if err := f.SetSheetRow(runSheet, "A2", &[]string{"Created", time.Now().UTC().Format(time.RFC3339)}); err != nil {
		return err
	}

	// Sheet1 is the default sheet and is deleted below
	used := map[string]string{strings.ToLower(runSheet): runSheet, "sheet1": "Sheet1"}
	for _, t := range tables {
		sheet := sheetName(t.Name)
		// sheet names are case-insensitive
		if other, ok := used[strings.ToLower(sheet)]; ok {
			return errors.NewInvalid("table %q maps to sheet %q already used by %q", t.Name, sheet, other)
		}
		used[strings.ToLower(sheet)] = t.Name
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		header := t.Header
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		for i, row := range t.Rows {
			if err := setRow(f, sheet, i+2, row); err != nil {
				return err
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	log.Infof("Exported %s with %d sheets", path, len(tables)+1)
	return nil
}
