// Package report exports capture statistics and generated loop tables to
// spreadsheets for review on the bench PC.
package report

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Thiagojm/rngbench/bitstat"
	"github.com/Thiagojm/rngbench/looptable"
)

const (
	onesSheet  = "Ones"
	tableSheet = "LoopTable"
)

func newWorkbook(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)
	if defaultSheet != sheet {
		if _, err := f.NewSheet(sheet); err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.DeleteSheet(defaultSheet); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// WriteOnesLog writes the ones log to an xlsx file at path with a line chart
// of the ones percentage per capture.
func WriteOnesLog(records []bitstat.Record, path string) error {
	if len(records) == 0 {
		return errors.New("no data to write")
	}
	f, err := newWorkbook(onesSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	for i, h := range []string{"time", "file", "bytes", "ones", "ones_percent"} {
		if err := f.SetCellStr(onesSheet, cell(i+1, 1), h); err != nil {
			return err
		}
	}
	for i, r := range records {
		row := i + 2
		_ = f.SetCellStr(onesSheet, cell(1, row), r.Time.Format(bitstat.TimeLayout))
		_ = f.SetCellStr(onesSheet, cell(2, row), r.File)
		_ = f.SetCellInt(onesSheet, cell(3, row), int(r.Bytes))
		_ = f.SetCellInt(onesSheet, cell(4, row), int(r.Ones))
		_ = f.SetCellFloat(onesSheet, cell(5, row), r.Percent, 4, 64)
	}

	endRow := len(records) + 1
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$E$1", onesSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", onesSheet, endRow),
				Values:     fmt.Sprintf("%s!$E$2:$E$%d", onesSheet, endRow),
			},
		},
		Title:  []excelize.RichTextRun{{Text: filepath.Base(path)}},
		Legend: excelize.ChartLegend{Position: "none"},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Capture"}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Ones (%)"}}, MajorGridLines: true},
	}
	if err := f.AddChart(onesSheet, "G2", chart); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// WriteTable writes t as a grid: one row per fast entry, one column per
// multiplier, each cell holding the slow value.
func WriteTable(t looptable.Table, path string) error {
	if len(t.Entries) == 0 {
		return errors.New("no data to write")
	}
	f, err := newWorkbook(tableSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	_ = f.SetCellStr(tableSheet, cell(1, 1), "fast_sel")
	_ = f.SetCellStr(tableSheet, cell(2, 1), "fast")
	for _, s := range t.Entries[0].Slow {
		_ = f.SetCellStr(tableSheet, cell(s.Index+3, 1), fmt.Sprintf("x%d", s.Multiplier))
	}
	for i, e := range t.Entries {
		row := i + 2
		_ = f.SetCellInt(tableSheet, cell(1, row), e.Index)
		_ = f.SetCellInt(tableSheet, cell(2, row), e.Fast)
		for _, s := range e.Slow {
			if err := f.SetCellInt(tableSheet, cell(s.Index+3, row), s.Value); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}
