package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cltScale/SamplingDist/onet/log"
	"github.com/xuri/excelize/v2"
	"golang.org/x/xerrors"
)

// SummarySheet is the name of the first sheet of the workbook.
const SummarySheet = "Summary"

const maxSheetName = 31

var summaryHeader = []interface{}{
	"RunID", "Name", "Kind", "Parameters", "NSample", "Repetitions",
	"Mean", "StdevOfEstimates", "StandardError", "RelativeGap",
}

// SheetName returns the sheet used for the i-th entry.
func SheetName(i int, name string) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, name)
	s := []rune(fmt.Sprintf("%02d-%s", i+1, clean))
	if len(s) > maxSheetName {
		s = s[:maxSheetName]
	}
	return string(s)
}

func paramString(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s=%v", p.Name, p.Value)
	}
	return strings.Join(parts, " ")
}

// WriteWorkbook saves the entries into an excel file at path: one summary row
// per entry on the Summary sheet, and for every entry a sheet with its
// parameters, the histogram bins and all estimates.
func WriteWorkbook(path string, entries []Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SummarySheet)
	err := f.SetColWidth(SummarySheet, "A", "J", 20)
	if err != nil {
		return xerrors.Errorf("summary sheet: %w", err)
	}
	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeader); err != nil {
		return xerrors.Errorf("summary header: %w", err)
	}
	for i, e := range entries {
		if e.Result == nil {
			return xerrors.Errorf("entry %q has no result", e.Name)
		}
		row := []interface{}{
			e.RunID, e.Name, string(e.Kind), paramString(e.Params), e.NSample, e.Repetitions,
			cellFloat(e.Result.Mean()), e.Result.StdevOfEstimates, e.Result.StandardError,
			cellFloat(e.Result.RelativeGap()),
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, axis, &row); err != nil {
			return xerrors.Errorf("summary row %d: %w", i, err)
		}
		if err := writeEntrySheet(f, SheetName(i, e.Name), e); err != nil {
			return xerrors.Errorf("sheet of %q: %w", e.Name, err)
		}
	}
	f.SetActiveSheet(0)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0770); err != nil {
			return xerrors.Errorf("creating report directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return xerrors.Errorf("saving %s: %w", path, err)
	}
	log.Lvl2("Saved report with", len(entries), "experiments to", path)
	return nil
}

func writeEntrySheet(f *excelize.File, sheet string, e Entry) error {
	f.NewSheet(sheet)
	if err := f.SetColWidth(sheet, "A", "H", 16); err != nil {
		return err
	}

	header := []interface{}{"BinLow", "BinHigh", "Count", "", "Estimate", "", "Parameter", "Value"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	bins, err := Histogram(e.Result.Estimates, BinWidth(e.Result.StdevOfEstimates))
	if err != nil {
		return err
	}
	for i, b := range bins {
		row := []interface{}{b.Low, b.High, b.Count}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	for i, v := range e.Result.Estimates {
		if err := f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), v); err != nil {
			return err
		}
	}

	params := append([]Param{
		{Name: "n_sample", Value: float64(e.NSample)},
		{Name: "repetitions", Value: float64(e.Repetitions)},
	}, e.Params...)
	for i, p := range params {
		row := []interface{}{p.Name, p.Value}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("G%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}
