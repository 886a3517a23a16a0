package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"pv-clipping/internal/model"

	"github.com/xuri/excelize/v2"
)

// Options control how uploaded bytes are turned into a TimeSeries.
type Options struct {
	// ReferenceYear is substituted into year-less timestamp labels.
	// Zero means DefaultReferenceYear.
	ReferenceYear int
	// Debug logs every skipped row with its raw content and position.
	Debug bool
}

func (o Options) referenceYear() int {
	if o.ReferenceYear == 0 {
		return DefaultReferenceYear
	}
	return o.ReferenceYear
}

// Load parses an uploaded two-column table (timestamp label, numeric value)
// into a TimeSeries. The codec is chosen by file extension: .csv is read as
// comma-separated text, .xlsx/.xlsm as a spreadsheet.
//
// Rows whose timestamp or value does not parse are skipped, never fatal.
// If no row survives, the load fails with NO_VALID_TIMESTAMPS.
func Load(raw []byte, filename string, opts Options) (model.TimeSeries, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSV(raw)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(raw)
	default:
		return nil, &LoadError{
			Code:    CodeUnreadableFile,
			Message: fmt.Sprintf("unsupported file type %q (want .csv or .xlsx)", filepath.Ext(filename)),
		}
	}
	if err != nil {
		return nil, &LoadError{
			Code:    CodeUnreadableFile,
			Message: fmt.Sprintf("could not read %s: %v", filename, err),
		}
	}

	refYear := opts.referenceYear()
	series := make(model.TimeSeries, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			skip(opts, filename, i, row, "fewer than two columns")
			continue
		}
		ts, err := ParseTimestamp(row[0], refYear)
		if err != nil {
			skip(opts, filename, i, row, err.Error())
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			skip(opts, filename, i, row, "value is not a finite number")
			continue
		}
		series = append(series, model.TimePoint{Timestamp: ts, Value: v})
	}

	if len(series) == 0 {
		return nil, &LoadError{
			Code:    CodeNoValidTimestamps,
			Message: fmt.Sprintf("%s: no row has a valid timestamp", filename),
		}
	}
	return series.SortDedup(), nil
}

func readCSV(raw []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

func readXLSX(raw []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheet)
}

func skip(opts Options, filename string, i int, row []string, reason string) {
	if opts.Debug {
		log.Printf("[Loader] %s row %d skipped (%s): %v", filename, i+1, reason, row)
	}
}
