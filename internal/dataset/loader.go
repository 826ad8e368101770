package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"ngr-insights-go/internal/logger"
	"ngr-insights-go/internal/types"
)

// Load reads a CSV or XLSX export (by extension) into a Dataset for the given feature set.
// Every failure is a *types.DataLoadError.
func Load(path string, fs types.FeatureSet, l *logger.Logger) (*types.Dataset, error) {
	log := l.Component("dataset.loader").WithField("path", path).WithField("dataset", fs.Name)
	log.Info("opening dataset")

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path)
	case ".csv", "":
		rows, err = readCSV(path)
	default:
		err = fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		log.WithError(err).Error("read failed")
		return nil, &types.DataLoadError{Source: path, Err: err}
	}

	ds, err := FromRows(path, rows, fs)
	if err != nil {
		log.WithError(err).Error("parse failed")
		return nil, err
	}
	log.WithField("records", ds.Len()).Info("dataset loaded")
	return ds, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets")
	}
	// stored values, not the number-formatted display text
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

// FromRows builds a Dataset from a header row followed by data rows.
// Blank cells and NA markers (NaN, NA, N/A, null) count as zero, which matches
// summing with missing values skipped. Anything else that is not a finite number
// is rejected. Errors name the row, the header being row 1.
func FromRows(source string, rows [][]string, fs types.FeatureSet) (*types.Dataset, error) {
	if len(rows) == 0 {
		return nil, &types.DataLoadError{Source: source, Err: errors.New("no header row")}
	}

	index := map[string]int{}
	for i, h := range rows[0] {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	col := func(name string) (int, error) {
		i, ok := index[name]
		if !ok {
			return 0, &types.DataLoadError{Source: source, Column: name}
		}
		return i, nil
	}
	ngrIdx, err := col(types.NGRColumn)
	if err != nil {
		return nil, err
	}
	ggrIdx, err := col(types.GGRColumn)
	if err != nil {
		return nil, err
	}
	featIdx := make([]int, len(fs.Features))
	for i, f := range fs.Features {
		if featIdx[i], err = col(f); err != nil {
			return nil, err
		}
	}
	idIdx := clientIDColumn(rows[0])

	records := make([]types.ClientRecord, 0, len(rows)-1)
	for n, r := range rows[1:] {
		row := n + 2
		if isBlank(r) {
			continue
		}
		rec := types.ClientRecord{
			ClientID: strconv.Itoa(row - 1),
			Costs:    make(map[string]float64, len(fs.Features)),
		}
		if idIdx >= 0 && idIdx < len(r) && strings.TrimSpace(r[idIdx]) != "" {
			rec.ClientID = strings.TrimSpace(r[idIdx])
		}
		if rec.NGR, err = cell(source, types.NGRColumn, r, ngrIdx, row); err != nil {
			return nil, err
		}
		if rec.GGR, err = cell(source, types.GGRColumn, r, ggrIdx, row); err != nil {
			return nil, err
		}
		for i, f := range fs.Features {
			v, err := cell(source, f, r, featIdx[i], row)
			if err != nil {
				return nil, err
			}
			rec.Costs[f] = v
		}
		records = append(records, rec)
	}

	return &types.Dataset{Features: fs, Records: records}, nil
}

func cell(source, column string, cells []string, idx, row int) (float64, error) {
	if idx >= len(cells) {
		return 0, nil
	}
	s := strings.TrimSpace(cells[idx])
	if isMissing(s) {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = fmt.Errorf("non-finite value %q", s)
	}
	if err != nil {
		return 0, &types.DataLoadError{Source: source, Column: column, Err: fmt.Errorf("row %d: %w", row, err)}
	}
	return v, nil
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "na", "n/a", "null", "none", "<na>":
		return true
	}
	return false
}

// clientIDColumn finds an identifier column by header name, -1 if none.
func clientIDColumn(header []string) int {
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch l {
		case "client_id", "clientid", "client id", "customer_id", "customerid", "player_id", "playerid", "id":
			return i
		}
	}
	return -1
}

func isBlank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
