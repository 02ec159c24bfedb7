// Package excel loads numeric samples from spreadsheet and CSV columns.
package excel

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"statref/domain/stats"
	"statref/internal"
	"statref/internal/errors"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: internal.DefaultLogger}
}

// WithLogger replaces the logger used for read diagnostics
func (r *DataReader) WithLogger(l *internal.Logger) *DataReader {
	if l != nil {
		r.logger = l
	}
	return r
}

// ReadData reads the first sheet (or the CSV file) into memory
func (r *DataReader) ReadData() (*ExcelData, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.InvalidInputf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, errors.InvalidInputf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readExcelData() (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeInvalidInput, err), "failed to open Excel file")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidInputf("workbook %s has no sheets", r.filePath)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(errors.WithCode(errors.CodeInvalidInput, err), "failed to read sheet %q", sheets[0])
	}
	r.logger.Debug("[DataReader] sheet %q read in %.2fms (%d rows)", sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, errors.InvalidInput("Excel file must have at least a header row and one data row")
	}
	return r.processRows(rows)
}

func (r *DataReader) readCSVData() (*ExcelData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeInvalidInput, err), "failed to open CSV file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeInvalidInput, err), "failed to read CSV file")
	}
	r.logger.Debug("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, errors.InvalidInput("CSV file must have at least a header row and one data row")
	}
	return r.processRows(rows)
}

// processRows converts raw string rows into ExcelData format
func (r *DataReader) processRows(rows [][]string) (*ExcelData, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	seen := make(map[string]bool, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
		if headers[i] == "" {
			continue
		}
		if seen[headers[i]] {
			return nil, errors.InvalidInputf("duplicate column header %q", headers[i])
		}
		seen[headers[i]] = true
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rowData := make(RawRowData)
		for j, cell := range row {
			if j < len(headers) && headers[j] != "" {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Debug("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ExcelData{Headers: headers, Rows: dataRows}, nil
}

// Column parses one column as numbers. Blank cells are skipped; any other
// non-numeric cell is an INVALID_INPUT error naming its spreadsheet row.
func (d *ExcelData) Column(name string) (stats.Sample, error) {
	if !d.HasColumn(name) {
		return nil, errors.InvalidInputf("column %q not found (have %s)", name, strings.Join(d.Headers, ", "))
	}
	out := make(stats.Sample, 0, len(d.Rows))
	for i, row := range d.Rows {
		cell := row[name]
		if cell == "" {
			continue
		}
		v, err := parseNumber(cell)
		if err != nil {
			return nil, errors.InvalidInputf("column %q row %d: %q is not a number", name, i+2, cell)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseNumber(cell string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
}

// Sample reads one named column
func (r *DataReader) Sample(column string) (stats.Sample, error) {
	data, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	return data.Column(column)
}

// Grouped reads each named column as one group, labelled by its header.
// With no names every non-empty header is used, in sheet order.
func (r *DataReader) Grouped(columns ...string) (stats.GroupedSample, error) {
	data, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		for _, h := range data.Headers {
			if h != "" {
				columns = append(columns, h)
			}
		}
	}
	groups := make(stats.GroupedSample, 0, len(columns))
	for _, name := range columns {
		values, err := data.Column(name)
		if err != nil {
			return nil, err
		}
		groups = append(groups, stats.Group{Label: name, Values: values})
	}
	return groups, nil
}

// Paired reads two columns row by row. Rows where either cell is blank
// are dropped so that the pairing survives missing data.
func (r *DataReader) Paired(xColumn, yColumn string) (stats.PairedSample, error) {
	data, err := r.ReadData()
	if err != nil {
		return stats.PairedSample{}, err
	}
	for _, name := range []string{xColumn, yColumn} {
		if !data.HasColumn(name) {
			return stats.PairedSample{}, errors.InvalidInputf("column %q not found (have %s)", name, strings.Join(data.Headers, ", "))
		}
	}

	var pairs stats.PairedSample
	for i, row := range data.Rows {
		xs, ys := row[xColumn], row[yColumn]
		if xs == "" || ys == "" {
			continue
		}
		x, err := parseNumber(xs)
		if err != nil {
			return stats.PairedSample{}, errors.InvalidInputf("column %q row %d: %q is not a number", xColumn, i+2, xs)
		}
		y, err := parseNumber(ys)
		if err != nil {
			return stats.PairedSample{}, errors.InvalidInputf("column %q row %d: %q is not a number", yColumn, i+2, ys)
		}
		pairs.X = append(pairs.X, x)
		pairs.Y = append(pairs.Y, y)
	}
	return pairs, nil
}
