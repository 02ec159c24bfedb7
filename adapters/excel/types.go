package excel

// RawRowData represents a row of raw cells keyed by column header
type RawRowData map[string]string

// ExcelData represents a sheet or CSV file read into memory
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// HasColumn reports whether name is one of the headers
func (d *ExcelData) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}
