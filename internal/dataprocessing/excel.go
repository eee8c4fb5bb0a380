package dataprocessing

import (
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "trendcli/internal/errors"
	"trendcli/pkg/contracts/domain"
)

// ReadDailyExcel reads daily records from an Excel workbook. The sheet
// holding the data is located by its header row, which must contain the
// same columns ReadDailyCSV expects (date, ticker, open, high, low,
// close, volume).
func ReadDailyExcel(path string) ([]domain.DailyRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open Excel file", err).
			WithContext("path", path)
	}
	defer f.Close()

	rows, err := findDataSheet(f)
	if err != nil {
		return nil, err
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.DailyRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		record, err := parseDailyRow(row, columns, i+2)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// findDataSheet returns the rows of the first sheet whose header row
// carries the required daily columns.
func findDataSheet(f *excelize.File) ([][]string, error) {
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		headerText := strings.ToLower(strings.Join(rows[0], " "))
		if strings.Contains(headerText, "date") &&
			strings.Contains(headerText, "close") &&
			strings.Contains(headerText, "volume") {
			return rows, nil
		}
	}
	return nil, apperrors.NewMalformedRecordError(
		"no sheet with daily price columns found in workbook", nil)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
