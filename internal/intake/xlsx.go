package intake

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/leadflow/internal/apperr"
	"github.com/sells-group/leadflow/internal/model"
)

// ParseXLSX reads the first worksheet of an uploaded workbook using the same
// positional columns and header rule as ParseCSV.
func ParseXLSX(data []byte) ([]model.Lead, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, apperr.NewParseError("xlsx", eris.Wrap(err, "open workbook"))
	}
	if len(f.Sheets) == 0 {
		return nil, apperr.NewParseError("xlsx", eris.New("workbook has no sheets"))
	}

	sheet := f.Sheets[0]
	records := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		// Spreadsheet editors leave formatted but empty rows behind.
		cells := trimCells(rowToStrings(row))
		if isBlank(cells) {
			continue
		}
		records = append(records, cells)
	}

	leads := fromRecords(records)
	if len(leads) == 0 {
		zap.L().Warn("intake: xlsx input is empty",
			zap.String("component", "intake"),
			zap.String("sheet", sheet.Name),
		)
	}
	return leads, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		if cell != nil {
			cells[j] = cell.String()
		}
	}
	return cells
}
