package sink

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadflow/internal/apperr"
	"github.com/sells-group/leadflow/internal/model"
	"github.com/sells-group/leadflow/pkg/google"
)

// Sheets stores leads in one worksheet of a Google spreadsheet.
type Sheets struct {
	client google.Client
	sheet  string
}

// NewSheets returns a Sheets sink writing to the named worksheet.
func NewSheets(client google.Client, sheet string) *Sheets {
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &Sheets{client: client, sheet: sheet}
}

// Append implements Sink.
func (s *Sheets) Append(ctx context.Context, lead model.Lead) error {
	if err := s.client.AppendRow(ctx, s.sheet, lead.Row()); err != nil {
		return apperr.NewExternalServiceError("sheets", "append row", err)
	}
	zap.L().Debug("sink: appended row",
		zap.String("component", "sink.sheets"),
		zap.String("email", lead.Email),
	)
	return nil
}

// Statuses implements Sink with a single ranged read.
func (s *Sheets) Statuses(ctx context.Context, n int) ([]string, error) {
	statuses := make([]string, n)
	if n == 0 {
		return statuses, nil
	}

	rows, err := s.client.GetRows(ctx, s.sheet, RowFor(0), RowFor(n-1))
	if err != nil {
		return nil, apperr.NewExternalServiceError("sheets", "read status", err)
	}

	for i := 0; i < n && i < len(rows); i++ {
		if len(rows[i]) > model.StatusColumn {
			statuses[i] = strings.TrimSpace(rows[i][model.StatusColumn])
		}
	}
	return statuses, nil
}
