package intake

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadflow/internal/model"
	"github.com/sells-group/leadflow/internal/sink"
)

// Source names used in logs and metrics.
const (
	SourceCSV    = "csv"
	SourceXLSX   = "xlsx"
	SourceEmails = "emails"
)

// Service parses lead input and appends every parsed lead to the sink.
type Service struct {
	sink sink.Sink
}

// NewService returns a Service writing to s.
func NewService(s sink.Sink) *Service {
	return &Service{sink: s}
}

// ImportCSV parses data as CSV and appends one row per lead.
func (s *Service) ImportCSV(ctx context.Context, data []byte) ([]model.Lead, error) {
	leads, err := ParseCSV(data)
	if err != nil {
		return nil, err
	}
	return s.appendAll(ctx, SourceCSV, leads)
}

// ImportXLSX parses data as an XLSX workbook and appends one row per lead.
func (s *Service) ImportXLSX(ctx context.Context, data []byte) ([]model.Lead, error) {
	leads, err := ParseXLSX(data)
	if err != nil {
		return nil, err
	}
	return s.appendAll(ctx, SourceXLSX, leads)
}

// ImportEmails parses a comma-separated address list and appends one row per
// address.
func (s *Service) ImportEmails(ctx context.Context, text string) ([]model.Lead, error) {
	return s.appendAll(ctx, SourceEmails, ParseEmails(text))
}

// ImportFile dispatches on the file extension: .xlsx files are read as
// workbooks, everything else as CSV.
func (s *Service) ImportFile(ctx context.Context, name string, data []byte) ([]model.Lead, error) {
	if SourceForFile(name) == SourceXLSX {
		return s.ImportXLSX(ctx, data)
	}
	return s.ImportCSV(ctx, data)
}

// SourceForFile returns the intake source used for a file name.
func SourceForFile(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return SourceXLSX
	}
	return SourceCSV
}

// appendAll writes leads in order and stops at the first sink failure.
func (s *Service) appendAll(ctx context.Context, source string, leads []model.Lead) ([]model.Lead, error) {
	log := zap.L().With(zap.String("component", "intake"), zap.String("source", source))

	for i, l := range leads {
		if err := s.sink.Append(ctx, l); err != nil {
			log.Error("intake: append failed",
				zap.Int("row", sink.RowFor(i)),
				zap.Int("appended", i),
				zap.Error(err),
			)
			return nil, eris.Wrapf(err, "intake: append %s lead %d", source, i)
		}
	}

	log.Info("intake: leads appended", zap.Int("count", len(leads)))
	return leads, nil
}
