// Package intake parses lead sources (CSV, XLSX, manual email lists) into
// lead records and appends them to the sink.
package intake

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sells-group/leadflow/internal/apperr"
	"github.com/sells-group/leadflow/internal/model"
)

// Header is the optional first row of a lead file. Columns are positional;
// a first row equal to Header is skipped.
var Header = []string{"name", "email", "industry", "status", "score"}

// Positional column indexes.
const (
	colName = iota
	colEmail
	colIndustry
	colStatus
	colScore
)

// ParseCSV decodes a headerless (or Header-prefixed) lead CSV. Blank input
// yields an empty slice and a warning; undecodable input yields a
// *apperr.ParseError.
func ParseCSV(data []byte) ([]model.Lead, error) {
	if !utf8.Valid(data) {
		return nil, apperr.NewParseError("csv", eris.New("input is not valid UTF-8"))
	}

	text, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, apperr.NewParseError("csv", eris.Wrap(err, "decode"))
	}

	if len(bytes.TrimSpace(text)) == 0 {
		zap.L().Warn("intake: csv input is empty", zap.String("component", "intake"))
		return []model.Lead{}, nil
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperr.NewParseError("csv", eris.Wrap(err, "read rows"))
	}

	return fromRecords(records), nil
}

// fromRecords maps positional rows to leads, skipping a leading Header row.
func fromRecords(records [][]string) []model.Lead {
	leads := make([]model.Lead, 0, len(records))
	for i, rec := range records {
		cells := trimCells(rec)
		if i == 0 && isHeader(cells) {
			continue
		}
		leads = append(leads, model.NewLead(
			cell(cells, colName),
			cell(cells, colEmail),
			cell(cells, colIndustry),
			cell(cells, colStatus),
			ParseScore(cell(cells, colScore)),
		))
	}
	return leads
}

// ParseScore returns the integer value of a score cell when it consists of
// ASCII digits only; any other value (blank, signed, decimal, overflowing)
// is 0.
func ParseScore(raw string) int {
	if raw == "" {
		return 0
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func isHeader(cells []string) bool {
	if len(cells) != len(Header) {
		return false
	}
	for i, h := range Header {
		if cells[i] != h {
			return false
		}
	}
	return true
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

func trimCells(rec []string) []string {
	cells := make([]string, len(rec))
	for i, c := range rec {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
