// Package sink persists lead rows to the tracking store (a Google Sheet or a
// Notion database) and reads their status back by row position.
package sink

import (
	"context"

	"github.com/sells-group/leadflow/internal/model"
)

// FirstDataRow is the 1-indexed row holding the first lead; row 1 is the
// header row. Lead i of a session lives at row i+FirstDataRow.
const FirstDataRow = 2

// Sink is a row-oriented, append-only lead store.
type Sink interface {
	// Append writes one lead as a new row after the existing rows.
	Append(ctx context.Context, lead model.Lead) error
	// Statuses returns the status column for the first n data rows, in row
	// order. Rows that do not exist (or have no status) yield "".
	Statuses(ctx context.Context, n int) ([]string, error)
}

// RowFor returns the 1-indexed sheet row of the lead at index i.
func RowFor(i int) int {
	return i + FirstDataRow
}
