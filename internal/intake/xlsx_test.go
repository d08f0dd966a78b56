package intake

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leadflow/internal/apperr"
)

func createTestXLSX(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			cell := row.AddCell()
			cell.SetString(cellData)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParseXLSX_Basic(t *testing.T) {
	data := createTestXLSX(t, [][]string{
		{"name", "email", "industry", "status", "score"},
		{"Jane", "jane@x.com", "Healthcare", "New", "3"},
		{"Bob", "", "", "", "-1"},
	})

	leads, err := ParseXLSX(data)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "Jane", leads[0].Name)
	assert.Equal(t, 3, leads[0].Score)
	assert.Equal(t, "Unknown", leads[1].Industry)
	assert.Equal(t, "New", leads[1].Status)
	assert.Equal(t, 0, leads[1].Score)
}

func TestParseXLSX_SkipsBlankRows(t *testing.T) {
	data := createTestXLSX(t, [][]string{
		{"Jane", "jane@x.com", "Healthcare", "New", "3"},
		{"", "", ""},
		{"Bob", "bob@y.com"},
	})

	leads, err := ParseXLSX(data)
	require.NoError(t, err)
	assert.Len(t, leads, 2)
}

func TestParseXLSX_InvalidWorkbook(t *testing.T) {
	_, err := ParseXLSX([]byte("not a zip"))
	require.Error(t, err)
	assert.True(t, apperr.IsParse(err))
}
