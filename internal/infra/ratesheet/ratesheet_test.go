package ratesheet

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"freightquote/internal/domain/quote"
)

// writeSheet saves rows to the first worksheet of a new workbook.
func writeSheet(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}
	path := filepath.Join(t.TempDir(), "rates.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestRead(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"Description", "Quantity", "Price"},
		{"Ocean Freight", 2, 1250.5},
		{},
		{"THC", 1, 180},
		{"Documentation Fee", "1", "45,75"},
	})

	items, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, []quote.ItemInput{
		{Description: "Ocean Freight", Quantity: 2, Price: 1250.5},
		{Description: "THC", Quantity: 1, Price: 180},
		{Description: "Documentation Fee", Quantity: 1, Price: 45.75},
	}, items)
}

func TestRead_ColumnOrderAndCase(t *testing.T) {
	path := writeSheet(t, [][]any{
		{},
		{"PRICE", "description", "Quantity", "Notes"},
		{"99.9", "Trucking", "3", "door delivery"},
	})

	items, err := Read(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, quote.ItemInput{Description: "Trucking", Quantity: 3, Price: 99.9}, items[0])
}

func TestRead_FormattedNumbers(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Description", "Quantity", "Price"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Ocean Freight", 1, 1234}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"THC", 1200, 1234.5}))

	grouped, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	require.NoError(t, err)
	grouped2, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "C2", grouped))
	require.NoError(t, f.SetCellStyle("Sheet1", "B3", "B3", grouped))
	require.NoError(t, f.SetCellStyle("Sheet1", "C3", "C3", grouped2))

	path := filepath.Join(t.TempDir(), "rates.xlsx")
	require.NoError(t, f.SaveAs(path))

	items, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []quote.ItemInput{
		{Description: "Ocean Freight", Quantity: 1, Price: 1234},
		{Description: "THC", Quantity: 1200, Price: 1234.5},
	}, items)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
		want string
	}{
		{
			name: "missing column",
			rows: [][]any{{"Description", "Qty", "Price"}, {"THC", 1, 2}},
			want: "row 1: missing columns: quantity",
		},
		{
			name: "bad number names the row",
			rows: [][]any{{"Description", "Quantity", "Price"}, {"THC", 1, 2}, {"Fee", "two", 5}},
			want: "row 3: quantity: invalid number",
		},
		{
			name: "empty price",
			rows: [][]any{{"Description", "Quantity", "Price"}, {"THC", 1}},
			want: "row 2: price: empty value",
		},
		{
			name: "header only",
			rows: [][]any{{"Description", "Quantity", "Price"}},
			want: ErrNoItems.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(writeSheet(t, tt.rows))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.ErrorContains(t, err, "open rate sheet")
}

func TestReadFrom(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Description", "Quantity", "Price"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Ocean Freight", 1, 900}))
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	items, err := ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, []quote.ItemInput{{Description: "Ocean Freight", Quantity: 1, Price: 900}}, items)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1234.5", 1234.5},
		{"1,234.5", 1234.5},
		{"1234,5", 1234.5},
		{"45,75", 45.75},
		{"1,234", 1234},
		{"12,345,678", 12345678},
		{"-1,250", -1250},
		{" -20 ", -20},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := parseNumber(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
