// Package ratesheet imports line items from an Excel rate sheet.
//
// The first worksheet is read. Its first non-blank row is the header and
// must name the Description, Quantity and Price columns, in any order and
// any letter case. Blank rows are skipped. Numbers may use a decimal comma.
package ratesheet

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"freightquote/internal/domain/quote"
)

var ErrNoItems = errors.New("rate sheet has no line items")

var columns = []string{"description", "quantity", "price"}

// thousands matches "1,234" and "12,345,678": a comma here groups digits.
var thousands = regexp.MustCompile(`^[-+]?\d{1,3}(,\d{3})+$`)

// Read loads the line items of the workbook at path.
func Read(path string) ([]quote.ItemInput, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open rate sheet %q: %w", path, err)
	}
	defer f.Close()

	items, err := readFile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// ReadFrom is Read for an already opened workbook stream.
func ReadFrom(r io.Reader) ([]quote.ItemInput, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open rate sheet: %w", err)
	}
	defer f.Close()
	return readFile(f)
}

func readFile(f *excelize.File) ([]quote.ItemInput, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoItems
	}
	sheet := sheets[0]
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var (
		index  map[string]int
		items  []quote.ItemInput
		header = -1
	)
	for i, row := range rows {
		if blank(row) {
			continue
		}
		if header < 0 {
			index, err = headerIndex(row)
			if err != nil {
				return nil, fmt.Errorf("sheet %q row %d: %w", sheet, i+1, err)
			}
			header = i
			continue
		}

		item, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", sheet, i+1, err)
		}
		items = append(items, item)
	}
	if header < 0 {
		return nil, fmt.Errorf("sheet %q: missing header row", sheet)
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

func headerIndex(row []string) (map[string]int, error) {
	index := make(map[string]int, len(columns))
	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", cell)
		}
		index[name] = i
	}
	var missing []string
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRow(row []string, index map[string]int) (quote.ItemInput, error) {
	qty, err := parseNumber(cell(row, index["quantity"]))
	if err != nil {
		return quote.ItemInput{}, fmt.Errorf("quantity: %w", err)
	}
	price, err := parseNumber(cell(row, index["price"]))
	if err != nil {
		return quote.ItemInput{}, fmt.Errorf("price: %w", err)
	}
	return quote.ItemInput{
		Description: strings.TrimSpace(cell(row, index["description"])),
		Quantity:    qty,
		Price:       price,
	}, nil
}

// parseNumber accepts "1234.5", "1,234.5", "1,234" and "1234,5". Text
// cells only; numeric cells arrive unformatted.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty value")
	}
	s = strings.ReplaceAll(s, " ", "")
	switch {
	case thousands.MatchString(s),
		strings.Contains(s, ",") && strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ",") == 1:
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return d.InexactFloat64(), nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
