package excel

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// Transferred reports a CSV import or export.
type Transferred struct {
	Path  string `json:"path"`
	Range string `json:"range"`
	Rows  int    `json:"rows"`
}

// Delimiter parses a one-character field delimiter; empty means comma.
func Delimiter(s string) (rune, error) {
	if s == "" {
		return ',', nil
	}
	if s == `\t` || s == "tab" {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, office.InvalidArgument("delimiter %q is not a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' {
		return 0, office.InvalidArgument("delimiter %q is not allowed", s)
	}
	return r, nil
}

// SheetValues reads rangeStr, or the used range when it is empty. Large
// ranges are read in row bands of at most MaxReadCells cells.
func SheetValues(app com.Object, sheetName, rangeStr string) (*RangeValues, error) {
	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return nil, err
	}
	if rangeStr == "" {
		if rangeStr, err = usedRange(s, sheet); err != nil {
			return nil, err
		}
	}
	startCol, startRow, endCol, endRow, err := ParseRange(rangeStr)
	if err != nil {
		return nil, err
	}
	cols := endCol - startCol + 1
	values := make([][]any, 0, endRow-startRow+1)
	for _, page := range calculateFixedSizeRanges(rangeStr, MaxReadCells) {
		_, pageStart, _, pageEnd, err := ParseRange(page)
		if err != nil {
			return nil, err
		}
		rows, err := readCells(sheet, page, pageEnd-pageStart+1, cols)
		if err != nil {
			return nil, err
		}
		values = append(values, rows...)
	}
	return &RangeValues{Range: NormalizeRange(rangeStr), Values: values}, nil
}

func csvField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	}
	return fmt.Sprint(v)
}

// WriteCSV writes rows of cell values as CSV.
func WriteCSV(w io.Writer, values [][]any, comma rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = comma
	for _, row := range values {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = csvField(v)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "failed to write CSV row")
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadCSV reads CSV records as rows of strings. Rows may differ in length.
// Excel converts numeric text as if it was typed.
func ReadCSV(r io.Reader, comma rune) ([][]any, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, office.InvalidArgument("malformed CSV: %v", err)
	}
	values := make([][]any, len(records))
	for i, record := range records {
		values[i] = make([]any, len(record))
		for j, field := range record {
			if field != "" {
				values[i][j] = field
			}
		}
	}
	return values, nil
}

// Records shapes rows for JSON. With header the first row names the
// fields of one object per remaining row; blank header cells are named by
// their column letter.
func Records(values [][]any, header bool) (any, error) {
	if !header {
		return values, nil
	}
	if len(values) == 0 {
		return []map[string]any{}, nil
	}
	names := make([]string, len(values[0]))
	for i, v := range values[0] {
		names[i] = csvField(v)
		if names[i] == "" {
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return nil, err
			}
			names[i] = col
		}
	}
	records := make([]map[string]any, 0, len(values)-1)
	for _, row := range values[1:] {
		record := make(map[string]any, len(names))
		for i, name := range names {
			if i < len(row) {
				record[name] = row[i]
			} else {
				record[name] = nil
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// FromJSON reads an array of arrays as rows, or an array of objects as one
// row per object. Object keys become the columns in sorted order, written
// as a header row when header is set.
func FromJSON(data []byte, header bool) ([][]any, error) {
	var rows [][]any
	if err := json.Unmarshal(data, &rows); err == nil {
		return rows, nil
	}
	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, office.InvalidArgument("JSON must be an array of arrays or of objects")
	}
	var keys []string
	for _, o := range objects {
		for k := range o {
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
	}
	slices.Sort(keys)
	var values [][]any
	if header {
		row := make([]any, len(keys))
		for i, k := range keys {
			row[i] = k
		}
		values = append(values, row)
	}
	for _, o := range objects {
		row := make([]any, len(keys))
		for i, k := range keys {
			row[i] = o[k]
		}
		values = append(values, row)
	}
	return values, nil
}
