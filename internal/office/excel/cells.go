package excel

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// MaxReadCells bounds an explicit read_range; larger areas must be paged.
const MaxReadCells = 10000

// Cell is the content of one cell.
type Cell struct {
	Cell    string `json:"cell"`
	Value   any    `json:"value"`
	Text    string `json:"text"`
	Formula string `json:"formula,omitempty"`
}

// RangeValues is a row-major block of cell values.
type RangeValues struct {
	Range     string   `json:"range"`
	Values    [][]any  `json:"values"`
	Page      int      `json:"page,omitempty"`
	Pages     int      `json:"pages,omitempty"`
	Ranges    []string `json:"ranges,omitempty"`
	NextRange string   `json:"next_range,omitempty"`
}

// Written reports the area a write touched.
type Written struct {
	Range string `json:"range"`
	Cells int    `json:"cells"`
}

func cellValue(v any) (any, error) {
	switch t := v.(type) {
	case nil, string, bool, float64, float32, int, int32, int64:
		return t, nil
	}
	return nil, office.InvalidArgument("unsupported cell value %v (%T)", v, v)
}

func putValue(r com.Object, v any) error {
	if v == nil {
		_, err := r.Call("ClearContents")
		return err
	}
	return r.Put("Value", v)
}

// WriteCell writes a scalar value into a cell. A nil value clears it.
func WriteCell(app com.Object, sheetName, cell string, value any) (*Cell, error) {
	if _, _, err := ParseCell(cell); err != nil {
		return nil, err
	}
	value, err := cellValue(value)
	if err != nil {
		return nil, err
	}
	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return nil, err
	}
	r, err := s.GetObject(sheet, "Range", cell)
	if err != nil {
		return nil, err
	}
	if err := putValue(r, value); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", cell)
	}
	return readCell(r, cell)
}

// ReadCell reads the value, displayed text and formula of a cell.
func ReadCell(app com.Object, sheetName, cell string) (*Cell, error) {
	if _, _, err := ParseCell(cell); err != nil {
		return nil, err
	}
	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return nil, err
	}
	r, err := s.GetObject(sheet, "Range", cell)
	if err != nil {
		return nil, err
	}
	return readCell(r, cell)
}

func readCell(r com.Object, cell string) (*Cell, error) {
	value, err := r.Get("Value")
	if err != nil {
		return nil, err
	}
	text, err := com.String(r, "Text")
	if err != nil {
		return nil, err
	}
	formula, err := com.String(r, "Formula")
	if err != nil {
		return nil, err
	}
	// Formula echoes constants for cells without a formula.
	if !strings.HasPrefix(formula, "=") {
		formula = ""
	}
	return &Cell{Cell: strings.ToUpper(cell), Value: com.JSONValue(value), Text: text, Formula: formula}, nil
}

// SetFormula writes a formula into a cell and returns the calculated value.
func SetFormula(app com.Object, sheetName, cell, formula string) (*Cell, error) {
	if _, _, err := ParseCell(cell); err != nil {
		return nil, err
	}
	formula = strings.TrimSpace(formula)
	if formula == "" || formula == "=" {
		return nil, office.InvalidArgument("formula is empty")
	}
	if !strings.HasPrefix(formula, "=") {
		formula = "=" + formula
	}
	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return nil, err
	}
	r, err := s.GetObject(sheet, "Range", cell)
	if err != nil {
		return nil, err
	}
	if err := r.Put("Formula", formula); err != nil {
		return nil, errors.Wrapf(err, "failed to set formula %s in %s", formula, cell)
	}
	return readCell(r, cell)
}

// WriteRange writes a row-major block of values starting at startCell.
// Rows may have different lengths; nil values leave cells untouched.
func WriteRange(app com.Object, sheetName, startCell string, values [][]any) (*Written, error) {
	startCol, startRow, err := ParseCell(startCell)
	if err != nil {
		return nil, err
	}
	width := 0
	for i, row := range values {
		width = max(width, len(row))
		for j, v := range row {
			if _, err := cellValue(v); err != nil {
				return nil, errors.Wrapf(err, "values[%d][%d]", i, j)
			}
		}
	}
	if len(values) == 0 || width == 0 {
		return nil, office.InvalidArgument("values are empty")
	}
	target, err := rangeName(startCol, startRow, startCol+width-1, startRow+len(values)-1)
	if err != nil {
		return nil, err
	}

	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return nil, err
	}
	written := 0
	for i, row := range values {
		for j, v := range row {
			if v == nil {
				continue
			}
			name, err := cellName(startCol+j, startRow+i)
			if err != nil {
				return nil, err
			}
			if err := writeOne(sheet, name, v); err != nil {
				return nil, err
			}
			written++
		}
	}
	return &Written{Range: target, Cells: written}, nil
}

func writeOne(sheet com.Object, name string, v any) error {
	r, err := sheet.GetObject("Range", name)
	if err != nil {
		return err
	}
	defer r.Release()
	if err := r.Put("Value", v); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}
	return nil
}

// ReadOptions selects what ReadRange reads. Without Range the sheet's
// print area or used range is split into pages of PageSize cells.
type ReadOptions struct {
	Range    string
	Page     int
	PageSize int
}

// ReadRange reads an explicit range, or one page of the sheet's data.
func ReadRange(app com.Object, sheetName string, opts ReadOptions) (*RangeValues, error) {
	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return nil, err
	}
	if opts.Range != "" {
		values, err := readValues(sheet, opts.Range)
		if err != nil {
			return nil, err
		}
		return &RangeValues{Range: NormalizeRange(opts.Range), Values: values}, nil
	}

	strategy, err := pagingStrategy(sheet, opts.PageSize)
	if err != nil {
		return nil, err
	}
	service := NewPagingRangeService(strategy)
	ranges := service.GetPagingRanges()
	page := max(opts.Page, 1)
	if len(ranges) == 0 {
		return nil, errors.Wrap(office.ErrOutOfRange, "sheet has no data to page")
	}
	if page > len(ranges) {
		return nil, office.OutOfRange("page %d of %d", page, len(ranges))
	}
	current := ranges[page-1]
	values, err := readValues(sheet, current)
	if err != nil {
		return nil, err
	}
	return &RangeValues{
		Range:     current,
		Values:    values,
		Page:      page,
		Pages:     len(ranges),
		Ranges:    ranges,
		NextRange: service.FindNextRange(ranges, current),
	}, nil
}

// readValues reads a range of at most MaxReadCells cells.
func readValues(sheet com.Object, rangeStr string) ([][]any, error) {
	startCol, startRow, endCol, endRow, err := ParseRange(rangeStr)
	if err != nil {
		return nil, err
	}
	rows, cols := endRow-startRow+1, endCol-startCol+1
	if rows*cols > MaxReadCells {
		return nil, office.InvalidArgument("range %s has %d cells, more than %d; omit range to read page by page", rangeStr, rows*cols, MaxReadCells)
	}
	return readCells(sheet, rangeStr, rows, cols)
}

// readCells reads a range cell by cell. Multi-cell Value is a 2-D
// SAFEARRAY, which the automation layer only converts in one dimension.
func readCells(sheet com.Object, rangeStr string, rows, cols int) ([][]any, error) {
	r, err := sheet.GetObject("Range", NormalizeRange(rangeStr))
	if err != nil {
		return nil, err
	}
	defer r.Release()

	values := make([][]any, rows)
	for i := range rows {
		values[i] = make([]any, cols)
		for j := range cols {
			cell, err := r.GetObject("Cells", i+1, j+1)
			if err != nil {
				return nil, err
			}
			v, err := cell.Get("Value")
			cell.Release()
			if err != nil {
				return nil, err
			}
			values[i][j] = com.JSONValue(v)
		}
	}
	return values, nil
}
