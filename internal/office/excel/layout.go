package excel

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

const (
	maxColumnWidth = 255
	maxRowHeight   = 409
)

// Size describes a column width or row height change. AutoFit wins over
// the explicit size.
type Size struct {
	Value   *float64
	AutoFit bool
}

// Resized reports the columns or rows an operation changed.
type Resized struct {
	Columns string `json:"columns,omitempty"`
	Rows    string `json:"rows,omitempty"`
}

func onSheet(app com.Object, sheetName string, fn func(s *com.Scope, sheet com.Object) error) error {
	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return err
	}
	return fn(s, sheet)
}

func resize(target com.Object, property string, size Size) error {
	if size.AutoFit {
		_, err := target.Call("AutoFit")
		return err
	}
	return target.Put(property, *size.Value)
}

// SetColumnWidth sets the width of a column or column span such as "B:D".
func SetColumnWidth(app com.Object, sheetName, columns string, size Size) (*Resized, error) {
	if !size.AutoFit && (size.Value == nil || *size.Value < 0 || *size.Value > maxColumnWidth) {
		return nil, office.InvalidArgument("width must be between 0 and %d, or auto_fit set", maxColumnWidth)
	}
	start, end, err := ParseColumns(columns)
	if err != nil {
		return nil, err
	}
	span, err := columnSpan(start, end)
	if err != nil {
		return nil, err
	}
	err = onSheet(app, sheetName, func(s *com.Scope, sheet com.Object) error {
		target, err := s.GetObject(sheet, "Columns", span)
		if err != nil {
			return err
		}
		return errors.Wrapf(resize(target, "ColumnWidth", size), "failed to resize columns %s", span)
	})
	if err != nil {
		return nil, err
	}
	return &Resized{Columns: span}, nil
}

// SetRowHeight sets the height of row through endRow (row when endRow is 0).
func SetRowHeight(app com.Object, sheetName string, row, endRow int, size Size) (*Resized, error) {
	if !size.AutoFit && (size.Value == nil || *size.Value < 0 || *size.Value > maxRowHeight) {
		return nil, office.InvalidArgument("height must be between 0 and %d, or auto_fit set", maxRowHeight)
	}
	if endRow == 0 {
		endRow = row
	}
	span, err := rowSpan(row, endRow)
	if err != nil {
		return nil, err
	}
	err = onSheet(app, sheetName, func(s *com.Scope, sheet com.Object) error {
		target, err := s.GetObject(sheet, "Rows", span)
		if err != nil {
			return err
		}
		return errors.Wrapf(resize(target, "RowHeight", size), "failed to resize rows %s", span)
	})
	if err != nil {
		return nil, err
	}
	return &Resized{Rows: span}, nil
}

// InsertRows inserts count empty rows above row.
func InsertRows(app com.Object, sheetName string, row, count int) (*Resized, error) {
	return shiftRows(app, sheetName, row, count, "Insert")
}

// DeleteRows deletes count rows starting at row.
func DeleteRows(app com.Object, sheetName string, row, count int) (*Resized, error) {
	return shiftRows(app, sheetName, row, count, "Delete")
}

func shiftRows(app com.Object, sheetName string, row, count int, method string) (*Resized, error) {
	count = max(count, 1)
	span, err := rowSpan(row, row+count-1)
	if err != nil {
		return nil, err
	}
	err = onSheet(app, sheetName, func(s *com.Scope, sheet com.Object) error {
		rows, err := s.GetObject(sheet, "Rows", span)
		if err != nil {
			return err
		}
		_, err = rows.Call(method)
		return errors.Wrapf(err, "failed to %s rows %s", method, span)
	})
	if err != nil {
		return nil, err
	}
	return &Resized{Rows: span}, nil
}

// InsertColumns inserts count empty columns left of column.
func InsertColumns(app com.Object, sheetName, column string, count int) (*Resized, error) {
	return shiftColumns(app, sheetName, column, count, "Insert")
}

// DeleteColumns deletes count columns starting at column.
func DeleteColumns(app com.Object, sheetName, column string, count int) (*Resized, error) {
	return shiftColumns(app, sheetName, column, count, "Delete")
}

func shiftColumns(app com.Object, sheetName, column string, count int, method string) (*Resized, error) {
	count = max(count, 1)
	start, end, err := ParseColumns(column)
	if err != nil {
		return nil, err
	}
	if start != end {
		return nil, office.InvalidArgument("column must be a single column, got %s", column)
	}
	if start+count-1 > excelize.MaxColumns {
		return nil, office.InvalidArgument("%d columns from %s exceed the sheet", count, column)
	}
	span, err := columnSpan(start, start+count-1)
	if err != nil {
		return nil, err
	}
	err = onSheet(app, sheetName, func(s *com.Scope, sheet com.Object) error {
		columns, err := s.GetObject(sheet, "Columns", span)
		if err != nil {
			return err
		}
		_, err = columns.Call(method)
		return errors.Wrapf(err, "failed to %s columns %s", method, span)
	})
	if err != nil {
		return nil, err
	}
	return &Resized{Columns: span}, nil
}

// MergeCells merges a range into one cell. Only the upper-left value is kept.
func MergeCells(app com.Object, sheetName, rangeStr string) (*Formatted, error) {
	return onRange(app, sheetName, rangeStr, func(s *com.Scope, r com.Object) error {
		_, err := r.Call("Merge")
		return errors.Wrapf(err, "failed to merge %s", rangeStr)
	})
}

// UnmergeCells splits merged cells in a range.
func UnmergeCells(app com.Object, sheetName, rangeStr string) (*Formatted, error) {
	return onRange(app, sheetName, rangeStr, func(s *com.Scope, r com.Object) error {
		_, err := r.Call("UnMerge")
		return errors.Wrapf(err, "failed to unmerge %s", rangeStr)
	})
}

// Filter describes an auto filter change.
type Filter struct {
	Range    string
	Remove   bool
	Field    int
	Criteria string
}

// FilterState reports the auto filter of a sheet.
type FilterState struct {
	Range   string `json:"range,omitempty"`
	Enabled bool   `json:"enabled"`
}

// AutoFilter turns the auto filter on for a range, optionally filtering
// one column, or removes it from the sheet.
func AutoFilter(app com.Object, sheetName string, f Filter) (*FilterState, error) {
	if !f.Remove {
		if f.Range == "" {
			return nil, office.InvalidArgument("range is required unless remove is set")
		}
		startCol, _, endCol, _, err := ParseRange(f.Range)
		if err != nil {
			return nil, err
		}
		if f.Field < 0 || f.Field > endCol-startCol+1 {
			return nil, office.OutOfRange("field %d is outside %s", f.Field, f.Range)
		}
	}
	state := &FilterState{}
	err := onSheet(app, sheetName, func(s *com.Scope, sheet com.Object) error {
		// Range.AutoFilter without arguments toggles, so clear first.
		enabled, err := com.Bool(sheet, "AutoFilterMode")
		if err != nil {
			return err
		}
		if enabled {
			if err := sheet.Put("AutoFilterMode", false); err != nil {
				return errors.Wrap(err, "failed to remove auto filter")
			}
		}
		if f.Remove {
			return nil
		}
		r, err := s.GetObject(sheet, "Range", f.Range)
		if err != nil {
			return err
		}
		switch {
		case f.Field > 0 && f.Criteria != "":
			_, err = r.Call("AutoFilter", f.Field, f.Criteria)
		case f.Field > 0:
			_, err = r.Call("AutoFilter", f.Field)
		default:
			_, err = r.Call("AutoFilter")
		}
		if err != nil {
			return errors.Wrapf(err, "failed to filter %s", f.Range)
		}
		state.Range = NormalizeRange(f.Range)
		state.Enabled = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Panes reports the frozen rows and columns.
type Panes struct {
	Cell    string `json:"cell,omitempty"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Frozen  bool   `json:"frozen"`
}

// FreezePanes freezes the rows above and the columns left of cell, or
// unfreezes the window. Panes belong to the window, so a named sheet is
// activated first.
func FreezePanes(app com.Object, sheetName, cell string, unfreeze bool) (*Panes, error) {
	col, row := 0, 0
	if !unfreeze {
		var err error
		col, row, err = ParseCell(cell)
		if err != nil {
			return nil, err
		}
		if col == 1 && row == 1 {
			return nil, office.InvalidArgument("freezing at A1 freezes nothing; use unfreeze")
		}
	}
	err := onSheet(app, sheetName, func(s *com.Scope, sheet com.Object) error {
		if sheetName != "" {
			if _, err := sheet.Call("Activate"); err != nil {
				return err
			}
		}
		window, err := s.GetObject(app, "ActiveWindow")
		if err != nil {
			return err
		}
		if err := window.Put("FreezePanes", false); err != nil {
			return err
		}
		if unfreeze {
			return office.NewSetter(window).
				Set("SplitColumn", 0).
				Set("SplitRow", 0).
				Err()
		}
		// Splits are relative to the scroll position.
		return errors.Wrapf(office.NewSetter(window).
			Set("ScrollRow", 1).
			Set("ScrollColumn", 1).
			Set("SplitColumn", col-1).
			Set("SplitRow", row-1).
			Set("FreezePanes", true).
			Err(), "failed to freeze panes at %s", cell)
	})
	if err != nil {
		return nil, err
	}
	if unfreeze {
		return &Panes{}, nil
	}
	name, _ := cellName(col, row)
	return &Panes{Cell: name, Rows: row - 1, Columns: col - 1, Frozen: true}, nil
}
