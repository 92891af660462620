package word

import (
	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

const maxTableSize = 100

// Table describes a table inserted at the selection. Rows and Cols default
// to the dimensions of Values.
type Table struct {
	Rows   int
	Cols   int
	Values [][]string
}

// TableInfo reports the inserted table.
type TableInfo struct {
	Rows   int `json:"rows"`
	Cols   int `json:"cols"`
	Tables int `json:"tables"`
}

func (t Table) dimensions() (int, int, error) {
	rows, cols := t.Rows, t.Cols
	if rows == 0 {
		rows = len(t.Values)
	}
	if cols == 0 {
		for _, row := range t.Values {
			cols = max(cols, len(row))
		}
	}
	if rows < 1 || cols < 1 {
		return 0, 0, office.InvalidArgument("table needs at least one row and one column")
	}
	if rows > maxTableSize || cols > maxTableSize {
		return 0, 0, office.InvalidArgument("table size %dx%d exceeds %dx%d", rows, cols, maxTableSize, maxTableSize)
	}
	if len(t.Values) > rows {
		return 0, 0, office.InvalidArgument("%d rows of values do not fit into %d rows", len(t.Values), rows)
	}
	for i, row := range t.Values {
		if len(row) > cols {
			return 0, 0, office.InvalidArgument("row %d has %d values but the table has %d columns", i+1, len(row), cols)
		}
	}
	return rows, cols, nil
}

// AddTable inserts a bordered table at the selection, fills it with Values
// and moves the insertion point to the end of the document.
func AddTable(app com.Object, t Table) (*TableInfo, error) {
	rows, cols, err := t.dimensions()
	if err != nil {
		return nil, err
	}
	s := com.NewScope()
	defer s.Release()
	doc, err := activeDocument(s, app)
	if err != nil {
		return nil, err
	}
	selection, err := s.GetObject(app, "Selection")
	if err != nil {
		return nil, err
	}
	at, err := s.GetObject(selection, "Range")
	if err != nil {
		return nil, err
	}
	tables, err := s.GetObject(doc, "Tables")
	if err != nil {
		return nil, err
	}
	table, err := s.CallObject(tables, "Add", at, rows, cols)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to add %dx%d table", rows, cols)
	}
	borders, err := s.GetObject(table, "Borders")
	if err != nil {
		return nil, err
	}
	if err := borders.Put("Enable", true); err != nil {
		return nil, err
	}
	for i, row := range t.Values {
		for j, value := range row {
			if value == "" {
				continue
			}
			cell, err := s.CallObject(table, "Cell", i+1, j+1)
			if err != nil {
				return nil, err
			}
			r, err := s.GetObject(cell, "Range")
			if err != nil {
				return nil, err
			}
			if err := r.Put("Text", value); err != nil {
				return nil, errors.Wrapf(err, "failed to fill cell (%d,%d)", i+1, j+1)
			}
		}
	}
	if _, err := selection.Call("EndKey", wdStory); err != nil {
		return nil, err
	}
	count, err := com.Int(tables, "Count")
	if err != nil {
		return nil, err
	}
	return &TableInfo{Rows: rows, Cols: cols, Tables: count}, nil
}
