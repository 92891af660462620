package excel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/negokaz/office-server/internal/office"
)

var rangeRegexp = regexp.MustCompile(`^(\$?[A-Z]+\$?\d+)(?::(\$?[A-Z]+\$?\d+))?$`)

// ParseRange parses Excel's range string (e.g. A1:C10 or A1)
func ParseRange(rangeStr string) (int, int, int, int, error) {
	matches := rangeRegexp.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(rangeStr)))
	if matches == nil {
		return 0, 0, 0, 0, office.InvalidArgument("invalid range format: %s", rangeStr)
	}
	startCol, startRow, err := excelize.CellNameToCoordinates(matches[1])
	if err != nil {
		return 0, 0, 0, 0, office.InvalidArgument("%v", err)
	}

	if matches[2] == "" {
		// Single cell case
		return startCol, startRow, startCol, startRow, nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(matches[2])
	if err != nil {
		return 0, 0, 0, 0, office.InvalidArgument("%v", err)
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	return startCol, startRow, endCol, endRow, nil
}

func NormalizeRange(rangeStr string) string {
	startCol, startRow, endCol, endRow, err := ParseRange(rangeStr)
	if err != nil {
		return rangeStr
	}
	startCell, err := excelize.CoordinatesToCellName(startCol, startRow)
	if err != nil {
		return rangeStr
	}
	endCell, err := excelize.CoordinatesToCellName(endCol, endRow)
	if err != nil {
		return rangeStr
	}
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// ParseCell parses a single cell reference such as B3 or $B$3.
func ParseCell(cell string) (int, int, error) {
	startCol, startRow, endCol, endRow, err := ParseRange(cell)
	if err != nil {
		return 0, 0, err
	}
	if startCol != endCol || startRow != endRow {
		return 0, 0, office.InvalidArgument("%s is not a single cell", cell)
	}
	return startCol, startRow, nil
}

// cellName is the inverse of ParseCell.
func cellName(col, row int) (string, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", office.InvalidArgument("%v", err)
	}
	return name, nil
}

// rangeName builds an A1:B2 reference from coordinates.
func rangeName(startCol, startRow, endCol, endRow int) (string, error) {
	start, err := cellName(startCol, startRow)
	if err != nil {
		return "", err
	}
	end, err := cellName(endCol, endRow)
	if err != nil {
		return "", err
	}
	return start + ":" + end, nil
}

// ParseColumns parses a column or a column span, e.g. "B" or "B:D".
func ParseColumns(columns string) (int, int, error) {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(columns)), ":")
	if len(parts) > 2 {
		return 0, 0, office.InvalidArgument("invalid column span: %s", columns)
	}
	numbers := make([]int, len(parts))
	for i, p := range parts {
		n, err := excelize.ColumnNameToNumber(strings.TrimPrefix(p, "$"))
		if err != nil {
			return 0, 0, office.InvalidArgument("invalid column %q", p)
		}
		numbers[i] = n
	}
	start, end := numbers[0], numbers[len(numbers)-1]
	if end < start {
		start, end = end, start
	}
	return start, end, nil
}

// columnSpan formats a column span the way Worksheet.Columns accepts it.
func columnSpan(start, end int) (string, error) {
	startName, err := excelize.ColumnNumberToName(start)
	if err != nil {
		return "", office.InvalidArgument("%v", err)
	}
	endName, err := excelize.ColumnNumberToName(end)
	if err != nil {
		return "", office.InvalidArgument("%v", err)
	}
	return startName + ":" + endName, nil
}

// rowSpan formats a row span the way Worksheet.Rows accepts it.
func rowSpan(start, end int) (string, error) {
	if start < 1 || end > excelize.TotalRows || end < start {
		return "", office.InvalidArgument("invalid row span %d-%d", start, end)
	}
	return strconv.Itoa(start) + ":" + strconv.Itoa(end), nil
}
