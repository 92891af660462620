package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/negokaz/office-server/internal/com"
)

// DefaultPageSize is the number of cells read per page of a used range.
const DefaultPageSize = 500

// PagingStrategy defines the interface for calculating paging ranges.
type PagingStrategy interface {
	// CalculatePagingRanges returns a list of available paging ranges.
	CalculatePagingRanges() []string
}

// calculateFixedSizeRanges splits dimension into row bands of at most
// pageSize cells.
func calculateFixedSizeRanges(dimension string, pageSize int) []string {
	startCol, startRow, endCol, endRow, err := ParseRange(dimension)
	if err != nil {
		return []string{}
	}

	totalCols := endCol - startCol + 1
	rowsPerPage := pageSize / totalCols
	if rowsPerPage < 1 {
		rowsPerPage = 1
	}

	var ranges []string
	currentRow := startRow
	for currentRow <= endRow {
		pageEndRow := currentRow + rowsPerPage - 1
		if pageEndRow > endRow {
			pageEndRow = endRow
		}

		startRange, err := excelize.CoordinatesToCellName(startCol, currentRow)
		if err != nil {
			return ranges
		}
		endRange, err := excelize.CoordinatesToCellName(endCol, pageEndRow)
		if err != nil {
			return ranges
		}
		ranges = append(ranges, fmt.Sprintf("%s:%s", startRange, endRange))

		currentRow = pageEndRow + 1
	}

	return ranges
}

// FixedSizePagingStrategy pages a dimension by cell count.
type FixedSizePagingStrategy struct {
	pageSize  int
	dimension string
}

func NewFixedSizePagingStrategy(pageSize int, dimension string) *FixedSizePagingStrategy {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &FixedSizePagingStrategy{pageSize: pageSize, dimension: dimension}
}

func (s *FixedSizePagingStrategy) CalculatePagingRanges() []string {
	return calculateFixedSizeRanges(s.dimension, s.pageSize)
}

// PrintAreaPagingStrategy pages the print area at its horizontal page breaks.
type PrintAreaPagingStrategy struct {
	printArea string
	breaks    []int
}

func NewPrintAreaPagingStrategy(printArea string, breaks []int) *PrintAreaPagingStrategy {
	return &PrintAreaPagingStrategy{printArea: printArea, breaks: breaks}
}

func (s *PrintAreaPagingStrategy) calculateRangesFromBreaks(printArea string, breaks []int) []string {
	if printArea == "" {
		return []string{}
	}

	startCol, startRow, endCol, endRow, err := ParseRange(printArea)
	if err != nil {
		return []string{}
	}

	ranges := make([]string, 0)
	currentRow := startRow

	for _, breakRow := range breaks {
		if breakRow <= currentRow || breakRow > endRow {
			continue
		}
		r, err := rangeName(startCol, currentRow, endCol, breakRow-1)
		if err != nil {
			return ranges
		}
		ranges = append(ranges, r)
		currentRow = breakRow
	}

	if currentRow <= endRow {
		r, err := rangeName(startCol, currentRow, endCol, endRow)
		if err != nil {
			return ranges
		}
		ranges = append(ranges, r)
	}

	return ranges
}

func (s *PrintAreaPagingStrategy) CalculatePagingRanges() []string {
	return s.calculateRangesFromBreaks(s.printArea, s.breaks)
}

// pagingStrategy pages the print area when the sheet has one and the used
// range otherwise.
func pagingStrategy(sheet com.Object, pageSize int) (PagingStrategy, error) {
	s := com.NewScope()
	defer s.Release()

	pageSetup, err := s.GetObject(sheet, "PageSetup")
	if err != nil {
		return nil, err
	}
	printArea, err := com.String(pageSetup, "PrintArea")
	if err != nil {
		return nil, err
	}
	// Multi-area print ranges (A1:B2,D1:E5) fall back to the used range.
	if _, _, _, _, err := ParseRange(printArea); printArea != "" && err == nil {
		breaks, err := pageBreakRows(s, sheet)
		if err == nil {
			return NewPrintAreaPagingStrategy(printArea, breaks), nil
		}
	}

	dimension, err := usedRange(s, sheet)
	if err != nil {
		return nil, err
	}
	return NewFixedSizePagingStrategy(pageSize, dimension), nil
}

func pageBreakRows(s *com.Scope, sheet com.Object) ([]int, error) {
	pageBreaks, err := s.GetObject(sheet, "HPageBreaks")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(pageBreaks, "Count")
	if err != nil {
		return nil, err
	}
	rows := make([]int, 0, count)
	for i := 1; i <= count; i++ {
		pageBreak, err := s.GetObject(pageBreaks, "Item", i)
		if err != nil {
			return nil, err
		}
		location, err := s.GetObject(pageBreak, "Location")
		if err != nil {
			return nil, err
		}
		row, err := com.Int(location, "Row")
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// usedRange returns the used range of sheet as A1:B2.
func usedRange(s *com.Scope, sheet com.Object) (string, error) {
	used, err := s.GetObject(sheet, "UsedRange")
	if err != nil {
		return "", err
	}
	// RowAbsolute, ColumnAbsolute
	address, err := com.String(used, "Address", false, false)
	if err != nil {
		return "", err
	}
	return NormalizeRange(address), nil
}

// PagingRangeService provides paging operations.
type PagingRangeService struct {
	strategy PagingStrategy
}

func NewPagingRangeService(strategy PagingStrategy) *PagingRangeService {
	return &PagingRangeService{strategy: strategy}
}

// GetPagingRanges returns a list of available paging ranges.
func (s *PagingRangeService) GetPagingRanges() []string {
	return s.strategy.CalculatePagingRanges()
}

// FindNextRange returns the next range in the sequence after the current range.
func (s *PagingRangeService) FindNextRange(allRanges []string, currentRange string) string {
	for i, r := range allRanges {
		if r == currentRange && i+1 < len(allRanges) {
			return allRanges[i+1]
		}
	}
	return ""
}
