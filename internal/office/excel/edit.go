package excel

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// XlLookAt
const (
	xlWhole = 1
	xlPart  = 2
)

const xlByRows = 1

// FindReplace describes a find-and-replace. An empty Range searches the
// used range of the sheet.
type FindReplace struct {
	Find            string
	Replace         string
	Range           string
	MatchCase       bool
	MatchEntireCell bool
}

// ReplaceResult reports a find-and-replace.
type ReplaceResult struct {
	Range    string `json:"range"`
	Replaced bool   `json:"replaced"`
	Cells    int    `json:"cells"`
}

var wildcardEscaper = strings.NewReplacer("~", "~~", "*", "~*", "?", "~?")

// countPattern is the COUNTIF criteria matching the cells Replace changes.
func countPattern(find string, entireCell bool) string {
	escaped := wildcardEscaper.Replace(find)
	if entireCell {
		return escaped
	}
	return "*" + escaped + "*"
}

// Replace replaces text in the cells of a range. Find is literal text, not
// an Excel wildcard pattern. Cells counts the matching text cells before
// the replacement; COUNTIF ignores case.
func Replace(app com.Object, sheetName string, fr FindReplace) (*ReplaceResult, error) {
	if fr.Find == "" {
		return nil, office.InvalidArgument("find text is empty")
	}
	if fr.Range != "" {
		if _, _, _, _, err := ParseRange(fr.Range); err != nil {
			return nil, err
		}
	}
	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return nil, err
	}
	target := fr.Range
	if target == "" {
		if target, err = usedRange(s, sheet); err != nil {
			return nil, err
		}
	}
	r, err := s.GetObject(sheet, "Range", target)
	if err != nil {
		return nil, err
	}
	functions, err := s.GetObject(app, "WorksheetFunction")
	if err != nil {
		return nil, err
	}
	count, err := functions.Call("CountIf", r, countPattern(fr.Find, fr.MatchEntireCell))
	if err != nil {
		return nil, err
	}
	cells, _ := com.ToInt(count)

	lookAt := xlPart
	if fr.MatchEntireCell {
		lookAt = xlWhole
	}
	// What, Replacement, LookAt, SearchOrder, MatchCase
	replaced, err := r.Call("Replace", wildcardEscaper.Replace(fr.Find), fr.Replace, lookAt, xlByRows, fr.MatchCase)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to replace %q", fr.Find)
	}
	return &ReplaceResult{Range: NormalizeRange(target), Replaced: com.ToBool(replaced), Cells: cells}, nil
}

// ClearRange clears the contents, and unless contentsOnly the formats, of
// a range.
func ClearRange(app com.Object, sheetName, rangeStr string, contentsOnly bool) (*Formatted, error) {
	method := "Clear"
	if contentsOnly {
		method = "ClearContents"
	}
	return onRange(app, sheetName, rangeStr, func(s *com.Scope, r com.Object) error {
		_, err := r.Call(method)
		return errors.Wrapf(err, "failed to clear %s", rangeStr)
	})
}

// XlChartType
var chartTypes = map[string]int{
	"column":  51,
	"bar":     57,
	"line":    4,
	"pie":     5,
	"area":    1,
	"scatter": -4169,
}

// ChartTypes lists the accepted chart types.
func ChartTypes() []string {
	return []string{"column", "bar", "line", "pie", "area", "scatter"}
}

const (
	chartWidth  = 480.0
	chartHeight = 288.0
)

// Chart describes a chart over DataRange. Position is the cell the top-left
// corner is anchored to; by default the chart is placed right of the data.
type Chart struct {
	DataRange string
	ChartType string
	Title     string
	Position  string
}

// ChartInfo reports an added chart.
type ChartInfo struct {
	Name      string `json:"name"`
	ChartType string `json:"chart_type"`
	DataRange string `json:"data_range"`
	Position  string `json:"position"`
}

// AddChart embeds a chart in the sheet.
func AddChart(app com.Object, sheetName string, c Chart) (*ChartInfo, error) {
	chartName := strings.ToLower(c.ChartType)
	switch chartName {
	case "", "col":
		chartName = "column"
	}
	chartType, ok := chartTypes[chartName]
	if !ok {
		return nil, office.InvalidArgument("unknown chart type %q", c.ChartType)
	}
	_, startRow, endCol, _, err := ParseRange(c.DataRange)
	if err != nil {
		return nil, err
	}
	position := c.Position
	if position == "" {
		if position, err = cellName(endCol+2, startRow); err != nil {
			return nil, err
		}
	} else if _, _, err := ParseCell(position); err != nil {
		return nil, err
	}

	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return nil, err
	}
	anchor, err := s.GetObject(sheet, "Range", position)
	if err != nil {
		return nil, err
	}
	left, err := com.Float(anchor, "Left")
	if err != nil {
		return nil, err
	}
	top, err := com.Float(anchor, "Top")
	if err != nil {
		return nil, err
	}
	source, err := s.GetObject(sheet, "Range", c.DataRange)
	if err != nil {
		return nil, err
	}
	chartObjects, err := s.CallObject(sheet, "ChartObjects")
	if err != nil {
		return nil, err
	}
	chartObject, err := s.CallObject(chartObjects, "Add", left, top, chartWidth, chartHeight)
	if err != nil {
		return nil, errors.Wrap(err, "failed to add chart")
	}
	chart, err := s.GetObject(chartObject, "Chart")
	if err != nil {
		return nil, err
	}
	if _, err := chart.Call("SetSourceData", source); err != nil {
		return nil, errors.Wrapf(err, "failed to chart %s", c.DataRange)
	}
	if err := chart.Put("ChartType", chartType); err != nil {
		return nil, err
	}
	if c.Title != "" {
		if err := chart.Put("HasTitle", true); err != nil {
			return nil, err
		}
		title, err := s.GetObject(chart, "ChartTitle")
		if err != nil {
			return nil, err
		}
		if err := title.Put("Text", c.Title); err != nil {
			return nil, err
		}
	}
	name, err := com.String(chartObject, "Name")
	if err != nil {
		return nil, err
	}
	return &ChartInfo{Name: name, ChartType: chartName, DataRange: NormalizeRange(c.DataRange), Position: position}, nil
}
