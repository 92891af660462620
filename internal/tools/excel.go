package tools

import (
	"context"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office/excel"
)

type ExcelCellArguments struct {
	Sheet string `zog:"sheet"`
	Cell  string `zog:"cell"`
}

var excelCellArgumentsSchema = z.Struct(z.Shape{
	"sheet": z.String(),
	"cell":  z.String().Required(),
})

type ExcelSetFormulaArguments struct {
	Sheet   string `zog:"sheet"`
	Cell    string `zog:"cell"`
	Formula string `zog:"formula"`
}

var excelSetFormulaArgumentsSchema = z.Struct(z.Shape{
	"sheet":   z.String(),
	"cell":    z.String().Required(),
	"formula": z.String().Required(),
})

type ExcelWriteRangeArguments struct {
	Sheet     string `zog:"sheet"`
	StartCell string `zog:"start_cell"`
}

var excelWriteRangeArgumentsSchema = z.Struct(z.Shape{
	"sheet":     z.String(),
	"startCell": z.String().Default("A1"),
})

type ExcelReadRangeArguments struct {
	Sheet    string `zog:"sheet"`
	Range    string `zog:"range"`
	Page     int    `zog:"page"`
	PageSize int    `zog:"page_size"`
}

var excelReadRangeArgumentsSchema = z.Struct(z.Shape{
	"sheet":    z.String(),
	"range":    z.String(),
	"page":     z.Int().GTE(1).Default(1),
	"pageSize": z.Int().GTE(1).LTE(excel.MaxReadCells).Default(excel.DefaultPageSize),
})

type ExcelSheetArguments struct {
	Name string `zog:"name"`
}

var excelSheetArgumentsSchema = z.Struct(z.Shape{
	"name": z.String().Required(),
})

type ExcelRenameSheetArguments struct {
	OldName string `zog:"old_name"`
	NewName string `zog:"new_name"`
}

var excelRenameSheetArgumentsSchema = z.Struct(z.Shape{
	"oldName": z.String().Required(),
	"newName": z.String().Required(),
})

type ExcelFindReplaceArguments struct {
	Sheet           string `zog:"sheet"`
	Find            string `zog:"find"`
	Replace         string `zog:"replace"`
	Range           string `zog:"range"`
	MatchCase       bool   `zog:"match_case"`
	MatchEntireCell bool   `zog:"match_entire_cell"`
}

var excelFindReplaceArgumentsSchema = z.Struct(z.Shape{
	"sheet":           z.String(),
	"find":            z.String().Required(),
	"replace":         z.String(),
	"range":           z.String(),
	"matchCase":       z.Bool().Default(false),
	"matchEntireCell": z.Bool().Default(false),
})

type ExcelClearRangeArguments struct {
	Sheet        string `zog:"sheet"`
	Range        string `zog:"range"`
	ContentsOnly bool   `zog:"contents_only"`
}

var excelClearRangeArgumentsSchema = z.Struct(z.Shape{
	"sheet":        z.String(),
	"range":        z.String().Required(),
	"contentsOnly": z.Bool().Default(false),
})

type ExcelAddChartArguments struct {
	Sheet     string `zog:"sheet"`
	DataRange string `zog:"data_range"`
	ChartType string `zog:"chart_type"`
	Title     string `zog:"title"`
	Position  string `zog:"position"`
}

var excelAddChartArgumentsSchema = z.Struct(z.Shape{
	"sheet":     z.String(),
	"dataRange": z.String().Required(),
	"chartType": z.String().Default("column"),
	"title":     z.String(),
	"position":  z.String(),
})

type ExcelScreenshotArguments struct {
	Sheet    string `zog:"sheet"`
	Range    string `zog:"range"`
	MaxWidth int    `zog:"max_width"`
}

var excelScreenshotArgumentsSchema = z.Struct(z.Shape{
	"sheet":    z.String(),
	"range":    z.String(),
	"maxWidth": maxWidthSchema,
})

func sheetParam() mcp.ToolOption {
	return mcp.WithString("sheet",
		mcp.Description("Sheet name (default: the active sheet)"),
	)
}

func rangeParam(required bool) mcp.ToolOption {
	opts := []mcp.PropertyOption{mcp.Description("Cell range (e.g., \"A1:D5\")")}
	if required {
		opts = append(opts, mcp.Required())
	}
	return mcp.WithString("range", opts...)
}

func (tb *Toolbox) excelTools() []Tool {
	tools := lifecycleTools("/excel", "Excel", documents[*excel.WorkbookInfo]{
		name:    "workbook",
		create:  excel.Create,
		open:    excel.Open,
		save:    excel.Save,
		close:   excel.Close,
		session: tb.Excel,
	})
	tools = append(tools,
		post("/excel/write_cell", "Write a value to a cell; null clears it", tb.excelWriteCell,
			sheetParam(),
			mcp.WithString("cell",
				mcp.Required(),
				mcp.Description("Cell reference (e.g., \"A1\")"),
			),
			withAny("value", "String, number, boolean or null", true),
		),
		post("/excel/read_cell", "Read the value, displayed text and formula of a cell", tb.excelReadCell,
			sheetParam(),
			mcp.WithString("cell",
				mcp.Required(),
				mcp.Description("Cell reference (e.g., \"A1\")"),
			),
		),
		post("/excel/write_range", "Write rows of values starting at a cell; rows may differ in length", tb.excelWriteRange,
			sheetParam(),
			mcp.WithString("start_cell",
				mcp.Description("Top-left cell (default \"A1\")"),
			),
			mcp.WithArray("values",
				mcp.Required(),
				mcp.Description("Values, row by row"),
				mcp.Items(map[string]any{"type": "array"}),
			),
		),
		post("/excel/read_range", "Read the values of a range, or page through the sheet's data when range is omitted", tb.excelReadRange,
			sheetParam(),
			rangeParam(false),
			mcp.WithNumber("page",
				mcp.Description("Page to read when range is omitted (1-based, default 1)"),
			),
			mcp.WithNumber("page_size",
				mcp.Description("Cells per page when range is omitted (default 500)"),
			),
		),
		post("/excel/set_formula", "Set the formula of a cell and return the calculated value", tb.excelSetFormula,
			sheetParam(),
			mcp.WithString("cell",
				mcp.Required(),
				mcp.Description("Cell reference (e.g., \"D5\")"),
			),
			mcp.WithString("formula",
				mcp.Required(),
				mcp.Description("Formula such as \"=SUM(D2:D4)\"; the leading = is optional"),
			),
		),
		get("/excel/get_sheets", "List the sheets of the active workbook", tb.excelGetSheets),
		post("/excel/add_sheet", "Add a sheet after the last one and activate it", tb.excelAddSheet,
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Name of the new sheet"),
			),
		),
		post("/excel/delete_sheet", "Delete a sheet", tb.excelDeleteSheet,
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Sheet to delete"),
			),
		),
		post("/excel/activate_sheet", "Activate a sheet", tb.excelActivateSheet,
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Sheet to activate"),
			),
		),
		post("/excel/rename_sheet", "Rename a sheet", tb.excelRenameSheet,
			mcp.WithString("old_name",
				mcp.Required(),
				mcp.Description("Current sheet name"),
			),
			mcp.WithString("new_name",
				mcp.Required(),
				mcp.Description("New sheet name"),
			),
		),
		post("/excel/find_replace", "Find and replace text in the cells of a range", tb.excelFindReplace,
			sheetParam(),
			mcp.WithString("find",
				mcp.Required(),
				mcp.Description("Text to find"),
			),
			mcp.WithString("replace",
				mcp.Description("Replacement text (default: empty)"),
			),
			mcp.WithString("range",
				mcp.Description("Range to search (default: the used range)"),
			),
			mcp.WithBoolean("match_case",
				mcp.Description("Match case"),
			),
			mcp.WithBoolean("match_entire_cell",
				mcp.Description("Only replace cells whose whole content matches"),
			),
		),
		post("/excel/clear_range", "Clear a range", tb.excelClearRange,
			sheetParam(),
			rangeParam(true),
			mcp.WithBoolean("contents_only",
				mcp.Description("Keep formats and clear values only"),
			),
		),
		post("/excel/add_chart", "Add a chart over a data range", tb.excelAddChart,
			sheetParam(),
			mcp.WithString("data_range",
				mcp.Required(),
				mcp.Description("Data range including headers (e.g., \"A1:C4\")"),
			),
			mcp.WithString("chart_type",
				mcp.Description("Chart type: "+oneOf(excel.ChartTypes())+" (default \"column\")"),
			),
			mcp.WithString("title",
				mcp.Description("Chart title"),
			),
			mcp.WithString("position",
				mcp.Description("Cell the chart's top-left corner is anchored to (default: right of the data)"),
			),
		),
		get("/excel/screenshot", "Render a range (default: the used range) as PNG", tb.excelScreenshot,
			sheetParam(),
			rangeParam(false),
			maxWidthParam(),
		),
	)
	tools = append(tools, tb.excelFormatTools()...)
	return append(tools, tb.excelDataTools()...)
}

func (tb *Toolbox) excelWriteCell(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelCellArguments{}
	if err := parse(excelCellArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	value, ok := args["value"]
	if !ok {
		return nil, &ArgumentError{Issues: map[string][]string{"value": {"is required"}}}
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Cell, error) {
		return excel.WriteCell(app, a.Sheet, a.Cell, value)
	})
}

func (tb *Toolbox) excelReadCell(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelCellArguments{}
	if err := parse(excelCellArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Cell, error) {
		return excel.ReadCell(app, a.Sheet, a.Cell)
	})
}

func (tb *Toolbox) excelWriteRange(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelWriteRangeArguments{}
	if err := parse(excelWriteRangeArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	values, err := table(args, "values")
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, &ArgumentError{Issues: map[string][]string{"values": {"is required"}}}
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Written, error) {
		return excel.WriteRange(app, a.Sheet, a.StartCell, values)
	})
}

func (tb *Toolbox) excelReadRange(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelReadRangeArguments{}
	if err := parse(excelReadRangeArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	opts := excel.ReadOptions{Range: a.Range, Page: a.Page, PageSize: a.PageSize}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.RangeValues, error) {
		return excel.ReadRange(app, a.Sheet, opts)
	})
}

func (tb *Toolbox) excelSetFormula(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelSetFormulaArguments{}
	if err := parse(excelSetFormulaArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Cell, error) {
		return excel.SetFormula(app, a.Sheet, a.Cell, a.Formula)
	})
}

func (tb *Toolbox) excelGetSheets(ctx context.Context, args map[string]any) (any, error) {
	return do(ctx, tb.Excel, excel.GetSheets)
}

func (tb *Toolbox) excelSheetOperation(ctx context.Context, args map[string]any, fn func(app com.Object, name string) (*excel.Sheets, error)) (any, error) {
	a := ExcelSheetArguments{}
	if err := parse(excelSheetArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Sheets, error) {
		return fn(app, a.Name)
	})
}

func (tb *Toolbox) excelAddSheet(ctx context.Context, args map[string]any) (any, error) {
	return tb.excelSheetOperation(ctx, args, excel.AddSheet)
}

func (tb *Toolbox) excelDeleteSheet(ctx context.Context, args map[string]any) (any, error) {
	return tb.excelSheetOperation(ctx, args, excel.DeleteSheet)
}

func (tb *Toolbox) excelActivateSheet(ctx context.Context, args map[string]any) (any, error) {
	return tb.excelSheetOperation(ctx, args, excel.ActivateSheet)
}

func (tb *Toolbox) excelRenameSheet(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelRenameSheetArguments{}
	if err := parse(excelRenameSheetArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Sheets, error) {
		return excel.RenameSheet(app, a.OldName, a.NewName)
	})
}

func (tb *Toolbox) excelFindReplace(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelFindReplaceArguments{}
	if err := parse(excelFindReplaceArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	fr := excel.FindReplace{Find: a.Find, Replace: a.Replace, Range: a.Range, MatchCase: a.MatchCase, MatchEntireCell: a.MatchEntireCell}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.ReplaceResult, error) {
		return excel.Replace(app, a.Sheet, fr)
	})
}

func (tb *Toolbox) excelClearRange(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelClearRangeArguments{}
	if err := parse(excelClearRangeArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Formatted, error) {
		return excel.ClearRange(app, a.Sheet, a.Range, a.ContentsOnly)
	})
}

func (tb *Toolbox) excelAddChart(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelAddChartArguments{}
	if err := parse(excelAddChartArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	chart := excel.Chart{DataRange: a.DataRange, ChartType: a.ChartType, Title: a.Title, Position: a.Position}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.ChartInfo, error) {
		return excel.AddChart(app, a.Sheet, chart)
	})
}

func (tb *Toolbox) excelScreenshot(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelScreenshotArguments{}
	if err := parse(excelScreenshotArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	img, rendered, err := exportImage(ctx, tb.Capturer, tb.Excel, "excel", a.MaxWidth, func(app com.Object, path string) (string, error) {
		return excel.ExportRange(app, a.Sheet, a.Range, path)
	})
	if err != nil {
		return nil, err
	}
	return &Screenshot{Image: img, Source: "range " + rendered}, nil
}
