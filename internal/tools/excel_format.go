package tools

import (
	"context"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
	"github.com/negokaz/office-server/internal/office/excel"
)

type ExcelRangeArguments struct {
	Sheet string `zog:"sheet"`
	Range string `zog:"range"`
}

var excelRangeArgumentsSchema = z.Struct(z.Shape{
	"sheet": z.String(),
	"range": z.String().Required(),
})

type ExcelSetFontArguments struct {
	Sheet     string   `zog:"sheet"`
	Range     string   `zog:"range"`
	FontName  *string  `zog:"font_name"`
	FontSize  *float64 `zog:"font_size"`
	Bold      *bool    `zog:"bold"`
	Italic    *bool    `zog:"italic"`
	Underline *bool    `zog:"underline"`
	Color     *string  `zog:"color"`
}

var excelSetFontArgumentsSchema = z.Struct(z.Shape{
	"sheet":     z.String(),
	"range":     z.String().Required(),
	"fontName":  z.Ptr(z.String()),
	"fontSize":  z.Ptr(z.Float64().GT(0).LTE(409)),
	"bold":      z.Ptr(z.Bool()),
	"italic":    z.Ptr(z.Bool()),
	"underline": z.Ptr(z.Bool()),
	"color":     z.Ptr(z.String()),
})

type ExcelSetAlignmentArguments struct {
	Sheet      string  `zog:"sheet"`
	Range      string  `zog:"range"`
	Horizontal *string `zog:"horizontal"`
	Vertical   *string `zog:"vertical"`
	WrapText   *bool   `zog:"wrap_text"`
}

var excelSetAlignmentArgumentsSchema = z.Struct(z.Shape{
	"sheet":      z.String(),
	"range":      z.String().Required(),
	"horizontal": z.Ptr(z.String()),
	"vertical":   z.Ptr(z.String()),
	"wrapText":   z.Ptr(z.Bool()),
})

type ExcelSetColumnWidthArguments struct {
	Sheet   string   `zog:"sheet"`
	Column  string   `zog:"column"`
	Width   *float64 `zog:"width"`
	AutoFit bool     `zog:"auto_fit"`
}

var excelSetColumnWidthArgumentsSchema = z.Struct(z.Shape{
	"sheet":   z.String(),
	"column":  z.String().Required(),
	"width":   z.Ptr(z.Float64()),
	"autoFit": z.Bool().Default(false),
})

type ExcelSetRowHeightArguments struct {
	Sheet   string   `zog:"sheet"`
	Row     int      `zog:"row"`
	EndRow  int      `zog:"end_row"`
	Height  *float64 `zog:"height"`
	AutoFit bool     `zog:"auto_fit"`
}

var excelSetRowHeightArgumentsSchema = z.Struct(z.Shape{
	"sheet":   z.String(),
	"row":     z.Int().GTE(1).Required(),
	"endRow":  z.Int().GTE(1),
	"height":  z.Ptr(z.Float64()),
	"autoFit": z.Bool().Default(false),
})

type ExcelSetFillArguments struct {
	Sheet string `zog:"sheet"`
	Range string `zog:"range"`
	Color string `zog:"color"`
}

var excelSetFillArgumentsSchema = z.Struct(z.Shape{
	"sheet": z.String(),
	"range": z.String().Required(),
	"color": z.String().Required(),
})

type ExcelSetBorderArguments struct {
	Sheet string  `zog:"sheet"`
	Range string  `zog:"range"`
	Style string  `zog:"style"`
	Edges string  `zog:"edges"`
	Color *string `zog:"color"`
}

var excelSetBorderArgumentsSchema = z.Struct(z.Shape{
	"sheet": z.String(),
	"range": z.String().Required(),
	"style": z.String().Default("thin"),
	"edges": z.String().Default("all"),
	"color": z.Ptr(z.String()),
})

type ExcelSetNumberFormatArguments struct {
	Sheet  string `zog:"sheet"`
	Range  string `zog:"range"`
	Format string `zog:"format"`
}

var excelSetNumberFormatArgumentsSchema = z.Struct(z.Shape{
	"sheet":  z.String(),
	"range":  z.String().Required(),
	"format": z.String().Required(),
})

type ExcelRowsArguments struct {
	Sheet string `zog:"sheet"`
	Row   int    `zog:"row"`
	Count int    `zog:"count"`
}

var excelRowsArgumentsSchema = z.Struct(z.Shape{
	"sheet": z.String(),
	"row":   z.Int().GTE(1).Required(),
	"count": z.Int().GTE(1).Default(1),
})

type ExcelColumnsArguments struct {
	Sheet  string `zog:"sheet"`
	Column string `zog:"column"`
	Count  int    `zog:"count"`
}

var excelColumnsArgumentsSchema = z.Struct(z.Shape{
	"sheet":  z.String(),
	"column": z.String().Required(),
	"count":  z.Int().GTE(1).Default(1),
})

type ExcelAutoFilterArguments struct {
	Sheet    string `zog:"sheet"`
	Range    string `zog:"range"`
	Remove   bool   `zog:"remove"`
	Field    int    `zog:"field"`
	Criteria string `zog:"criteria"`
}

var excelAutoFilterArgumentsSchema = z.Struct(z.Shape{
	"sheet":    z.String(),
	"range":    z.String(),
	"remove":   z.Bool().Default(false),
	"field":    z.Int().GTE(1),
	"criteria": z.String(),
})

type ExcelFreezePanesArguments struct {
	Sheet    string `zog:"sheet"`
	Cell     string `zog:"cell"`
	Unfreeze bool   `zog:"unfreeze"`
}

var excelFreezePanesArgumentsSchema = z.Struct(z.Shape{
	"sheet":    z.String(),
	"cell":     z.String(),
	"unfreeze": z.Bool().Default(false),
})

func (tb *Toolbox) excelFormatTools() []Tool {
	return []Tool{
		post("/excel/set_font", "Set the font of a range", tb.excelSetFont,
			withParams([]mcp.ToolOption{sheetParam(), rangeParam(true)}, fontParams())...,
		),
		post("/excel/set_alignment", "Set the alignment of a range", tb.excelSetAlignment,
			sheetParam(),
			rangeParam(true),
			mcp.WithString("horizontal",
				mcp.Description("Horizontal alignment: "+oneOf(excel.HorizontalAlignments())),
			),
			mcp.WithString("vertical",
				mcp.Description("Vertical alignment: "+oneOf(excel.VerticalAlignments())),
			),
			mcp.WithBoolean("wrap_text",
				mcp.Description("Wrap text in the cells"),
			),
		),
		post("/excel/set_column_width", "Set the width of a column or column span, or fit it to the contents", tb.excelSetColumnWidth,
			sheetParam(),
			mcp.WithString("column",
				mcp.Required(),
				mcp.Description("Column (\"B\") or span (\"B:D\")"),
			),
			mcp.WithNumber("width",
				mcp.Description("Width in characters (0-255)"),
			),
			mcp.WithBoolean("auto_fit",
				mcp.Description("Fit the width to the contents instead"),
			),
		),
		post("/excel/set_row_height", "Set the height of one or more rows, or fit it to the contents", tb.excelSetRowHeight,
			sheetParam(),
			mcp.WithNumber("row",
				mcp.Required(),
				mcp.Description("Starting row number (1-based)"),
			),
			mcp.WithNumber("end_row",
				mcp.Description("Ending row number (1-based, defaults to row for single row)"),
			),
			mcp.WithNumber("height",
				mcp.Description("Row height in points (0-409)"),
			),
			mcp.WithBoolean("auto_fit",
				mcp.Description("Fit the height to the contents instead"),
			),
		),
		post("/excel/set_fill", "Set the background color of a range", tb.excelSetFill,
			sheetParam(),
			rangeParam(true),
			mcp.WithString("color",
				mcp.Required(),
				mcp.Description("Fill color as #RRGGBB, or \"none\" to clear"),
			),
		),
		post("/excel/set_border", "Draw borders on a range", tb.excelSetBorder,
			sheetParam(),
			rangeParam(true),
			mcp.WithString("style",
				mcp.Description("Line style: "+oneOf(excel.BorderStyles())+" (default \"thin\")"),
			),
			mcp.WithString("edges",
				mcp.Description("\"all\", \"outline\", \"inside\" or a comma separated list of left, top, bottom, right, inside_vertical, inside_horizontal (default \"all\")"),
			),
			mcp.WithString("color",
				mcp.Description("Line color as #RRGGBB"),
			),
		),
		post("/excel/set_number_format", "Set the number format of a range", tb.excelSetNumberFormat,
			sheetParam(),
			rangeParam(true),
			mcp.WithString("format",
				mcp.Required(),
				mcp.Description("Number format code (e.g., \"#,##0\")"),
			),
		),
		post("/excel/merge_cells", "Merge a range into one cell", tb.excelMergeCells,
			sheetParam(),
			rangeParam(true),
		),
		post("/excel/unmerge_cells", "Split merged cells in a range", tb.excelUnmergeCells,
			sheetParam(),
			rangeParam(true),
		),
		post("/excel/insert_row", "Insert empty rows above a row", tb.excelInsertRows, rowsParams()...),
		post("/excel/delete_row", "Delete rows", tb.excelDeleteRows, rowsParams()...),
		post("/excel/insert_column", "Insert empty columns left of a column", tb.excelInsertColumns, columnsParams()...),
		post("/excel/delete_column", "Delete columns", tb.excelDeleteColumns, columnsParams()...),
		post("/excel/auto_filter", "Turn on the auto filter for a range, optionally filtering a column, or remove it", tb.excelAutoFilter,
			sheetParam(),
			rangeParam(false),
			mcp.WithBoolean("remove",
				mcp.Description("Remove the auto filter of the sheet"),
			),
			mcp.WithNumber("field",
				mcp.Description("Column to filter, 1-based within the range"),
			),
			mcp.WithString("criteria",
				mcp.Description("Filter criteria (e.g., \">100\")"),
			),
		),
		post("/excel/freeze_panes", "Freeze the rows above and the columns left of a cell, or unfreeze", tb.excelFreezePanes,
			sheetParam(),
			mcp.WithString("cell",
				mcp.Description("Top-left cell of the scrolling area (e.g., \"B2\" freezes row 1 and column A)"),
			),
			mcp.WithBoolean("unfreeze",
				mcp.Description("Remove frozen panes"),
			),
		),
	}
}

func rowsParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		sheetParam(),
		mcp.WithNumber("row",
			mcp.Required(),
			mcp.Description("Row number (1-based)"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of rows (default 1)"),
		),
	}
}

func columnsParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		sheetParam(),
		mcp.WithString("column",
			mcp.Required(),
			mcp.Description("Column letter (e.g., \"A\")"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of columns (default 1)"),
		),
	}
}

// excelOnRange parses a sheet and range and runs fn on them.
func (tb *Toolbox) excelOnRange(ctx context.Context, args map[string]any, fn func(app com.Object, sheet, rangeStr string) (*excel.Formatted, error)) (any, error) {
	a := ExcelRangeArguments{}
	if err := parse(excelRangeArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Formatted, error) {
		return fn(app, a.Sheet, a.Range)
	})
}

func (tb *Toolbox) excelSetFont(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelSetFontArguments{}
	if err := parse(excelSetFontArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	font := office.Font{Name: a.FontName, Size: a.FontSize, Bold: a.Bold, Italic: a.Italic, Underline: a.Underline, Color: a.Color}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Formatted, error) {
		return excel.SetFont(app, a.Sheet, a.Range, font)
	})
}

func (tb *Toolbox) excelSetAlignment(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelSetAlignmentArguments{}
	if err := parse(excelSetAlignmentArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	alignment := excel.Alignment{Horizontal: a.Horizontal, Vertical: a.Vertical, WrapText: a.WrapText}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Formatted, error) {
		return excel.SetAlignment(app, a.Sheet, a.Range, alignment)
	})
}

func (tb *Toolbox) excelSetColumnWidth(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelSetColumnWidthArguments{}
	if err := parse(excelSetColumnWidthArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	size := excel.Size{Value: a.Width, AutoFit: a.AutoFit}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Resized, error) {
		return excel.SetColumnWidth(app, a.Sheet, a.Column, size)
	})
}

func (tb *Toolbox) excelSetRowHeight(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelSetRowHeightArguments{}
	if err := parse(excelSetRowHeightArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	size := excel.Size{Value: a.Height, AutoFit: a.AutoFit}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Resized, error) {
		return excel.SetRowHeight(app, a.Sheet, a.Row, a.EndRow, size)
	})
}

func (tb *Toolbox) excelSetFill(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelSetFillArguments{}
	if err := parse(excelSetFillArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Formatted, error) {
		return excel.SetFill(app, a.Sheet, a.Range, a.Color)
	})
}

func (tb *Toolbox) excelSetBorder(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelSetBorderArguments{}
	if err := parse(excelSetBorderArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	border := excel.Border{Style: a.Style, Edges: a.Edges, Color: a.Color}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Formatted, error) {
		return excel.SetBorder(app, a.Sheet, a.Range, border)
	})
}

func (tb *Toolbox) excelSetNumberFormat(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelSetNumberFormatArguments{}
	if err := parse(excelSetNumberFormatArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Formatted, error) {
		return excel.SetNumberFormat(app, a.Sheet, a.Range, a.Format)
	})
}

func (tb *Toolbox) excelMergeCells(ctx context.Context, args map[string]any) (any, error) {
	return tb.excelOnRange(ctx, args, excel.MergeCells)
}

func (tb *Toolbox) excelUnmergeCells(ctx context.Context, args map[string]any) (any, error) {
	return tb.excelOnRange(ctx, args, excel.UnmergeCells)
}

func (tb *Toolbox) excelShiftRows(ctx context.Context, args map[string]any, fn func(app com.Object, sheet string, row, count int) (*excel.Resized, error)) (any, error) {
	a := ExcelRowsArguments{}
	if err := parse(excelRowsArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Resized, error) {
		return fn(app, a.Sheet, a.Row, a.Count)
	})
}

func (tb *Toolbox) excelInsertRows(ctx context.Context, args map[string]any) (any, error) {
	return tb.excelShiftRows(ctx, args, excel.InsertRows)
}

func (tb *Toolbox) excelDeleteRows(ctx context.Context, args map[string]any) (any, error) {
	return tb.excelShiftRows(ctx, args, excel.DeleteRows)
}

func (tb *Toolbox) excelShiftColumns(ctx context.Context, args map[string]any, fn func(app com.Object, sheet, column string, count int) (*excel.Resized, error)) (any, error) {
	a := ExcelColumnsArguments{}
	if err := parse(excelColumnsArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Resized, error) {
		return fn(app, a.Sheet, a.Column, a.Count)
	})
}

func (tb *Toolbox) excelInsertColumns(ctx context.Context, args map[string]any) (any, error) {
	return tb.excelShiftColumns(ctx, args, excel.InsertColumns)
}

func (tb *Toolbox) excelDeleteColumns(ctx context.Context, args map[string]any) (any, error) {
	return tb.excelShiftColumns(ctx, args, excel.DeleteColumns)
}

func (tb *Toolbox) excelAutoFilter(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelAutoFilterArguments{}
	if err := parse(excelAutoFilterArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	filter := excel.Filter{Range: a.Range, Remove: a.Remove, Field: a.Field, Criteria: a.Criteria}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.FilterState, error) {
		return excel.AutoFilter(app, a.Sheet, filter)
	})
}

func (tb *Toolbox) excelFreezePanes(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelFreezePanesArguments{}
	if err := parse(excelFreezePanesArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	if a.Cell == "" && !a.Unfreeze {
		return nil, &ArgumentError{Issues: map[string][]string{"cell": {"is required unless unfreeze is true"}}}
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Panes, error) {
		return excel.FreezePanes(app, a.Sheet, a.Cell, a.Unfreeze)
	})
}
