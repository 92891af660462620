package tools

import (
	"context"
	"encoding/json"
	"os"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office/excel"
)

type ExcelAddCommentArguments struct {
	Sheet  string `zog:"sheet"`
	Cell   string `zog:"cell"`
	Text   string `zog:"text"`
	Author string `zog:"author"`
}

var excelAddCommentArgumentsSchema = z.Struct(z.Shape{
	"sheet":  z.String(),
	"cell":   z.String().Required(),
	"text":   z.String().Required(),
	"author": z.String(),
})

type ExcelSheetOnlyArguments struct {
	Sheet string `zog:"sheet"`
}

var excelSheetOnlyArgumentsSchema = z.Struct(z.Shape{
	"sheet": z.String(),
})

type ExcelAddHyperlinkArguments struct {
	Sheet   string `zog:"sheet"`
	Cell    string `zog:"cell"`
	Url     string `zog:"url"`
	Display string `zog:"display"`
}

var excelAddHyperlinkArgumentsSchema = z.Struct(z.Shape{
	"sheet":   z.String(),
	"cell":    z.String().Required(),
	"url":     z.String().Required(),
	"display": z.String(),
})

type ExcelSetNamedRangeArguments struct {
	Name     string `zog:"name"`
	RefersTo string `zog:"refers_to"`
	Scope    string `zog:"scope"`
}

var excelSetNamedRangeArgumentsSchema = z.Struct(z.Shape{
	"name":     z.String().Required(),
	"refersTo": z.String().Required(),
	"scope":    z.String(),
})

type ExcelAddDataValidationArguments struct {
	Sheet      string `zog:"sheet"`
	Range      string `zog:"range"`
	Type       string `zog:"type"`
	Formula1   string `zog:"formula1"`
	Formula2   string `zog:"formula2"`
	AllowBlank bool   `zog:"allow_blank"`
}

var excelAddDataValidationArgumentsSchema = z.Struct(z.Shape{
	"sheet":      z.String(),
	"range":      z.String().Required(),
	"type":       z.String().Required(),
	"formula1":   z.String().Required(),
	"formula2":   z.String(),
	"allowBlank": z.Bool().Default(true),
})

type ExcelSetConditionalFormatArguments struct {
	Sheet     string `zog:"sheet"`
	Range     string `zog:"range"`
	Type      string `zog:"type"`
	Criteria  string `zog:"criteria"`
	Value     string `zog:"value"`
	Value2    string `zog:"value2"`
	FontColor string `zog:"font_color"`
	BgColor   string `zog:"bg_color"`
}

var excelSetConditionalFormatArgumentsSchema = z.Struct(z.Shape{
	"sheet":     z.String(),
	"range":     z.String().Required(),
	"type":      z.String().Required(),
	"criteria":  z.String(),
	"value":     z.String(),
	"value2":    z.String(),
	"fontColor": z.String(),
	"bgColor":   z.String(),
})

type ExcelExportCsvArguments struct {
	Sheet      string `zog:"sheet"`
	OutputPath string `zog:"output_path"`
	Range      string `zog:"range"`
	Delimiter  string `zog:"delimiter"`
}

var excelExportCsvArgumentsSchema = z.Struct(z.Shape{
	"sheet":      z.String(),
	"outputPath": z.String().Required(),
	"range":      z.String(),
	"delimiter":  z.String().Default(","),
})

type ExcelImportCsvArguments struct {
	Sheet     string `zog:"sheet"`
	CsvPath   string `zog:"csv_path"`
	StartCell string `zog:"start_cell"`
	Delimiter string `zog:"delimiter"`
}

var excelImportCsvArgumentsSchema = z.Struct(z.Shape{
	"sheet":     z.String(),
	"csvPath":   z.String().Required(),
	"startCell": z.String().Default("A1"),
	"delimiter": z.String().Default(","),
})

type ExcelExportJsonArguments struct {
	Sheet      string `zog:"sheet"`
	OutputPath string `zog:"output_path"`
	Range      string `zog:"range"`
	HeaderRow  bool   `zog:"header_row"`
}

var excelExportJsonArgumentsSchema = z.Struct(z.Shape{
	"sheet":      z.String(),
	"outputPath": z.String().Required(),
	"range":      z.String(),
	"headerRow":  z.Bool().Default(true),
})

type ExcelImportJsonArguments struct {
	Sheet     string `zog:"sheet"`
	JsonPath  string `zog:"json_path"`
	StartCell string `zog:"start_cell"`
	HeaderRow bool   `zog:"header_row"`
}

var excelImportJsonArgumentsSchema = z.Struct(z.Shape{
	"sheet":     z.String(),
	"jsonPath":  z.String().Required(),
	"startCell": z.String().Default("A1"),
	"headerRow": z.Bool().Default(true),
})

type ExcelRunMacroArguments struct {
	Macro string   `zog:"macro"`
	Args  []string `zog:"args"`
}

var excelRunMacroArgumentsSchema = z.Struct(z.Shape{
	"macro": z.String().Required(),
	"args":  z.Slice(z.String()),
})

func delimiterParam() mcp.ToolOption {
	return mcp.WithString("delimiter",
		mcp.Description("Field delimiter: one character, or \"tab\" (default \",\")"),
	)
}

func (tb *Toolbox) excelDataTools() []Tool {
	return []Tool{
		post("/excel/add_comment", "Attach a note to a cell, replacing any existing one", tb.excelAddComment,
			sheetParam(),
			mcp.WithString("cell",
				mcp.Required(),
				mcp.Description("Cell reference (e.g., \"B2\")"),
			),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Note text"),
			),
			mcp.WithString("author",
				mcp.Description("Author written as the first line of the note"),
			),
		),
		get("/excel/get_comments", "List the notes of a sheet", tb.excelGetComments,
			sheetParam(),
		),
		post("/excel/add_hyperlink", "Link a cell to a URL", tb.excelAddHyperlink,
			sheetParam(),
			mcp.WithString("cell",
				mcp.Required(),
				mcp.Description("Cell reference (e.g., \"A1\")"),
			),
			mcp.WithString("url",
				mcp.Required(),
				mcp.Description("Link target"),
			),
			mcp.WithString("display",
				mcp.Description("Text shown in the cell (default: the URL)"),
			),
		),
		post("/excel/set_named_range", "Define or redefine a name for a range", tb.excelSetNamedRange,
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Name (e.g., \"SalesData\")"),
			),
			mcp.WithString("refers_to",
				mcp.Required(),
				mcp.Description("Reference such as \"Sheet1!$A$1:$D$10\""),
			),
			mcp.WithString("scope",
				mcp.Description("\"workbook\" (default) or the name of the sheet that owns the name"),
			),
		),
		post("/excel/add_data_validation", "Restrict the values of a range", tb.excelAddDataValidation,
			sheetParam(),
			rangeParam(true),
			mcp.WithString("type",
				mcp.Required(),
				mcp.Description("Validation type: "+oneOf(excel.ValidationTypes())),
			),
			mcp.WithString("formula1",
				mcp.Required(),
				mcp.Description("List items (\"Yes,No\"), lower bound or custom formula"),
			),
			mcp.WithString("formula2",
				mcp.Description("Upper bound for the numeric, date, time and length types"),
			),
			mcp.WithBoolean("allow_blank",
				mcp.Description("Accept empty cells (default true)"),
			),
		),
		post("/excel/set_conditional_format", "Add a conditional format rule to a range", tb.excelSetConditionalFormat,
			sheetParam(),
			rangeParam(true),
			mcp.WithString("type",
				mcp.Required(),
				mcp.Description("Rule type: "+oneOf(excel.ConditionTypes())),
			),
			mcp.WithString("criteria",
				mcp.Description("Comparison for \"cell\": "+oneOf(excel.ConditionCriteria())),
			),
			mcp.WithString("value",
				mcp.Description("Value to compare with, or the formula of an \"expression\""),
			),
			mcp.WithString("value2",
				mcp.Description("Upper value for \"between\" and \"not_between\""),
			),
			mcp.WithString("font_color",
				mcp.Description("Font color (#RRGGBB) of matching cells"),
			),
			mcp.WithString("bg_color",
				mcp.Description("Fill color (#RRGGBB) of matching cells"),
			),
		),
		post("/excel/export_csv", "Write a range (default: the used range) to a CSV file", tb.excelExportCsv,
			sheetParam(),
			mcp.WithString("output_path",
				mcp.Required(),
				mcp.Description("Absolute path of the CSV file to write"),
			),
			rangeParam(false),
			delimiterParam(),
		),
		post("/excel/import_csv", "Write the rows of a CSV file into a sheet", tb.excelImportCsv,
			sheetParam(),
			mcp.WithString("csv_path",
				mcp.Required(),
				mcp.Description("Absolute path of the CSV file to read"),
			),
			mcp.WithString("start_cell",
				mcp.Description("Top-left cell (default \"A1\")"),
			),
			delimiterParam(),
		),
		post("/excel/export_json", "Write a range (default: the used range) to a JSON file", tb.excelExportJson,
			sheetParam(),
			mcp.WithString("output_path",
				mcp.Required(),
				mcp.Description("Absolute path of the JSON file to write"),
			),
			rangeParam(false),
			mcp.WithBoolean("header_row",
				mcp.Description("Use the first row as field names and write one object per row (default true)"),
			),
		),
		post("/excel/import_json", "Write an array of rows or of objects from a JSON file into a sheet", tb.excelImportJson,
			sheetParam(),
			mcp.WithString("json_path",
				mcp.Required(),
				mcp.Description("Absolute path of the JSON file to read"),
			),
			mcp.WithString("start_cell",
				mcp.Description("Top-left cell (default \"A1\")"),
			),
			mcp.WithBoolean("header_row",
				mcp.Description("Write the object keys as a header row (default true)"),
			),
		),
		get("/excel/list_workbooks", "List the open workbooks", tb.excelListWorkbooks),
		post("/excel/run_macro", "Run a VBA macro of an open workbook", tb.excelRunMacro,
			mcp.WithString("macro",
				mcp.Required(),
				mcp.Description("Macro name (e.g., \"Book1.xlsm!Module1.Main\")"),
			),
			mcp.WithArray("args",
				mcp.Description("String arguments passed to the macro"),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
	}
}

func (tb *Toolbox) excelAddComment(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelAddCommentArguments{}
	if err := parse(excelAddCommentArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Comment, error) {
		return excel.AddComment(app, a.Sheet, a.Cell, a.Text, a.Author)
	})
}

func (tb *Toolbox) excelGetComments(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelSheetOnlyArguments{}
	if err := parse(excelSheetOnlyArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Comments, error) {
		return excel.GetComments(app, a.Sheet)
	})
}

func (tb *Toolbox) excelAddHyperlink(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelAddHyperlinkArguments{}
	if err := parse(excelAddHyperlinkArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Hyperlink, error) {
		return excel.AddHyperlink(app, a.Sheet, a.Cell, a.Url, a.Display)
	})
}

func (tb *Toolbox) excelSetNamedRange(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelSetNamedRangeArguments{}
	if err := parse(excelSetNamedRangeArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.NamedRange, error) {
		return excel.SetNamedRange(app, a.Name, a.RefersTo, a.Scope)
	})
}

func (tb *Toolbox) excelAddDataValidation(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelAddDataValidationArguments{}
	if err := parse(excelAddDataValidationArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	v := excel.Validation{Type: a.Type, Formula1: a.Formula1, Formula2: a.Formula2, AllowBlank: a.AllowBlank}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Formatted, error) {
		return excel.AddDataValidation(app, a.Sheet, a.Range, v)
	})
}

func (tb *Toolbox) excelSetConditionalFormat(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelSetConditionalFormatArguments{}
	if err := parse(excelSetConditionalFormatArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	c := excel.Condition{Type: a.Type, Criteria: a.Criteria, Value: a.Value, Value2: a.Value2, FontColor: a.FontColor, BgColor: a.BgColor}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.Formatted, error) {
		return excel.SetConditionalFormat(app, a.Sheet, a.Range, c)
	})
}

func (tb *Toolbox) excelExportCsv(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelExportCsvArguments{}
	if err := parse(excelExportCsvArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	comma, err := excel.Delimiter(a.Delimiter)
	if err != nil {
		return nil, err
	}
	if err := checkSavePath(a.OutputPath); err != nil {
		return nil, err
	}
	values, err := do(ctx, tb.Excel, func(app com.Object) (*excel.RangeValues, error) {
		return excel.SheetValues(app, a.Sheet, a.Range)
	})
	if err != nil {
		return nil, err
	}
	f, err := os.Create(a.OutputPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create CSV file")
	}
	defer f.Close()
	if err := excel.WriteCSV(f, values.Values, comma); err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to write CSV file")
	}
	return &excel.Transferred{Path: a.OutputPath, Range: values.Range, Rows: len(values.Values)}, nil
}

func (tb *Toolbox) excelImportCsv(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelImportCsvArguments{}
	if err := parse(excelImportCsvArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	comma, err := excel.Delimiter(a.Delimiter)
	if err != nil {
		return nil, err
	}
	if err := checkOpenPath(a.CsvPath); err != nil {
		return nil, err
	}
	f, err := os.Open(a.CsvPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer f.Close()
	values, err := excel.ReadCSV(f, comma)
	if err != nil {
		return nil, err
	}
	written, err := do(ctx, tb.Excel, func(app com.Object) (*excel.Written, error) {
		return excel.WriteRange(app, a.Sheet, a.StartCell, values)
	})
	if err != nil {
		return nil, err
	}
	return &excel.Transferred{Path: a.CsvPath, Range: written.Range, Rows: len(values)}, nil
}

func (tb *Toolbox) excelExportJson(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelExportJsonArguments{}
	if err := parse(excelExportJsonArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	if err := checkSavePath(a.OutputPath); err != nil {
		return nil, err
	}
	values, err := do(ctx, tb.Excel, func(app com.Object) (*excel.RangeValues, error) {
		return excel.SheetValues(app, a.Sheet, a.Range)
	})
	if err != nil {
		return nil, err
	}
	records, err := excel.Records(values.Values, a.HeaderRow)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal rows")
	}
	if err := os.WriteFile(a.OutputPath, data, 0o644); err != nil {
		return nil, errors.Wrap(err, "failed to write JSON file")
	}
	rows := len(values.Values)
	if a.HeaderRow && rows > 0 {
		rows--
	}
	return &excel.Transferred{Path: a.OutputPath, Range: values.Range, Rows: rows}, nil
}

func (tb *Toolbox) excelImportJson(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelImportJsonArguments{}
	if err := parse(excelImportJsonArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	if err := checkOpenPath(a.JsonPath); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(a.JsonPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read JSON file")
	}
	values, err := excel.FromJSON(data, a.HeaderRow)
	if err != nil {
		return nil, err
	}
	written, err := do(ctx, tb.Excel, func(app com.Object) (*excel.Written, error) {
		return excel.WriteRange(app, a.Sheet, a.StartCell, values)
	})
	if err != nil {
		return nil, err
	}
	return &excel.Transferred{Path: a.JsonPath, Range: written.Range, Rows: len(values)}, nil
}

func (tb *Toolbox) excelListWorkbooks(ctx context.Context, args map[string]any) (any, error) {
	return do(ctx, tb.Excel, excel.ListWorkbooks)
}

func (tb *Toolbox) excelRunMacro(ctx context.Context, args map[string]any) (any, error) {
	a := ExcelRunMacroArguments{}
	if err := parse(excelRunMacroArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Excel, func(app com.Object) (*excel.MacroResult, error) {
		return excel.RunMacro(app, a.Macro, a.Args)
	})
}
