package excel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negokaz/office-server/internal/com/comtest"
	"github.com/negokaz/office-server/internal/office"
	"github.com/negokaz/office-server/internal/office/excel"
)

const sheet = "app.ActiveWorkbook.ActiveSheet"

func newApp() *comtest.Object {
	app := comtest.New("app")
	app.Path("Workbooks").Set("Count", int32(1))
	return app
}

func withSheets(app *comtest.Object, active string, names ...string) {
	worksheets := app.Path("ActiveWorkbook", "Worksheets").Set("Count", int32(len(names)))
	for i, name := range names {
		worksheets.Child(comtest.Key("Item", i+1)).Set("Name", name)
	}
	app.Path("ActiveWorkbook", "ActiveSheet").Set("Name", active)
}

func ptr[T any](v T) *T {
	return &v
}

func TestCreate(t *testing.T) {
	app := newApp()
	wb := app.Path("Workbooks", "Add()").Set("Name", "Book1").Set("FullName", "Book1")
	wb.Path("ActiveSheet").Set("Name", "Sheet1")

	info, err := excel.Create(app)
	require.NoError(t, err)
	assert.Equal(t, &excel.WorkbookInfo{Name: "Book1", Path: "Book1", Sheet: "Sheet1", Workbooks: 1}, info)
}

func TestRequiresWorkbook(t *testing.T) {
	app := comtest.New("app")
	app.Path("Workbooks").Set("Count", int32(0))

	_, err := excel.WriteCell(app, "", "A1", "x")
	assert.ErrorIs(t, err, office.ErrNoDocument)
	_, err = excel.GetSheets(app)
	assert.ErrorIs(t, err, office.ErrNoDocument)
}

func TestCloseWithoutSaving(t *testing.T) {
	app := newApp()
	app.Path("ActiveWorkbook").Set("Name", "Book1")

	info, err := excel.Close(app, false)
	require.NoError(t, err)
	assert.Equal(t, "Book1", info.Name)
	assert.Contains(t, app.Log(), "call app.ActiveWorkbook.Close(false)")
}

func TestWriteCell(t *testing.T) {
	app := newApp()

	cell, err := excel.WriteCell(app, "", "a1", "Product")
	require.NoError(t, err)
	assert.Equal(t, "A1", cell.Cell)
	assert.Equal(t, "Product", cell.Value)
	assert.Contains(t, app.Log(), "put "+sheet+".Range(a1).Value = Product")
}

func TestWriteCellNilClears(t *testing.T) {
	app := newApp()

	_, err := excel.WriteCell(app, "", "B2", nil)
	require.NoError(t, err)
	assert.Contains(t, app.Log(), "call "+sheet+".Range(B2).ClearContents()")
}

func TestWriteCellRejectsInvalidInput(t *testing.T) {
	app := newApp()

	_, err := excel.WriteCell(app, "", "A1:B2", 1.0)
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
	_, err = excel.WriteCell(app, "", "A1", map[string]any{"a": 1})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
	assert.Empty(t, app.Log())
}

func TestWriteCellOnNamedSheet(t *testing.T) {
	app := newApp()
	withSheets(app, "Sheet1", "Sheet1", "Data")

	_, err := excel.WriteCell(app, "data", "A1", 42.0)
	require.NoError(t, err)
	assert.Contains(t, app.Log(), "put app.ActiveWorkbook.Worksheets.Item(2).Range(A1).Value = 42")

	_, err = excel.WriteCell(app, "Missing", "A1", 42.0)
	assert.ErrorIs(t, err, office.ErrOutOfRange)
}

func TestReadCell(t *testing.T) {
	app := newApp()
	app.Path("ActiveWorkbook", "ActiveSheet", "Range(D5)").
		Set("Value", 2750.0).
		Set("Text", "2,750").
		Set("Formula", "=SUM(D2:D4)")
	app.Path("ActiveWorkbook", "ActiveSheet", "Range(A1)").
		Set("Value", "Product").
		Set("Text", "Product").
		Set("Formula", "Product")

	cell, err := excel.ReadCell(app, "", "D5")
	require.NoError(t, err)
	assert.Equal(t, &excel.Cell{Cell: "D5", Value: 2750.0, Text: "2,750", Formula: "=SUM(D2:D4)"}, cell)

	cell, err = excel.ReadCell(app, "", "A1")
	require.NoError(t, err)
	assert.Empty(t, cell.Formula)
}

func TestSetFormula(t *testing.T) {
	app := newApp()

	_, err := excel.SetFormula(app, "", "D2", "B2*C2")
	require.NoError(t, err)
	assert.Contains(t, app.Log(), "put "+sheet+".Range(D2).Formula = =B2*C2")

	_, err = excel.SetFormula(app, "", "D2", " = ")
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestWriteRange(t *testing.T) {
	app := newApp()

	written, err := excel.WriteRange(app, "", "A2", [][]any{
		{"Apple", 100.0, 10.0},
		{"Banana"},
		{nil, 75.0},
	})
	require.NoError(t, err)
	assert.Equal(t, &excel.Written{Range: "A2:C4", Cells: 5}, written)

	log := app.Log()
	assert.Contains(t, log, "put "+sheet+".Range(B2).Value = 100")
	assert.Contains(t, log, "put "+sheet+".Range(A3).Value = Banana")
	assert.Contains(t, log, "put "+sheet+".Range(B4).Value = 75")
	assert.NotContains(t, log, "put "+sheet+".Range(A4).Value = <nil>")
}

func TestWriteRangeValidation(t *testing.T) {
	app := newApp()

	_, err := excel.WriteRange(app, "", "A1", nil)
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
	_, err = excel.WriteRange(app, "", "A1", [][]any{{[]any{1}}})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestReadRange(t *testing.T) {
	app := newApp()
	r := app.Path("ActiveWorkbook", "ActiveSheet", "Range(A1:B2)")
	r.Child("Cells(1,1)").Set("Value", "Product")
	r.Child("Cells(1,2)").Set("Value", "Price")
	r.Child("Cells(2,1)").Set("Value", "Apple")
	r.Child("Cells(2,2)").Set("Value", 100.0)

	values, err := excel.ReadRange(app, "", excel.ReadOptions{Range: "A1:B2"})
	require.NoError(t, err)
	assert.Equal(t, "A1:B2", values.Range)
	assert.Equal(t, [][]any{{"Product", "Price"}, {"Apple", 100.0}}, values.Values)
	assert.Empty(t, values.NextRange)
}

func TestReadRangeTooLarge(t *testing.T) {
	_, err := excel.ReadRange(newApp(), "", excel.ReadOptions{Range: "A1:Z1000"})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestReadRangePagesUsedRange(t *testing.T) {
	app := newApp()
	ws := app.Path("ActiveWorkbook", "ActiveSheet")
	ws.Path("PageSetup").Set("PrintArea", "")
	ws.Path("UsedRange").Set("Address(false,false)", "A1:B3")
	ws.Path("Range(A2:B2)", "Cells(1,1)").Set("Value", "Apple")

	values, err := excel.ReadRange(app, "", excel.ReadOptions{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, "A2:B2", values.Range)
	assert.Equal(t, [][]any{{"Apple", nil}}, values.Values)
	assert.Equal(t, 2, values.Page)
	assert.Equal(t, 3, values.Pages)
	assert.Equal(t, []string{"A1:B1", "A2:B2", "A3:B3"}, values.Ranges)
	assert.Equal(t, "A3:B3", values.NextRange)

	_, err = excel.ReadRange(app, "", excel.ReadOptions{Page: 4, PageSize: 2})
	assert.ErrorIs(t, err, office.ErrOutOfRange)
}

func TestSetFont(t *testing.T) {
	app := newApp()

	_, err := excel.SetFont(app, "", "A1:D1", office.Font{
		Name:  ptr("Arial"),
		Size:  ptr(14.0),
		Bold:  ptr(true),
		Color: ptr("#0000FF"),
	})
	require.NoError(t, err)
	log := app.Log()
	assert.Contains(t, log, "put "+sheet+".Range(A1:D1).Font.Name = Arial")
	assert.Contains(t, log, "put "+sheet+".Range(A1:D1).Font.Size = 14")
	assert.Contains(t, log, "put "+sheet+".Range(A1:D1).Font.Bold = true")
	assert.Contains(t, log, "put "+sheet+".Range(A1:D1).Font.Color = 16711680")
}

func TestSetAlignment(t *testing.T) {
	app := newApp()

	_, err := excel.SetAlignment(app, "", "A1:D1", excel.Alignment{Horizontal: ptr("center"), Vertical: ptr("center")})
	require.NoError(t, err)
	assert.Contains(t, app.Log(), "put "+sheet+".Range(A1:D1).HorizontalAlignment = -4108")
	assert.Contains(t, app.Log(), "put "+sheet+".Range(A1:D1).VerticalAlignment = -4108")

	_, err = excel.SetAlignment(app, "", "A1", excel.Alignment{Horizontal: ptr("middle")})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestSetFill(t *testing.T) {
	app := newApp()

	_, err := excel.SetFill(app, "", "A1:D1", "#FFFF00")
	require.NoError(t, err)
	assert.Contains(t, app.Log(), "put "+sheet+".Range(A1:D1).Interior.Color = 65535")

	_, err = excel.SetFill(app, "", "A1:D1", "none")
	require.NoError(t, err)
	assert.Contains(t, app.Log(), "put "+sheet+".Range(A1:D1).Interior.ColorIndex = -4142")

	_, err = excel.SetFill(app, "", "A1", "yellow")
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestSetBorder(t *testing.T) {
	app := newApp()

	_, err := excel.SetBorder(app, "", "A1:A3", excel.Border{Style: "thin", Edges: "all"})
	require.NoError(t, err)
	log := app.Log()
	for _, edge := range []int{7, 8, 9, 10, 12} {
		assert.Contains(t, log, "put "+sheet+".Range(A1:A3).Borders."+comtest.Key("Item", edge)+".LineStyle = 1")
		assert.Contains(t, log, "put "+sheet+".Range(A1:A3).Borders."+comtest.Key("Item", edge)+".Weight = 2")
	}
	assert.NotContains(t, log, "put "+sheet+".Range(A1:A3).Borders.Item(11).LineStyle = 1")
}

func TestSetBorderNone(t *testing.T) {
	app := newApp()

	_, err := excel.SetBorder(app, "", "B2", excel.Border{Style: "none", Edges: "left, top"})
	require.NoError(t, err)
	assert.Contains(t, app.Log(), "put "+sheet+".Range(B2).Borders.Item(7).LineStyle = -4142")
	assert.NotContains(t, app.Log(), "put "+sheet+".Range(B2).Borders.Item(7).Weight = 0")

	_, err = excel.SetBorder(app, "", "B2", excel.Border{Style: "thin", Edges: "diagonal"})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
	_, err = excel.SetBorder(app, "", "B2", excel.Border{Style: "wavy"})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestSetNumberFormat(t *testing.T) {
	app := newApp()

	_, err := excel.SetNumberFormat(app, "", "B2:B4", "#,##0")
	require.NoError(t, err)
	assert.Contains(t, app.Log(), "put "+sheet+".Range(B2:B4).NumberFormat = #,##0")
}

func TestSetColumnWidth(t *testing.T) {
	app := newApp()

	resized, err := excel.SetColumnWidth(app, "", "B", excel.Size{Value: ptr(15.0)})
	require.NoError(t, err)
	assert.Equal(t, "B:B", resized.Columns)
	assert.Contains(t, app.Log(), "put "+sheet+".Columns(B:B).ColumnWidth = 15")

	_, err = excel.SetColumnWidth(app, "", "a:c", excel.Size{AutoFit: true})
	require.NoError(t, err)
	assert.Contains(t, app.Log(), "call "+sheet+".Columns(A:C).AutoFit()")

	_, err = excel.SetColumnWidth(app, "", "B", excel.Size{})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestSetRowHeight(t *testing.T) {
	app := newApp()

	_, err := excel.SetRowHeight(app, "", 1, 0, excel.Size{Value: ptr(25.0)})
	require.NoError(t, err)
	assert.Contains(t, app.Log(), "put "+sheet+".Rows(1:1).RowHeight = 25")

	_, err = excel.SetRowHeight(app, "", 1, 0, excel.Size{Value: ptr(500.0)})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestInsertAndDelete(t *testing.T) {
	app := newApp()

	_, err := excel.InsertRows(app, "", 2, 1)
	require.NoError(t, err)
	_, err = excel.DeleteRows(app, "", 2, 3)
	require.NoError(t, err)
	_, err = excel.InsertColumns(app, "", "A", 0)
	require.NoError(t, err)
	_, err = excel.DeleteColumns(app, "", "A", 2)
	require.NoError(t, err)

	log := app.Log()
	assert.Contains(t, log, "call "+sheet+".Rows(2:2).Insert()")
	assert.Contains(t, log, "call "+sheet+".Rows(2:4).Delete()")
	assert.Contains(t, log, "call "+sheet+".Columns(A:A).Insert()")
	assert.Contains(t, log, "call "+sheet+".Columns(A:B).Delete()")

	_, err = excel.InsertRows(app, "", 0, 1)
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
	_, err = excel.InsertColumns(app, "", "A:B", 1)
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestMergeAndUnmerge(t *testing.T) {
	app := newApp()

	_, err := excel.MergeCells(app, "", "A7:D7")
	require.NoError(t, err)
	_, err = excel.UnmergeCells(app, "", "A7:D7")
	require.NoError(t, err)
	assert.Contains(t, app.Log(), "call "+sheet+".Range(A7:D7).Merge()")
	assert.Contains(t, app.Log(), "call "+sheet+".Range(A7:D7).UnMerge()")
}

func TestAutoFilter(t *testing.T) {
	app := newApp()
	app.Path("ActiveWorkbook", "ActiveSheet").Set("AutoFilterMode", true)

	state, err := excel.AutoFilter(app, "", excel.Filter{Range: "A1:D5"})
	require.NoError(t, err)
	assert.Equal(t, &excel.FilterState{Range: "A1:D5", Enabled: true}, state)
	assert.Contains(t, app.Log(), "put "+sheet+".AutoFilterMode = false")
	assert.Contains(t, app.Log(), "call "+sheet+".Range(A1:D5).AutoFilter()")

	_, err = excel.AutoFilter(app, "", excel.Filter{Range: "A1:D5", Field: 2, Criteria: ">50"})
	require.NoError(t, err)
	assert.Contains(t, app.Log(), "call "+sheet+".Range(A1:D5).AutoFilter(2,>50)")

	_, err = excel.AutoFilter(app, "", excel.Filter{Range: "A1:D5", Field: 5})
	assert.ErrorIs(t, err, office.ErrOutOfRange)
}

func TestAutoFilterRemove(t *testing.T) {
	app := newApp()
	app.Path("ActiveWorkbook", "ActiveSheet").Set("AutoFilterMode", true)

	state, err := excel.AutoFilter(app, "", excel.Filter{Remove: true})
	require.NoError(t, err)
	assert.False(t, state.Enabled)
	for _, line := range app.Log() {
		assert.NotContains(t, line, "AutoFilter(")
	}
}

func TestFreezePanes(t *testing.T) {
	app := newApp()

	panes, err := excel.FreezePanes(app, "", "B2", false)
	require.NoError(t, err)
	assert.Equal(t, &excel.Panes{Cell: "B2", Rows: 1, Columns: 1, Frozen: true}, panes)
	log := app.Log()
	assert.Contains(t, log, "put app.ActiveWindow.SplitRow = 1")
	assert.Contains(t, log, "put app.ActiveWindow.SplitColumn = 1")
	assert.Equal(t, "put app.ActiveWindow.FreezePanes = true", log[len(log)-1])

	panes, err = excel.FreezePanes(app, "", "", true)
	require.NoError(t, err)
	assert.False(t, panes.Frozen)
	log = app.Log()
	assert.Equal(t, "put app.ActiveWindow.SplitRow = 0", log[len(log)-1])

	_, err = excel.FreezePanes(app, "", "A1", false)
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestSheets(t *testing.T) {
	app := newApp()
	withSheets(app, "Sheet1", "Sheet1", "TestSheet")

	sheets, err := excel.GetSheets(app)
	require.NoError(t, err)
	assert.Equal(t, &excel.Sheets{Sheets: []string{"Sheet1", "TestSheet"}, Active: "Sheet1"}, sheets)

	sheets, err = excel.RenameSheet(app, "TestSheet", "RenamedSheet")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "RenamedSheet"}, sheets.Sheets)
	assert.Contains(t, app.Log(), "put app.ActiveWorkbook.Worksheets.Item(2).Name = RenamedSheet")

	_, err = excel.RenameSheet(app, "Sheet1", "renamedsheet")
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
	_, err = excel.RenameSheet(app, "Nope", "Other")
	assert.ErrorIs(t, err, office.ErrOutOfRange)
	_, err = excel.RenameSheet(app, "Sheet1", "bad/name")
	assert.ErrorIs(t, err, office.ErrInvalidArgument)

	sheets, err = excel.DeleteSheet(app, "RenamedSheet")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1"}, sheets.Sheets)
	assert.Contains(t, app.Log(), "call app.ActiveWorkbook.Worksheets.Item(2).Delete()")

	sheets, err = excel.ActivateSheet(app, "sheet1")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", sheets.Active)
}

func TestDeleteOnlySheet(t *testing.T) {
	app := newApp()
	withSheets(app, "Sheet1", "Sheet1")

	_, err := excel.DeleteSheet(app, "Sheet1")
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestDeleteSheetSuppressesAlerts(t *testing.T) {
	app := newApp()
	app.Set("DisplayAlerts", true)
	withSheets(app, "Sheet1", "Sheet1", "Sheet2")

	_, err := excel.DeleteSheet(app, "Sheet2")
	require.NoError(t, err)
	log := app.Log()
	assert.Contains(t, log, "put app.DisplayAlerts = false")
	assert.Equal(t, "put app.DisplayAlerts = true", log[len(log)-1])
}

func TestAddSheet(t *testing.T) {
	app := newApp()
	withSheets(app, "Sheet1", "Sheet1")

	sheets, err := excel.AddSheet(app, "TestSheet")
	require.NoError(t, err)
	assert.Equal(t, &excel.Sheets{Sheets: []string{"Sheet1", "TestSheet"}, Active: "TestSheet"}, sheets)
	log := app.Log()
	assert.Contains(t, log, "call app.ActiveWorkbook.Worksheets.Add()")
	assert.Contains(t, log, "call app.ActiveWorkbook.Worksheets.Item(1).Move(app.ActiveWorkbook.Worksheets.Add())")
	assert.Contains(t, log, "put app.ActiveWorkbook.Worksheets.Add().Name = TestSheet")

	_, err = excel.AddSheet(app, "sheet1")
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestReplace(t *testing.T) {
	app := newApp()
	app.Path("WorksheetFunction").Returns("CountIf", 2.0)
	app.Path("ActiveWorkbook", "ActiveSheet", "Range(A1:C4)").Returns("Replace", true)

	result, err := excel.Replace(app, "", excel.FindReplace{Find: "Hello", Replace: "Hi", Range: "A1:C4"})
	require.NoError(t, err)
	assert.Equal(t, &excel.ReplaceResult{Range: "A1:C4", Replaced: true, Cells: 2}, result)
	log := app.Log()
	assert.Contains(t, log, "call app.WorksheetFunction.CountIf("+sheet+".Range(A1:C4),*Hello*)")
	assert.Contains(t, log, "call "+sheet+".Range(A1:C4).Replace(Hello,Hi,2,1,false)")
}

func TestReplaceUsedRangeEntireCell(t *testing.T) {
	app := newApp()
	app.Path("ActiveWorkbook", "ActiveSheet", "UsedRange").Set("Address(false,false)", "A1:B2")

	_, err := excel.Replace(app, "", excel.FindReplace{Find: "5*", Replace: "x", MatchEntireCell: true})
	require.NoError(t, err)
	log := app.Log()
	assert.Contains(t, log, "call app.WorksheetFunction.CountIf("+sheet+".Range(A1:B2),5~*)")
	assert.Contains(t, log, "call "+sheet+".Range(A1:B2).Replace(5~*,x,1,1,false)")
}

func TestReplaceTreatsWildcardsLiterally(t *testing.T) {
	app := newApp()

	_, err := excel.Replace(app, "", excel.FindReplace{Find: "a?b~c", Replace: "x", Range: "A1:A3"})
	require.NoError(t, err)
	log := app.Log()
	assert.Contains(t, log, "call app.WorksheetFunction.CountIf("+sheet+".Range(A1:A3),*a~?b~~c*)")
	assert.Contains(t, log, "call "+sheet+".Range(A1:A3).Replace(a~?b~~c,x,2,1,false)")
}

func TestClearRange(t *testing.T) {
	app := newApp()

	_, err := excel.ClearRange(app, "", "A1:B2", true)
	require.NoError(t, err)
	_, err = excel.ClearRange(app, "", "C1", false)
	require.NoError(t, err)
	assert.Contains(t, app.Log(), "call "+sheet+".Range(A1:B2).ClearContents()")
	assert.Contains(t, app.Log(), "call "+sheet+".Range(C1).Clear()")
}

func TestAddChart(t *testing.T) {
	app := newApp()
	app.Path("ActiveWorkbook", "ActiveSheet", "Range(F1)").Set("Left", 300.0).Set("Top", 0.0)
	chartObject := app.Path("ActiveWorkbook", "ActiveSheet", "ChartObjects()", "Add(300,0,480,288)").Set("Name", "Chart 1")

	info, err := excel.AddChart(app, "", excel.Chart{DataRange: "A1:D5", Title: "Sales"})
	require.NoError(t, err)
	assert.Equal(t, &excel.ChartInfo{Name: "Chart 1", ChartType: "column", DataRange: "A1:D5", Position: "F1"}, info)

	prefix := "app.ActiveWorkbook.ActiveSheet.ChartObjects().Add(300,0,480,288).Chart"
	log := app.Log()
	assert.Contains(t, log, "call "+prefix+".SetSourceData("+sheet+".Range(A1:D5))")
	assert.Contains(t, log, "put "+prefix+".ChartType = 51")
	assert.Contains(t, log, "put "+prefix+".ChartTitle.Text = Sales")
	assert.Equal(t, chartObject.String()+".Chart", prefix)

	_, err = excel.AddChart(app, "", excel.Chart{DataRange: "A1:D5", ChartType: "radar"})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestExportRange(t *testing.T) {
	app := newApp()
	ws := app.Path("ActiveWorkbook", "ActiveSheet")
	ws.Path("UsedRange").Set("Address(false,false)", "A1:C4")
	ws.Path("Range(A1:C4)").Set("Width", 200.0).Set("Height", 80.0)

	rendered, err := excel.ExportRange(app, "", "", `C:\tmp\capture.png`)
	require.NoError(t, err)
	assert.Equal(t, "A1:C4", rendered)

	chart := sheet + ".ChartObjects().Add(0,0,200,80)"
	log := app.Log()
	assert.Contains(t, log, "call "+sheet+".Range(A1:C4).CopyPicture(1,2)")
	assert.Contains(t, log, "call "+chart+".Chart.Paste()")
	assert.Contains(t, log, `call `+chart+`.Chart.Export(C:\tmp\capture.png,PNG)`)
	assert.Equal(t, "call "+chart+".Delete()", log[len(log)-1])
}
