package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negokaz/office-server/internal/office"
	"github.com/negokaz/office-server/internal/office/excel"
)

func TestExcelExportCsv(t *testing.T) {
	f := newFixture(t, true)
	f.excel.Path("Workbooks").Set("Count", int32(1))
	r := f.excel.Path("ActiveWorkbook", "ActiveSheet", "Range(A1:B2)")
	r.Child("Cells(1,1)").Set("Value", "Name")
	r.Child("Cells(1,2)").Set("Value", "Qty")
	r.Child("Cells(2,1)").Set("Value", "Apple")
	r.Child("Cells(2,2)").Set("Value", 3.0)
	output := filepath.Join(t.TempDir(), "out.csv")

	result, err := f.call(t, "/excel/export_csv", map[string]any{"output_path": output, "range": "A1:B2", "delimiter": ";"})
	require.NoError(t, err)
	assert.Equal(t, &excel.Transferred{Path: output, Range: "A1:B2", Rows: 2}, result)
	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Name;Qty\nApple;3\n", string(content))
}

func TestExcelExportCsvRejectsMissingDirectory(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.call(t, "/excel/export_csv", map[string]any{"output_path": filepath.Join(t.TempDir(), "missing", "out.csv")})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
	_, err = f.call(t, "/excel/export_csv", map[string]any{"output_path": "out.csv"})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestExcelImportCsv(t *testing.T) {
	f := newFixture(t, true)
	f.excel.Path("Workbooks").Set("Count", int32(1))
	input := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(input, []byte("name\tqty\napple\t3\n"), 0o644))

	result, err := f.call(t, "/excel/import_csv", map[string]any{"csv_path": input, "start_cell": "C2", "delimiter": "tab"})
	require.NoError(t, err)
	assert.Equal(t, &excel.Transferred{Path: input, Range: "C2:D3", Rows: 2}, result)
	log := f.excel.Log()
	assert.Contains(t, log, "put app.ActiveWorkbook.ActiveSheet.Range(C2).Value = name")
	assert.Contains(t, log, "put app.ActiveWorkbook.ActiveSheet.Range(D3).Value = 3")
}

func TestExcelImportCsvMissingFile(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.call(t, "/excel/import_csv", map[string]any{"csv_path": filepath.Join(t.TempDir(), "none.csv")})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestExcelRunMacro(t *testing.T) {
	f := newFixture(t, true)
	f.excel.Returns("Run(Module1.Greet,World)", "Hello World")

	result, err := f.call(t, "/excel/run_macro", map[string]any{"macro": "Module1.Greet", "args": []any{"World"}})
	require.NoError(t, err)
	assert.Equal(t, &excel.MacroResult{Macro: "Module1.Greet", Result: "Hello World"}, result)
}

func TestExcelAddDataValidationDefaultsAllowBlank(t *testing.T) {
	f := newFixture(t, true)
	f.excel.Path("Workbooks").Set("Count", int32(1))

	_, err := f.call(t, "/excel/add_data_validation", map[string]any{"range": "A1:A5", "type": "list", "formula1": "Yes,No"})
	require.NoError(t, err)
	assert.Contains(t, f.excel.Log(), "put app.ActiveWorkbook.ActiveSheet.Range(A1:A5).Validation.IgnoreBlank = true")
}

func TestExcelExportJson(t *testing.T) {
	f := newFixture(t, true)
	f.excel.Path("Workbooks").Set("Count", int32(1))
	ws := f.excel.Path("ActiveWorkbook", "ActiveSheet")
	ws.Path("UsedRange").Set("Address(false,false)", "A1:B2")
	r := ws.Path("Range(A1:B2)")
	r.Child("Cells(1,1)").Set("Value", "name")
	r.Child("Cells(1,2)").Set("Value", "qty")
	r.Child("Cells(2,1)").Set("Value", "Apple")
	r.Child("Cells(2,2)").Set("Value", 3.0)
	output := filepath.Join(t.TempDir(), "out.json")

	result, err := f.call(t, "/excel/export_json", map[string]any{"output_path": output})
	require.NoError(t, err)
	assert.Equal(t, &excel.Transferred{Path: output, Range: "A1:B2", Rows: 1}, result)
	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name": "Apple", "qty": 3}]`, string(content))
}

func TestExcelImportJson(t *testing.T) {
	f := newFixture(t, true)
	f.excel.Path("Workbooks").Set("Count", int32(1))
	input := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(input, []byte(`[{"name": "Apple", "qty": 3}]`), 0o644))

	result, err := f.call(t, "/excel/import_json", map[string]any{"json_path": input})
	require.NoError(t, err)
	assert.Equal(t, &excel.Transferred{Path: input, Range: "A1:B2", Rows: 2}, result)
	log := f.excel.Log()
	assert.Contains(t, log, "put app.ActiveWorkbook.ActiveSheet.Range(B1).Value = qty")
	assert.Contains(t, log, "put app.ActiveWorkbook.ActiveSheet.Range(B2).Value = 3")
}
