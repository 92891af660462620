// Package excel translates worksheet operations into calls on the
// Excel.Application object model.
package excel

import (
	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// WorkbookInfo describes a workbook after a lifecycle operation.
type WorkbookInfo struct {
	Name      string `json:"name"`
	Path      string `json:"path,omitempty"`
	Sheet     string `json:"sheet,omitempty"`
	Workbooks int    `json:"workbooks"`
}

func activeWorkbook(s *com.Scope, app com.Object) (com.Object, error) {
	workbooks, err := s.GetObject(app, "Workbooks")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(workbooks, "Count")
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.Wrap(office.ErrNoDocument, "no Excel workbook is open")
	}
	return s.GetObject(app, "ActiveWorkbook")
}

func describe(app com.Object, wb com.Object) (*WorkbookInfo, error) {
	s := com.NewScope()
	defer s.Release()
	name, err := com.String(wb, "Name")
	if err != nil {
		return nil, err
	}
	path, err := com.String(wb, "FullName")
	if err != nil {
		return nil, err
	}
	sheet, err := s.GetObject(wb, "ActiveSheet")
	if err != nil {
		return nil, err
	}
	sheetName, err := com.String(sheet, "Name")
	if err != nil {
		return nil, err
	}
	workbooks, err := s.GetObject(app, "Workbooks")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(workbooks, "Count")
	if err != nil {
		return nil, err
	}
	return &WorkbookInfo{Name: name, Path: path, Sheet: sheetName, Workbooks: count}, nil
}

// Create adds a blank workbook and makes it active.
func Create(app com.Object) (*WorkbookInfo, error) {
	s := com.NewScope()
	defer s.Release()
	workbooks, err := s.GetObject(app, "Workbooks")
	if err != nil {
		return nil, err
	}
	wb, err := s.CallObject(workbooks, "Add")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create workbook")
	}
	return describe(app, wb)
}

// Open opens a workbook file.
func Open(app com.Object, path string) (*WorkbookInfo, error) {
	s := com.NewScope()
	defer s.Release()
	workbooks, err := s.GetObject(app, "Workbooks")
	if err != nil {
		return nil, err
	}
	wb, err := s.CallObject(workbooks, "Open", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	return describe(app, wb)
}

// Save saves the active workbook, under path when it is given.
func Save(app com.Object, path string) (*WorkbookInfo, error) {
	s := com.NewScope()
	defer s.Release()
	wb, err := activeWorkbook(s, app)
	if err != nil {
		return nil, err
	}
	if path == "" {
		_, err = wb.Call("Save")
	} else {
		_, err = wb.Call("SaveAs", path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to save workbook")
	}
	return describe(app, wb)
}

// Close closes the active workbook.
func Close(app com.Object, save bool) (*WorkbookInfo, error) {
	s := com.NewScope()
	defer s.Release()
	wb, err := activeWorkbook(s, app)
	if err != nil {
		return nil, err
	}
	name, err := com.String(wb, "Name")
	if err != nil {
		return nil, err
	}
	if _, err := wb.Call("Close", save); err != nil {
		return nil, errors.Wrapf(err, "failed to close %s", name)
	}
	workbooks, err := s.GetObject(app, "Workbooks")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(workbooks, "Count")
	if err != nil {
		return nil, err
	}
	return &WorkbookInfo{Name: name, Workbooks: count}, nil
}

// OpenWorkbook is one entry of ListWorkbooks.
type OpenWorkbook struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Saved  bool   `json:"saved"`
	Active bool   `json:"active"`
}

// Workbooks lists the open workbooks.
type Workbooks struct {
	Workbooks []OpenWorkbook `json:"workbooks"`
}

// ListWorkbooks lists every workbook open in the application.
func ListWorkbooks(app com.Object) (*Workbooks, error) {
	s := com.NewScope()
	defer s.Release()
	workbooks, err := s.GetObject(app, "Workbooks")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(workbooks, "Count")
	if err != nil {
		return nil, err
	}
	result := &Workbooks{Workbooks: make([]OpenWorkbook, 0, count)}
	if count == 0 {
		return result, nil
	}
	active, err := s.GetObject(app, "ActiveWorkbook")
	if err != nil {
		return nil, err
	}
	activeName, err := com.String(active, "Name")
	if err != nil {
		return nil, err
	}
	for i := 1; i <= count; i++ {
		wb, err := s.GetObject(workbooks, "Item", i)
		if err != nil {
			return nil, err
		}
		name, err := com.String(wb, "Name")
		if err != nil {
			return nil, err
		}
		path, err := com.String(wb, "FullName")
		if err != nil {
			return nil, err
		}
		saved, err := com.Bool(wb, "Saved")
		if err != nil {
			return nil, err
		}
		result.Workbooks = append(result.Workbooks, OpenWorkbook{Name: name, Path: path, Saved: saved, Active: name == activeName})
	}
	return result, nil
}

// MacroResult is the return value of a macro.
type MacroResult struct {
	Macro  string `json:"macro"`
	Result any    `json:"result"`
}

// maxMacroArgs is the argument limit of Application.Run.
const maxMacroArgs = 30

// RunMacro runs a VBA macro of an open workbook by name, e.g.
// "Book1.xlsm!Module1.Main".
func RunMacro(app com.Object, macro string, args []string) (*MacroResult, error) {
	if macro == "" {
		return nil, office.InvalidArgument("macro name is empty")
	}
	if len(args) > maxMacroArgs {
		return nil, office.InvalidArgument("at most %d macro arguments are accepted", maxMacroArgs)
	}
	callArgs := make([]any, 0, len(args)+1)
	callArgs = append(callArgs, macro)
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	result, err := app.Call("Run", callArgs...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to run macro %s", macro)
	}
	return &MacroResult{Macro: macro, Result: com.JSONValue(result)}, nil
}
