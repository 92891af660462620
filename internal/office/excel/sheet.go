package excel

import (
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// Sheets lists the worksheets of the active workbook.
type Sheets struct {
	Sheets []string `json:"sheets"`
	Active string   `json:"active"`
}

const maxSheetNameLength = 31

func sheetNames(s *com.Scope, wb com.Object) ([]string, error) {
	worksheets, err := s.GetObject(wb, "Worksheets")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(worksheets, "Count")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		sheet, err := s.GetObject(worksheets, "Item", i)
		if err != nil {
			return nil, err
		}
		name, err := com.String(sheet, "Name")
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// findSheet returns the 1-based index of name; Excel compares sheet names
// case-insensitively.
func findSheet(names []string, name string) int {
	return slices.IndexFunc(names, func(n string) bool {
		return strings.EqualFold(n, name)
	}) + 1
}

// worksheet resolves name in the active workbook, or the active sheet when
// name is empty.
func worksheet(s *com.Scope, app com.Object, name string) (com.Object, error) {
	wb, err := activeWorkbook(s, app)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return s.GetObject(wb, "ActiveSheet")
	}
	names, err := sheetNames(s, wb)
	if err != nil {
		return nil, err
	}
	index := findSheet(names, name)
	if index == 0 {
		return nil, office.OutOfRange("sheet %q not found", name)
	}
	return sheetAt(s, wb, index)
}

func sheetAt(s *com.Scope, wb com.Object, index int) (com.Object, error) {
	worksheets, err := s.GetObject(wb, "Worksheets")
	if err != nil {
		return nil, err
	}
	return s.GetObject(worksheets, "Item", index)
}

func validateSheetName(name string) error {
	if name == "" {
		return office.InvalidArgument("sheet name is empty")
	}
	if len([]rune(name)) > maxSheetNameLength {
		return office.InvalidArgument("sheet name %q is longer than %d characters", name, maxSheetNameLength)
	}
	if strings.ContainsAny(name, `:\/?*[]`) {
		return office.InvalidArgument(`sheet name %q contains one of : \ / ? * [ ]`, name)
	}
	return nil
}

// GetSheets lists the sheet names of the active workbook.
func GetSheets(app com.Object) (*Sheets, error) {
	s := com.NewScope()
	defer s.Release()
	wb, err := activeWorkbook(s, app)
	if err != nil {
		return nil, err
	}
	names, err := sheetNames(s, wb)
	if err != nil {
		return nil, err
	}
	return listed(s, wb, names)
}

// AddSheet appends a worksheet after the last one.
func AddSheet(app com.Object, name string) (*Sheets, error) {
	if err := validateSheetName(name); err != nil {
		return nil, err
	}
	s := com.NewScope()
	defer s.Release()
	wb, err := activeWorkbook(s, app)
	if err != nil {
		return nil, err
	}
	names, err := sheetNames(s, wb)
	if err != nil {
		return nil, err
	}
	if findSheet(names, name) != 0 {
		return nil, office.InvalidArgument("sheet %q already exists", name)
	}
	worksheets, err := s.GetObject(wb, "Worksheets")
	if err != nil {
		return nil, err
	}
	last, err := s.GetObject(worksheets, "Item", len(names))
	if err != nil {
		return nil, err
	}
	// Worksheets.Add inserts before the active sheet; moving the old last
	// sheet in front of the new one makes the new sheet the last.
	if _, err := last.Call("Activate"); err != nil {
		return nil, err
	}
	sheet, err := s.CallObject(worksheets, "Add")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to add sheet %q", name)
	}
	if _, err := last.Call("Move", sheet); err != nil {
		return nil, err
	}
	if err := sheet.Put("Name", name); err != nil {
		return nil, errors.Wrapf(err, "failed to name sheet %q", name)
	}
	if _, err := sheet.Call("Activate"); err != nil {
		return nil, err
	}
	return &Sheets{Sheets: append(names, name), Active: name}, nil
}

// RenameSheet renames a worksheet.
func RenameSheet(app com.Object, oldName, newName string) (*Sheets, error) {
	if err := validateSheetName(newName); err != nil {
		return nil, err
	}
	s := com.NewScope()
	defer s.Release()
	wb, err := activeWorkbook(s, app)
	if err != nil {
		return nil, err
	}
	names, err := sheetNames(s, wb)
	if err != nil {
		return nil, err
	}
	index := findSheet(names, oldName)
	if index == 0 {
		return nil, office.OutOfRange("sheet %q not found", oldName)
	}
	if other := findSheet(names, newName); other != 0 && other != index {
		return nil, office.InvalidArgument("sheet %q already exists", newName)
	}
	sheet, err := sheetAt(s, wb, index)
	if err != nil {
		return nil, err
	}
	if err := sheet.Put("Name", newName); err != nil {
		return nil, errors.Wrapf(err, "failed to rename sheet %q", oldName)
	}
	names[index-1] = newName
	return listed(s, wb, names)
}

// DeleteSheet deletes a worksheet. The last visible sheet cannot be deleted.
func DeleteSheet(app com.Object, name string) (*Sheets, error) {
	s := com.NewScope()
	defer s.Release()
	wb, err := activeWorkbook(s, app)
	if err != nil {
		return nil, err
	}
	names, err := sheetNames(s, wb)
	if err != nil {
		return nil, err
	}
	index := findSheet(names, name)
	if index == 0 {
		return nil, office.OutOfRange("sheet %q not found", name)
	}
	if len(names) == 1 {
		return nil, office.InvalidArgument("cannot delete the only sheet %q", name)
	}
	sheet, err := sheetAt(s, wb, index)
	if err != nil {
		return nil, err
	}
	// Delete asks for confirmation unless alerts are off.
	alerts, err := com.Bool(app, "DisplayAlerts")
	if err != nil {
		return nil, err
	}
	if alerts {
		if err := app.Put("DisplayAlerts", false); err != nil {
			return nil, err
		}
		defer func() { _ = app.Put("DisplayAlerts", true) }()
	}
	if _, err := sheet.Call("Delete"); err != nil {
		return nil, errors.Wrapf(err, "failed to delete sheet %q", name)
	}
	return listed(s, wb, slices.Delete(names, index-1, index))
}

// ActivateSheet makes a worksheet the active sheet.
func ActivateSheet(app com.Object, name string) (*Sheets, error) {
	s := com.NewScope()
	defer s.Release()
	wb, err := activeWorkbook(s, app)
	if err != nil {
		return nil, err
	}
	names, err := sheetNames(s, wb)
	if err != nil {
		return nil, err
	}
	index := findSheet(names, name)
	if index == 0 {
		return nil, office.OutOfRange("sheet %q not found", name)
	}
	sheet, err := sheetAt(s, wb, index)
	if err != nil {
		return nil, err
	}
	if _, err := sheet.Call("Activate"); err != nil {
		return nil, errors.Wrapf(err, "failed to activate sheet %q", name)
	}
	return &Sheets{Sheets: names, Active: names[index-1]}, nil
}

func listed(s *com.Scope, wb com.Object, names []string) (*Sheets, error) {
	active, err := s.GetObject(wb, "ActiveSheet")
	if err != nil {
		return nil, err
	}
	activeName, err := com.String(active, "Name")
	if err != nil {
		return nil, err
	}
	return &Sheets{Sheets: names, Active: activeName}, nil
}
