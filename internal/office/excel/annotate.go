package excel

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// Comment is a note attached to a cell.
type Comment struct {
	Cell   string `json:"cell"`
	Author string `json:"author,omitempty"`
	Text   string `json:"text"`
}

// Comments lists the notes of a sheet.
type Comments struct {
	Sheet    string    `json:"sheet"`
	Comments []Comment `json:"comments"`
}

// AddComment attaches a note to a cell, replacing the existing one. Excel
// stamps the note with the user name of the application; a given author
// is written as the first line of the text instead.
func AddComment(app com.Object, sheetName, cell, text, author string) (*Comment, error) {
	if _, _, err := ParseCell(cell); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, office.InvalidArgument("comment text is empty")
	}
	body := text
	if author != "" {
		body = author + ":\n" + text
	}
	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return nil, err
	}
	r, err := s.GetObject(sheet, "Range", cell)
	if err != nil {
		return nil, err
	}
	if _, err := r.Call("ClearComments"); err != nil {
		return nil, err
	}
	if _, err := s.CallObject(r, "AddComment", body); err != nil {
		return nil, errors.Wrapf(err, "failed to comment %s", cell)
	}
	return &Comment{Cell: strings.ToUpper(cell), Author: author, Text: text}, nil
}

// GetComments reads every note of a sheet in the order Excel keeps them.
func GetComments(app com.Object, sheetName string) (*Comments, error) {
	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return nil, err
	}
	name, err := com.String(sheet, "Name")
	if err != nil {
		return nil, err
	}
	comments, err := s.GetObject(sheet, "Comments")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(comments, "Count")
	if err != nil {
		return nil, err
	}
	result := &Comments{Sheet: name, Comments: make([]Comment, 0, count)}
	for i := 1; i <= count; i++ {
		c, err := s.GetObject(comments, "Item", i)
		if err != nil {
			return nil, err
		}
		parent, err := s.GetObject(c, "Parent")
		if err != nil {
			return nil, err
		}
		cell, err := com.String(parent, "Address", false, false)
		if err != nil {
			return nil, err
		}
		author, err := com.String(c, "Author")
		if err != nil {
			return nil, err
		}
		text, err := c.Call("Text")
		if err != nil {
			return nil, err
		}
		result.Comments = append(result.Comments, Comment{Cell: cell, Author: author, Text: com.ToString(text)})
	}
	return result, nil
}

// Hyperlink is a link anchored to a cell.
type Hyperlink struct {
	Cell    string `json:"cell"`
	URL     string `json:"url"`
	Display string `json:"display"`
}

// AddHyperlink links a cell to url. The cell shows display, or the url
// itself when display is empty.
func AddHyperlink(app com.Object, sheetName, cell, url, display string) (*Hyperlink, error) {
	if _, _, err := ParseCell(cell); err != nil {
		return nil, err
	}
	if url == "" {
		return nil, office.InvalidArgument("url is empty")
	}
	if display == "" {
		display = url
	}
	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return nil, err
	}
	anchor, err := s.GetObject(sheet, "Range", cell)
	if err != nil {
		return nil, err
	}
	links, err := s.GetObject(sheet, "Hyperlinks")
	if err != nil {
		return nil, err
	}
	// Anchor, Address, SubAddress, ScreenTip, TextToDisplay
	if _, err := s.CallObject(links, "Add", anchor, url, "", "", display); err != nil {
		return nil, errors.Wrapf(err, "failed to link %s", cell)
	}
	return &Hyperlink{Cell: strings.ToUpper(cell), URL: url, Display: display}, nil
}

// NamedRange is a defined name of the workbook or of one sheet.
type NamedRange struct {
	Name     string `json:"name"`
	RefersTo string `json:"refers_to"`
	Scope    string `json:"scope"`
}

const workbookScope = "workbook"

// checkName rejects names Excel refuses: empty, containing spaces, or
// looking like a cell reference.
func checkName(name string) error {
	if name == "" {
		return office.InvalidArgument("name is empty")
	}
	if strings.ContainsAny(name, " \t") {
		return office.InvalidArgument("name %q contains spaces", name)
	}
	if _, _, err := excelize.CellNameToCoordinates(name); err == nil {
		return office.InvalidArgument("name %q is a cell reference", name)
	}
	first := name[0]
	if !(first == '_' || first == '\\' || first >= 'A' && first <= 'Z' || first >= 'a' && first <= 'z' || first >= 0x80) {
		return office.InvalidArgument("name %q must start with a letter or underscore", name)
	}
	return nil
}

// SetNamedRange defines or redefines a name. refersTo is a reference such
// as "Sheet1!$A$1:$B$5"; the leading = is optional. An empty scope or
// "workbook" defines a workbook-level name, any other scope names the
// sheet that owns it.
func SetNamedRange(app com.Object, name, refersTo, scope string) (*NamedRange, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	refersTo = strings.TrimSpace(refersTo)
	if refersTo == "" {
		return nil, office.InvalidArgument("refers_to is empty")
	}
	if !strings.HasPrefix(refersTo, "=") {
		refersTo = "=" + refersTo
	}
	s := com.NewScope()
	defer s.Release()
	owner, err := activeWorkbook(s, app)
	if err != nil {
		return nil, err
	}
	if scope == "" || strings.EqualFold(scope, workbookScope) {
		scope = workbookScope
	} else {
		if owner, err = worksheet(s, app, scope); err != nil {
			return nil, err
		}
	}
	names, err := s.GetObject(owner, "Names")
	if err != nil {
		return nil, err
	}
	if _, err := s.CallObject(names, "Add", name, refersTo); err != nil {
		return nil, errors.Wrapf(err, "failed to define %s", name)
	}
	return &NamedRange{Name: name, RefersTo: refersTo, Scope: scope}, nil
}
