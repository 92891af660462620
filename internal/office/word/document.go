// Package word translates Word operations into calls on the
// Word.Application object model.
package word

import (
	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// WdSaveOptions
const (
	wdDoNotSaveChanges = 0
	wdSaveChanges      = -1
)

// DocumentInfo describes a document after a lifecycle operation.
type DocumentInfo struct {
	Name      string `json:"name"`
	Path      string `json:"path,omitempty"`
	Documents int    `json:"documents"`
}

func activeDocument(s *com.Scope, app com.Object) (com.Object, error) {
	documents, err := s.GetObject(app, "Documents")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(documents, "Count")
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.Wrap(office.ErrNoDocument, "no Word document is open")
	}
	return s.GetObject(app, "ActiveDocument")
}

func describe(app com.Object, doc com.Object) (*DocumentInfo, error) {
	name, err := com.String(doc, "Name")
	if err != nil {
		return nil, err
	}
	path, err := com.String(doc, "FullName")
	if err != nil {
		return nil, err
	}
	s := com.NewScope()
	defer s.Release()
	documents, err := s.GetObject(app, "Documents")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(documents, "Count")
	if err != nil {
		return nil, err
	}
	return &DocumentInfo{Name: name, Path: path, Documents: count}, nil
}

// Create adds a blank document and makes it active.
func Create(app com.Object) (*DocumentInfo, error) {
	s := com.NewScope()
	defer s.Release()
	documents, err := s.GetObject(app, "Documents")
	if err != nil {
		return nil, err
	}
	doc, err := s.CallObject(documents, "Add")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create document")
	}
	return describe(app, doc)
}

// Open opens a document file.
func Open(app com.Object, path string) (*DocumentInfo, error) {
	s := com.NewScope()
	defer s.Release()
	documents, err := s.GetObject(app, "Documents")
	if err != nil {
		return nil, err
	}
	doc, err := s.CallObject(documents, "Open", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	return describe(app, doc)
}

// Save saves the active document, under path when it is given.
func Save(app com.Object, path string) (*DocumentInfo, error) {
	s := com.NewScope()
	defer s.Release()
	doc, err := activeDocument(s, app)
	if err != nil {
		return nil, err
	}
	if path == "" {
		_, err = doc.Call("Save")
	} else {
		_, err = doc.Call("SaveAs2", path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to save document")
	}
	return describe(app, doc)
}

// Close closes the active document.
func Close(app com.Object, save bool) (*DocumentInfo, error) {
	s := com.NewScope()
	defer s.Release()
	doc, err := activeDocument(s, app)
	if err != nil {
		return nil, err
	}
	name, err := com.String(doc, "Name")
	if err != nil {
		return nil, err
	}
	option := wdDoNotSaveChanges
	if save {
		option = wdSaveChanges
	}
	if _, err := doc.Call("Close", option); err != nil {
		return nil, errors.Wrapf(err, "failed to close %s", name)
	}
	documents, err := s.GetObject(app, "Documents")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(documents, "Count")
	if err != nil {
		return nil, err
	}
	return &DocumentInfo{Name: name, Documents: count}, nil
}
