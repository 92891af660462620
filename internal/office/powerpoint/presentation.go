// Package powerpoint translates slide operations into calls on the
// PowerPoint.Application object model.
package powerpoint

import (
	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// MsoTriState
const (
	msoFalse = 0
	msoTrue  = -1
)

// PresentationInfo describes a presentation after a lifecycle operation.
type PresentationInfo struct {
	Name          string `json:"name"`
	Path          string `json:"path,omitempty"`
	Slides        int    `json:"slides"`
	Presentations int    `json:"presentations"`
}

func activePresentation(s *com.Scope, app com.Object) (com.Object, error) {
	presentations, err := s.GetObject(app, "Presentations")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(presentations, "Count")
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.Wrap(office.ErrNoDocument, "no PowerPoint presentation is open")
	}
	return s.GetObject(app, "ActivePresentation")
}

func describe(app, pres com.Object) (*PresentationInfo, error) {
	s := com.NewScope()
	defer s.Release()
	name, err := com.String(pres, "Name")
	if err != nil {
		return nil, err
	}
	path, err := com.String(pres, "FullName")
	if err != nil {
		return nil, err
	}
	slides, err := s.GetObject(pres, "Slides")
	if err != nil {
		return nil, err
	}
	slideCount, err := com.Int(slides, "Count")
	if err != nil {
		return nil, err
	}
	presentations, err := s.GetObject(app, "Presentations")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(presentations, "Count")
	if err != nil {
		return nil, err
	}
	return &PresentationInfo{Name: name, Path: path, Slides: slideCount, Presentations: count}, nil
}

// Create adds an empty presentation in a new window.
func Create(app com.Object) (*PresentationInfo, error) {
	s := com.NewScope()
	defer s.Release()
	presentations, err := s.GetObject(app, "Presentations")
	if err != nil {
		return nil, err
	}
	pres, err := s.CallObject(presentations, "Add", msoTrue)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create presentation")
	}
	return describe(app, pres)
}

// Open opens a presentation file.
func Open(app com.Object, path string) (*PresentationInfo, error) {
	s := com.NewScope()
	defer s.Release()
	presentations, err := s.GetObject(app, "Presentations")
	if err != nil {
		return nil, err
	}
	pres, err := s.CallObject(presentations, "Open", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	return describe(app, pres)
}

// Save saves the active presentation, under path when it is given.
func Save(app com.Object, path string) (*PresentationInfo, error) {
	s := com.NewScope()
	defer s.Release()
	pres, err := activePresentation(s, app)
	if err != nil {
		return nil, err
	}
	if path == "" {
		_, err = pres.Call("Save")
	} else {
		_, err = pres.Call("SaveAs", path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to save presentation")
	}
	return describe(app, pres)
}

// Close closes the active presentation. Presentation.Close has no save
// option, so unsaved changes are either saved first or marked as saved.
func Close(app com.Object, save bool) (*PresentationInfo, error) {
	s := com.NewScope()
	defer s.Release()
	pres, err := activePresentation(s, app)
	if err != nil {
		return nil, err
	}
	name, err := com.String(pres, "Name")
	if err != nil {
		return nil, err
	}
	if save {
		if _, err := pres.Call("Save"); err != nil {
			return nil, errors.Wrapf(err, "failed to save %s", name)
		}
	} else if err := pres.Put("Saved", msoTrue); err != nil {
		return nil, err
	}
	if _, err := pres.Call("Close"); err != nil {
		return nil, errors.Wrapf(err, "failed to close %s", name)
	}
	presentations, err := s.GetObject(app, "Presentations")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(presentations, "Count")
	if err != nil {
		return nil, err
	}
	return &PresentationInfo{Name: name, Presentations: count}, nil
}
