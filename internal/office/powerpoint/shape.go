package powerpoint

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

const msoTextOrientationHorizontal = 1

// shapeAt returns the 1-based shape of a slide.
func shapeAt(s *com.Scope, app com.Object, slideIndex, shapeIndex int) (com.Object, error) {
	slide, err := slideAt(s, app, slideIndex)
	if err != nil {
		return nil, err
	}
	shapes, err := s.GetObject(slide, "Shapes")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(shapes, "Count")
	if err != nil {
		return nil, err
	}
	if shapeIndex < 1 || shapeIndex > count {
		return nil, office.OutOfRange("shape %d does not exist, slide %d has %d", shapeIndex, slideIndex, count)
	}
	return s.CallObject(shapes, "Item", shapeIndex)
}

func textRange(s *com.Scope, shape com.Object, shapeIndex int) (com.Object, error) {
	hasText, err := com.Bool(shape, "HasTextFrame")
	if err != nil {
		return nil, err
	}
	if !hasText {
		return nil, office.InvalidArgument("shape %d has no text frame", shapeIndex)
	}
	return s.Path(shape, "TextFrame", "TextRange")
}

// ShapeInfo identifies a shape.
type ShapeInfo struct {
	Slide int    `json:"slide"`
	Shape int    `json:"shape"`
	Name  string `json:"name"`
}

// WriteText replaces the text of a shape. Newlines start new paragraphs.
func WriteText(app com.Object, slideIndex, shapeIndex int, text string) (*ShapeInfo, error) {
	s := com.NewScope()
	defer s.Release()
	shape, err := shapeAt(s, app, slideIndex, shapeIndex)
	if err != nil {
		return nil, err
	}
	tr, err := textRange(s, shape, shapeIndex)
	if err != nil {
		return nil, err
	}
	if err := tr.Put("Text", strings.ReplaceAll(text, "\n", "\r")); err != nil {
		return nil, errors.Wrapf(err, "failed to write text to shape %d", shapeIndex)
	}
	name, err := com.String(shape, "Name")
	if err != nil {
		return nil, err
	}
	return &ShapeInfo{Slide: slideIndex, Shape: shapeIndex, Name: name}, nil
}

// Textbox describes a new text box. Geometry is in points.
type Textbox struct {
	Text   string
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Textbox defaults.
const (
	DefaultTextboxLeft   = 100.0
	DefaultTextboxTop    = 100.0
	DefaultTextboxWidth  = 400.0
	DefaultTextboxHeight = 50.0
)

// AddTextbox adds a horizontal text box to a slide.
func AddTextbox(app com.Object, slideIndex int, tb Textbox) (*ShapeInfo, error) {
	if tb.Width <= 0 || tb.Height <= 0 {
		return nil, office.InvalidArgument("text box size %gx%g must be positive", tb.Width, tb.Height)
	}
	s := com.NewScope()
	defer s.Release()
	slide, err := slideAt(s, app, slideIndex)
	if err != nil {
		return nil, err
	}
	shapes, err := s.GetObject(slide, "Shapes")
	if err != nil {
		return nil, err
	}
	box, err := s.CallObject(shapes, "AddTextbox", msoTextOrientationHorizontal, tb.Left, tb.Top, tb.Width, tb.Height)
	if err != nil {
		return nil, errors.Wrap(err, "failed to add text box")
	}
	tr, err := s.Path(box, "TextFrame", "TextRange")
	if err != nil {
		return nil, err
	}
	if err := tr.Put("Text", strings.ReplaceAll(tb.Text, "\n", "\r")); err != nil {
		return nil, err
	}
	count, err := com.Int(shapes, "Count")
	if err != nil {
		return nil, err
	}
	name, err := com.String(box, "Name")
	if err != nil {
		return nil, err
	}
	return &ShapeInfo{Slide: slideIndex, Shape: count, Name: name}, nil
}

// SetFont changes the font of the whole text of a shape.
func SetFont(app com.Object, slideIndex, shapeIndex int, f office.Font) (*ShapeInfo, error) {
	if f.Empty() {
		return nil, office.InvalidArgument("no font property given")
	}
	color, hasColor, err := f.BGR()
	if err != nil {
		return nil, err
	}
	s := com.NewScope()
	defer s.Release()
	shape, err := shapeAt(s, app, slideIndex, shapeIndex)
	if err != nil {
		return nil, err
	}
	tr, err := textRange(s, shape, shapeIndex)
	if err != nil {
		return nil, err
	}
	font, err := s.GetObject(tr, "Font")
	if err != nil {
		return nil, err
	}
	set := office.NewSetter(font)
	if f.Name != nil {
		set.Set("Name", *f.Name)
	}
	if f.Size != nil {
		set.Set("Size", *f.Size)
	}
	if f.Bold != nil {
		set.Set("Bold", com.TriState(*f.Bold))
	}
	if f.Italic != nil {
		set.Set("Italic", com.TriState(*f.Italic))
	}
	if f.Underline != nil {
		set.Set("Underline", com.TriState(*f.Underline))
	}
	if err := set.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to set font of shape %d", shapeIndex)
	}
	if hasColor {
		fontColor, err := s.GetObject(font, "Color")
		if err != nil {
			return nil, err
		}
		if err := fontColor.Put("RGB", color); err != nil {
			return nil, err
		}
	}
	name, err := com.String(shape, "Name")
	if err != nil {
		return nil, err
	}
	return &ShapeInfo{Slide: slideIndex, Shape: shapeIndex, Name: name}, nil
}
