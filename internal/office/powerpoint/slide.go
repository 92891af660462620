package powerpoint

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// PpSlideLayout
var layouts = map[string]int{
	"title":                1,
	"text":                 2,
	"two_column_text":      3,
	"table":                4,
	"text_and_chart":       5,
	"chart_and_text":       6,
	"org_chart":            7,
	"chart":                8,
	"title_only":           11,
	"blank":                12,
	"title_and_content":    16,
	"section_header":       33,
	"comparison":           34,
	"content_with_caption": 35,
	"picture_with_caption": 36,
}

// Layouts lists the accepted layout names.
func Layouts() []string {
	return []string{
		"title", "text", "two_column_text", "table", "text_and_chart", "chart_and_text", "org_chart",
		"chart", "title_only", "blank", "title_and_content", "section_header", "comparison",
		"content_with_caption", "picture_with_caption",
	}
}

// ParseLayout accepts a PpSlideLayout number or one of Layouts.
func ParseLayout(layout string) (int, error) {
	layout = strings.ToLower(strings.TrimSpace(layout))
	if layout == "" {
		return layouts["blank"], nil
	}
	if n, err := strconv.Atoi(layout); err == nil {
		if n < 1 || n > 36 {
			return 0, office.InvalidArgument("layout %d is not a PpSlideLayout value", n)
		}
		return n, nil
	}
	n, ok := layouts[strings.ReplaceAll(layout, " ", "_")]
	if !ok {
		return 0, office.InvalidArgument("unknown layout %q", layout)
	}
	return n, nil
}

// SlideInfo reports the slide an operation created or changed.
type SlideInfo struct {
	Slide int `json:"slide"`
	Count int `json:"count"`
}

func slideCount(s *com.Scope, pres com.Object) (com.Object, int, error) {
	slides, err := s.GetObject(pres, "Slides")
	if err != nil {
		return nil, 0, err
	}
	count, err := com.Int(slides, "Count")
	if err != nil {
		return nil, 0, err
	}
	return slides, count, nil
}

// slideAt returns the 1-based slide of the active presentation.
func slideAt(s *com.Scope, app com.Object, index int) (com.Object, error) {
	pres, err := activePresentation(s, app)
	if err != nil {
		return nil, err
	}
	slides, count, err := slideCount(s, pres)
	if err != nil {
		return nil, err
	}
	if index < 1 || index > count {
		return nil, office.OutOfRange("slide %d does not exist, the presentation has %d", index, count)
	}
	return s.CallObject(slides, "Item", index)
}

// AddSlide inserts a slide at index, or appends it when index is 0.
func AddSlide(app com.Object, layout int, index int) (*SlideInfo, error) {
	s := com.NewScope()
	defer s.Release()
	pres, err := activePresentation(s, app)
	if err != nil {
		return nil, err
	}
	slides, count, err := slideCount(s, pres)
	if err != nil {
		return nil, err
	}
	if index == 0 {
		index = count + 1
	}
	if index < 1 || index > count+1 {
		return nil, office.OutOfRange("slide index %d is outside 1-%d", index, count+1)
	}
	if _, err := s.CallObject(slides, "Add", index, layout); err != nil {
		return nil, errors.Wrapf(err, "failed to add slide with layout %d", layout)
	}
	return &SlideInfo{Slide: index, Count: count + 1}, nil
}

// DeleteSlide deletes a slide.
func DeleteSlide(app com.Object, index int) (*SlideInfo, error) {
	s := com.NewScope()
	defer s.Release()
	slide, err := slideAt(s, app, index)
	if err != nil {
		return nil, err
	}
	if _, err := slide.Call("Delete"); err != nil {
		return nil, errors.Wrapf(err, "failed to delete slide %d", index)
	}
	count, err := SlideCount(app)
	if err != nil {
		return nil, err
	}
	return &SlideInfo{Slide: index, Count: count}, nil
}

// SlideCount returns the number of slides of the active presentation.
func SlideCount(app com.Object) (int, error) {
	s := com.NewScope()
	defer s.Release()
	pres, err := activePresentation(s, app)
	if err != nil {
		return 0, err
	}
	_, count, err := slideCount(s, pres)
	return count, err
}

// Shape describes one shape of a slide.
type Shape struct {
	Index  int     `json:"index"`
	Name   string  `json:"name"`
	Type   int     `json:"type"`
	Text   *string `json:"text,omitempty"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SlideContent is the shapes of a slide.
type SlideContent struct {
	Slide  int     `json:"slide"`
	Layout int     `json:"layout"`
	Shapes []Shape `json:"shapes"`
}

// ReadSlide lists the shapes of a slide with their text and geometry.
func ReadSlide(app com.Object, index int) (*SlideContent, error) {
	s := com.NewScope()
	defer s.Release()
	slide, err := slideAt(s, app, index)
	if err != nil {
		return nil, err
	}
	layout, err := com.Int(slide, "Layout")
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
	content := &SlideContent{Slide: index, Layout: layout, Shapes: make([]Shape, 0, count)}
	for i := 1; i <= count; i++ {
		shape, err := s.CallObject(shapes, "Item", i)
		if err != nil {
			return nil, err
		}
		info, err := describeShape(s, shape, i)
		if err != nil {
			return nil, err
		}
		content.Shapes = append(content.Shapes, *info)
	}
	return content, nil
}

func describeShape(s *com.Scope, shape com.Object, index int) (*Shape, error) {
	info := &Shape{Index: index}
	var err error
	if info.Name, err = com.String(shape, "Name"); err != nil {
		return nil, err
	}
	if info.Type, err = com.Int(shape, "Type"); err != nil {
		return nil, err
	}
	for name, dst := range map[string]*float64{
		"Left":   &info.Left,
		"Top":    &info.Top,
		"Width":  &info.Width,
		"Height": &info.Height,
	} {
		if *dst, err = com.Float(shape, name); err != nil {
			return nil, err
		}
	}
	hasText, err := com.Bool(shape, "HasTextFrame")
	if err != nil {
		return nil, err
	}
	if hasText {
		textRange, err := s.Path(shape, "TextFrame", "TextRange")
		if err != nil {
			return nil, err
		}
		text, err := com.String(textRange, "Text")
		if err != nil {
			return nil, err
		}
		// PowerPoint separates paragraphs with a carriage return.
		text = strings.ReplaceAll(text, "\r", "\n")
		info.Text = &text
	}
	return info, nil
}
