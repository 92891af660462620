package word

import (
	"math"

	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// Target scopes.
const (
	ScopeSelection     = "selection"
	ScopeDocument      = "document"
	ScopeLastParagraph = "last_paragraph"
)

// Scopes lists the accepted target scopes.
func Scopes() []string {
	return []string{ScopeSelection, ScopeDocument, ScopeLastParagraph}
}

// Target selects the range a formatting operation applies to. Start and
// End, when both set, pick an explicit character range and win over Scope.
// A collapsed selection, as left behind by typing, stands for the last
// paragraph that holds text.
type Target struct {
	Scope string
	Start *int
	End   *int
}

func (t Target) resolve(s *com.Scope, app, doc com.Object) (com.Object, error) {
	if t.Start != nil || t.End != nil {
		if t.Start == nil || t.End == nil {
			return nil, office.InvalidArgument("start and end must be given together")
		}
		if *t.Start < 0 || *t.End < *t.Start {
			return nil, office.InvalidArgument("invalid character range %d-%d", *t.Start, *t.End)
		}
		return s.CallObject(doc, "Range", *t.Start, *t.End)
	}
	switch t.Scope {
	case "", ScopeSelection:
		return selectionOrParagraph(s, app, doc)
	case ScopeDocument:
		return s.GetObject(doc, "Content")
	case ScopeLastParagraph:
		return lastTextParagraph(s, doc)
	}
	return nil, office.InvalidArgument("unknown scope %q", t.Scope)
}

func selectionOrParagraph(s *com.Scope, app, doc com.Object) (com.Object, error) {
	r, err := s.Path(app, "Selection", "Range")
	if err != nil {
		return nil, err
	}
	start, err := com.Int(r, "Start")
	if err != nil {
		return nil, err
	}
	end, err := com.Int(r, "End")
	if err != nil {
		return nil, err
	}
	if start < end {
		return r, nil
	}
	return lastTextParagraph(s, doc)
}

// lastTextParagraph returns the last paragraph that holds text. Typing a
// trailing newline leaves an empty paragraph at the end of the document.
func lastTextParagraph(s *com.Scope, doc com.Object) (com.Object, error) {
	paragraphs, err := s.GetObject(doc, "Paragraphs")
	if err != nil {
		return nil, err
	}
	count, err := com.Int(paragraphs, "Count")
	if err != nil {
		return nil, err
	}
	for i := count; i >= 1; i-- {
		paragraph, err := s.CallObject(paragraphs, "Item", i)
		if err != nil {
			return nil, err
		}
		r, err := s.GetObject(paragraph, "Range")
		if err != nil {
			return nil, err
		}
		text, err := com.String(r, "Text")
		if err != nil {
			return nil, err
		}
		if normalizeText(text) != "\n" && text != "" {
			return r, nil
		}
	}
	return s.GetObject(doc, "Content")
}

// WdUnderline
const (
	wdUnderlineNone   = 0
	wdUnderlineSingle = 1
)

// SetFont changes the font of the target range.
func SetFont(app com.Object, target Target, font office.Font) error {
	if font.Empty() {
		return office.InvalidArgument("no font property given")
	}
	color, hasColor, err := font.BGR()
	if err != nil {
		return err
	}
	s := com.NewScope()
	defer s.Release()
	doc, err := activeDocument(s, app)
	if err != nil {
		return err
	}
	r, err := target.resolve(s, app, doc)
	if err != nil {
		return err
	}
	f, err := s.GetObject(r, "Font")
	if err != nil {
		return err
	}
	set := office.NewSetter(f)
	if font.Name != nil {
		set.Set("Name", *font.Name)
	}
	if font.Size != nil {
		set.Set("Size", *font.Size)
	}
	if font.Bold != nil {
		set.Set("Bold", *font.Bold)
	}
	if font.Italic != nil {
		set.Set("Italic", *font.Italic)
	}
	if font.Underline != nil {
		underline := wdUnderlineNone
		if *font.Underline {
			underline = wdUnderlineSingle
		}
		set.Set("Underline", underline)
	}
	set.SetIf(hasColor, "Color", color)
	return errors.Wrap(set.Err(), "failed to set font")
}

// WdParagraphAlignment
var alignments = map[string]int{
	"left":    0,
	"center":  1,
	"right":   2,
	"justify": 3,
}

// Alignments lists the accepted paragraph alignments.
func Alignments() []string {
	return []string{"left", "center", "right", "justify"}
}

// WdLineSpacing
const (
	wdLineSpaceSingle   = 0
	wdLineSpace1pt5     = 1
	wdLineSpaceDouble   = 2
	wdLineSpaceMultiple = 5
)

// Paragraph holds the paragraph format properties to change. Lengths are in
// points; LineSpacing is a multiple of single spacing.
type Paragraph struct {
	Alignment       *string
	LineSpacing     *float64
	SpaceBefore     *float64
	SpaceAfter      *float64
	LeftIndent      *float64
	FirstLineIndent *float64
}

func (p Paragraph) empty() bool {
	return p.Alignment == nil && p.LineSpacing == nil && p.SpaceBefore == nil &&
		p.SpaceAfter == nil && p.LeftIndent == nil && p.FirstLineIndent == nil
}

// SetParagraph changes the paragraph format of the target range.
func SetParagraph(app com.Object, target Target, p Paragraph) error {
	if p.empty() {
		return office.InvalidArgument("no paragraph property given")
	}
	alignment := -1
	if p.Alignment != nil {
		a, ok := alignments[*p.Alignment]
		if !ok {
			return office.InvalidArgument("unknown alignment %q", *p.Alignment)
		}
		alignment = a
	}
	if p.LineSpacing != nil && *p.LineSpacing <= 0 {
		return office.InvalidArgument("line spacing must be positive")
	}

	s := com.NewScope()
	defer s.Release()
	doc, err := activeDocument(s, app)
	if err != nil {
		return err
	}
	r, err := target.resolve(s, app, doc)
	if err != nil {
		return err
	}
	format, err := s.GetObject(r, "ParagraphFormat")
	if err != nil {
		return err
	}
	set := office.NewSetter(format)
	set.SetIf(alignment >= 0, "Alignment", alignment)
	if p.LineSpacing != nil {
		rule, points := lineSpacing(*p.LineSpacing)
		set.Set("LineSpacingRule", rule)
		if rule == wdLineSpaceMultiple {
			set.Set("LineSpacing", points)
		}
	}
	if p.SpaceBefore != nil {
		set.Set("SpaceBefore", *p.SpaceBefore)
	}
	if p.SpaceAfter != nil {
		set.Set("SpaceAfter", *p.SpaceAfter)
	}
	if p.LeftIndent != nil {
		set.Set("LeftIndent", *p.LeftIndent)
	}
	if p.FirstLineIndent != nil {
		set.Set("FirstLineIndent", *p.FirstLineIndent)
	}
	return errors.Wrap(set.Err(), "failed to set paragraph format")
}

// lineSpacing maps a multiple to a WdLineSpacing rule. Multiples other than
// 1, 1.5 and 2 are expressed in points (12pt per line).
func lineSpacing(multiple float64) (int, float64) {
	const eps = 1e-9
	switch {
	case math.Abs(multiple-1) < eps:
		return wdLineSpaceSingle, 12
	case math.Abs(multiple-1.5) < eps:
		return wdLineSpace1pt5, 18
	case math.Abs(multiple-2) < eps:
		return wdLineSpaceDouble, 24
	}
	return wdLineSpaceMultiple, multiple * 12
}

// SetStyle applies a named style, e.g. "Heading 1", to the target range.
func SetStyle(app com.Object, target Target, style string) error {
	if style == "" {
		return office.InvalidArgument("style is empty")
	}
	s := com.NewScope()
	defer s.Release()
	doc, err := activeDocument(s, app)
	if err != nil {
		return err
	}
	r, err := target.resolve(s, app, doc)
	if err != nil {
		return err
	}
	if err := r.Put("Style", style); err != nil {
		return errors.Wrapf(err, "failed to apply style %q", style)
	}
	return nil
}
