package excel

import (
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// Formatted reports the range an operation changed.
type Formatted struct {
	Range string `json:"range"`
}

// onRange resolves rangeStr on the sheet and passes it to fn.
func onRange(app com.Object, sheetName, rangeStr string, fn func(s *com.Scope, r com.Object) error) (*Formatted, error) {
	if _, _, _, _, err := ParseRange(rangeStr); err != nil {
		return nil, err
	}
	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return nil, err
	}
	r, err := s.GetObject(sheet, "Range", rangeStr)
	if err != nil {
		return nil, err
	}
	if err := fn(s, r); err != nil {
		return nil, err
	}
	return &Formatted{Range: NormalizeRange(rangeStr)}, nil
}

// XlUnderlineStyle
const (
	xlUnderlineStyleNone   = -4142
	xlUnderlineStyleSingle = 2
)

// SetFont changes the font of a range.
func SetFont(app com.Object, sheetName, rangeStr string, font office.Font) (*Formatted, error) {
	if font.Empty() {
		return nil, office.InvalidArgument("no font property given")
	}
	color, hasColor, err := font.BGR()
	if err != nil {
		return nil, err
	}
	return onRange(app, sheetName, rangeStr, func(s *com.Scope, r com.Object) error {
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
			underline := xlUnderlineStyleNone
			if *font.Underline {
				underline = xlUnderlineStyleSingle
			}
			set.Set("Underline", underline)
		}
		set.SetIf(hasColor, "Color", color)
		return errors.Wrap(set.Err(), "failed to set font")
	})
}

// XlHAlign
var horizontalAlignments = map[string]int{
	"general": 1,
	"left":    -4131,
	"center":  -4108,
	"right":   -4152,
	"fill":    5,
	"justify": -4130,
}

// XlVAlign
var verticalAlignments = map[string]int{
	"top":     -4160,
	"center":  -4108,
	"bottom":  -4107,
	"justify": -4130,
}

// HorizontalAlignments lists the accepted horizontal alignments.
func HorizontalAlignments() []string {
	return []string{"general", "left", "center", "right", "fill", "justify"}
}

// VerticalAlignments lists the accepted vertical alignments.
func VerticalAlignments() []string {
	return []string{"top", "center", "bottom", "justify"}
}

// Alignment holds the alignment properties to change.
type Alignment struct {
	Horizontal *string
	Vertical   *string
	WrapText   *bool
}

// SetAlignment changes the alignment of a range.
func SetAlignment(app com.Object, sheetName, rangeStr string, a Alignment) (*Formatted, error) {
	if a.Horizontal == nil && a.Vertical == nil && a.WrapText == nil {
		return nil, office.InvalidArgument("no alignment property given")
	}
	horizontal, vertical := 0, 0
	if a.Horizontal != nil {
		v, ok := horizontalAlignments[strings.ToLower(*a.Horizontal)]
		if !ok {
			return nil, office.InvalidArgument("unknown horizontal alignment %q", *a.Horizontal)
		}
		horizontal = v
	}
	if a.Vertical != nil {
		v, ok := verticalAlignments[strings.ToLower(*a.Vertical)]
		if !ok {
			return nil, office.InvalidArgument("unknown vertical alignment %q", *a.Vertical)
		}
		vertical = v
	}
	return onRange(app, sheetName, rangeStr, func(s *com.Scope, r com.Object) error {
		set := office.NewSetter(r).
			SetIf(a.Horizontal != nil, "HorizontalAlignment", horizontal).
			SetIf(a.Vertical != nil, "VerticalAlignment", vertical)
		if a.WrapText != nil {
			set.Set("WrapText", *a.WrapText)
		}
		return errors.Wrap(set.Err(), "failed to set alignment")
	})
}

const xlNone = -4142

// SetFill sets the background color of a range. The color "none" removes
// the fill.
func SetFill(app com.Object, sheetName, rangeStr, color string) (*Formatted, error) {
	remove := strings.EqualFold(color, "none")
	bgr := 0
	if !remove {
		c, err := com.Color(color)
		if err != nil {
			return nil, office.InvalidArgument("%v", err)
		}
		bgr = c
	}
	return onRange(app, sheetName, rangeStr, func(s *com.Scope, r com.Object) error {
		interior, err := s.GetObject(r, "Interior")
		if err != nil {
			return err
		}
		if remove {
			return interior.Put("ColorIndex", xlNone)
		}
		return interior.Put("Color", bgr)
	})
}

// XlBordersIndex
var borderEdges = map[string]int{
	"left":              7,
	"top":               8,
	"bottom":            9,
	"right":             10,
	"inside_vertical":   11,
	"inside_horizontal": 12,
}

var edgeGroups = map[string][]string{
	"all":     {"left", "top", "bottom", "right", "inside_vertical", "inside_horizontal"},
	"outline": {"left", "top", "bottom", "right"},
	"inside":  {"inside_vertical", "inside_horizontal"},
}

// XlLineStyle
const (
	xlContinuous = 1
	xlDash       = -4115
	xlDot        = -4118
	xlDouble     = -4119
)

// XlBorderWeight
const (
	xlHairline = 1
	xlThin     = 2
	xlMedium   = -4138
	xlThick    = 4
)

type borderStyle struct {
	lineStyle int
	weight    int
}

var borderStyles = map[string]borderStyle{
	"thin":     {xlContinuous, xlThin},
	"medium":   {xlContinuous, xlMedium},
	"thick":    {xlContinuous, xlThick},
	"hairline": {xlContinuous, xlHairline},
	"double":   {xlDouble, xlThick},
	"dashed":   {xlDash, xlThin},
	"dotted":   {xlDot, xlThin},
	"none":     {xlNone, 0},
}

// BorderStyles lists the accepted border styles.
func BorderStyles() []string {
	return []string{"thin", "medium", "thick", "hairline", "double", "dashed", "dotted", "none"}
}

// parseEdges expands "all", "outline", "inside" or a comma separated list
// of edge names.
func parseEdges(edges string) ([]string, error) {
	if edges == "" {
		edges = "all"
	}
	var names []string
	for _, e := range strings.Split(strings.ToLower(edges), ",") {
		e = strings.TrimSpace(e)
		if group, ok := edgeGroups[e]; ok {
			names = append(names, group...)
			continue
		}
		if _, ok := borderEdges[e]; !ok {
			return nil, office.InvalidArgument("unknown border edge %q", e)
		}
		names = append(names, e)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Border describes a border change.
type Border struct {
	Style string
	Edges string
	Color *string
}

// SetBorder draws borders on the edges of a range. Inside edges are skipped
// when the range has a single row or column, where Excel rejects them.
func SetBorder(app com.Object, sheetName, rangeStr string, b Border) (*Formatted, error) {
	style, ok := borderStyles[strings.ToLower(b.Style)]
	if !ok {
		return nil, office.InvalidArgument("unknown border style %q", b.Style)
	}
	edges, err := parseEdges(b.Edges)
	if err != nil {
		return nil, err
	}
	color, hasColor := 0, false
	if b.Color != nil {
		c, err := com.Color(*b.Color)
		if err != nil {
			return nil, office.InvalidArgument("%v", err)
		}
		color, hasColor = c, true
	}
	startCol, startRow, endCol, endRow, err := ParseRange(rangeStr)
	if err != nil {
		return nil, err
	}
	return onRange(app, sheetName, rangeStr, func(s *com.Scope, r com.Object) error {
		borders, err := s.GetObject(r, "Borders")
		if err != nil {
			return err
		}
		for _, edge := range edges {
			if edge == "inside_vertical" && startCol == endCol || edge == "inside_horizontal" && startRow == endRow {
				continue
			}
			border, err := s.GetObject(borders, "Item", borderEdges[edge])
			if err != nil {
				return err
			}
			set := office.NewSetter(border).Set("LineStyle", style.lineStyle)
			if style.lineStyle != xlNone {
				set.Set("Weight", style.weight)
				set.SetIf(hasColor, "Color", color)
			}
			if err := set.Err(); err != nil {
				return errors.Wrapf(err, "failed to set %s border", edge)
			}
		}
		return nil
	})
}

// SetNumberFormat applies a number format code such as "#,##0.00".
func SetNumberFormat(app com.Object, sheetName, rangeStr, format string) (*Formatted, error) {
	if format == "" {
		return nil, office.InvalidArgument("number format is empty")
	}
	return onRange(app, sheetName, rangeStr, func(s *com.Scope, r com.Object) error {
		return errors.Wrapf(r.Put("NumberFormat", format), "failed to apply number format %q", format)
	})
}
