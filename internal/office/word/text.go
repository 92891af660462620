package word

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// WdBreakType
var breakTypes = map[string]int{
	"section_next":       2,
	"section_continuous": 3,
	"line":               6,
	"page":               7,
	"column":             8,
	"text_wrapping":      11,
}

// BreakTypes lists the accepted break names.
func BreakTypes() []string {
	return []string{"line", "page", "column", "section_next", "section_continuous", "text_wrapping"}
}

const wdStory = 6

// Content is the text of the active document.
type Content struct {
	Name       string `json:"name"`
	Text       string `json:"text"`
	Paragraphs int    `json:"paragraphs"`
	Characters int    `json:"characters"`
}

// Selection is the current selection of the active window.
type Selection struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Word separates paragraphs with a carriage return and uses vertical tab for
// manual line breaks.
var textReplacer = strings.NewReplacer("\r\a", "\t", "\r", "\n", "\v", "\n", "\a", "")

func normalizeText(s string) string {
	return textReplacer.Replace(s)
}

// Write types text at the insertion point, replacing the selection.
func Write(app com.Object, text string) error {
	s := com.NewScope()
	defer s.Release()
	if _, err := activeDocument(s, app); err != nil {
		return err
	}
	selection, err := s.GetObject(app, "Selection")
	if err != nil {
		return err
	}
	if _, err := selection.Call("TypeText", text); err != nil {
		return errors.Wrap(err, "failed to write text")
	}
	return nil
}

// Read returns the whole text of the active document.
func Read(app com.Object) (*Content, error) {
	s := com.NewScope()
	defer s.Release()
	doc, err := activeDocument(s, app)
	if err != nil {
		return nil, err
	}
	content, err := s.GetObject(doc, "Content")
	if err != nil {
		return nil, err
	}
	text, err := com.String(content, "Text")
	if err != nil {
		return nil, err
	}
	paragraphs, err := s.GetObject(doc, "Paragraphs")
	if err != nil {
		return nil, err
	}
	paragraphCount, err := com.Int(paragraphs, "Count")
	if err != nil {
		return nil, err
	}
	characters, err := s.GetObject(doc, "Characters")
	if err != nil {
		return nil, err
	}
	characterCount, err := com.Int(characters, "Count")
	if err != nil {
		return nil, err
	}
	name, err := com.String(doc, "Name")
	if err != nil {
		return nil, err
	}
	return &Content{
		Name:       name,
		Text:       normalizeText(text),
		Paragraphs: paragraphCount,
		Characters: characterCount,
	}, nil
}

// SelectAll selects the whole main story.
func SelectAll(app com.Object) (*Selection, error) {
	s := com.NewScope()
	defer s.Release()
	if _, err := activeDocument(s, app); err != nil {
		return nil, err
	}
	selection, err := s.GetObject(app, "Selection")
	if err != nil {
		return nil, err
	}
	if _, err := selection.Call("WholeStory"); err != nil {
		return nil, errors.Wrap(err, "failed to select all")
	}
	return describeSelection(selection)
}

// GetSelection returns the selected text and its character offsets.
func GetSelection(app com.Object) (*Selection, error) {
	s := com.NewScope()
	defer s.Release()
	if _, err := activeDocument(s, app); err != nil {
		return nil, err
	}
	selection, err := s.GetObject(app, "Selection")
	if err != nil {
		return nil, err
	}
	return describeSelection(selection)
}

func describeSelection(selection com.Object) (*Selection, error) {
	text, err := com.String(selection, "Text")
	if err != nil {
		return nil, err
	}
	start, err := com.Int(selection, "Start")
	if err != nil {
		return nil, err
	}
	end, err := com.Int(selection, "End")
	if err != nil {
		return nil, err
	}
	return &Selection{Text: normalizeText(text), Start: start, End: end}, nil
}

// InsertBreak inserts a line, page, column or section break at the insertion point.
func InsertBreak(app com.Object, breakType string) error {
	wdBreak, ok := breakTypes[breakType]
	if !ok {
		return office.InvalidArgument("unknown break type %q", breakType)
	}
	s := com.NewScope()
	defer s.Release()
	if _, err := activeDocument(s, app); err != nil {
		return err
	}
	selection, err := s.GetObject(app, "Selection")
	if err != nil {
		return err
	}
	if _, err := selection.Call("InsertBreak", wdBreak); err != nil {
		return errors.Wrapf(err, "failed to insert %s break", breakType)
	}
	return nil
}

// Hyperlink describes a link inserted at the selection.
type Hyperlink struct {
	URL         string
	DisplayText string
	Tooltip     string
}

// AddHyperlink inserts a hyperlink at the selection and places the
// insertion point after it.
func AddHyperlink(app com.Object, link Hyperlink) error {
	s := com.NewScope()
	defer s.Release()
	doc, err := activeDocument(s, app)
	if err != nil {
		return err
	}
	selection, err := s.GetObject(app, "Selection")
	if err != nil {
		return err
	}
	anchor, err := s.GetObject(selection, "Range")
	if err != nil {
		return err
	}
	hyperlinks, err := s.GetObject(doc, "Hyperlinks")
	if err != nil {
		return err
	}
	display := link.DisplayText
	if display == "" {
		display = link.URL
	}
	// Anchor, Address, SubAddress, ScreenTip, TextToDisplay
	added, err := s.CallObject(hyperlinks, "Add", anchor, link.URL, "", link.Tooltip, display)
	if err != nil {
		return errors.Wrapf(err, "failed to add hyperlink to %s", link.URL)
	}
	linkRange, err := s.GetObject(added, "Range")
	if err != nil {
		return err
	}
	end, err := com.Int(linkRange, "End")
	if err != nil {
		return err
	}
	_, err = selection.Call("SetRange", end, end)
	return err
}

// FindReplace describes a find-and-replace over the document content.
type FindReplace struct {
	Find       string
	Replace    string
	ReplaceAll bool
	MatchCase  bool
	WholeWord  bool
}

// FindResult reports whether anything was replaced and how many
// occurrences of the search text the document held.
type FindResult struct {
	Replaced    bool `json:"replaced"`
	Occurrences int  `json:"occurrences"`
}

// WdReplace, WdFindWrap
const (
	wdReplaceOne   = 1
	wdReplaceAll   = 2
	wdFindContinue = 1
)

// Replace runs Find.Execute over the whole content of the active document.
func Replace(app com.Object, fr FindReplace) (*FindResult, error) {
	if fr.Find == "" {
		return nil, office.InvalidArgument("find text is empty")
	}
	s := com.NewScope()
	defer s.Release()
	doc, err := activeDocument(s, app)
	if err != nil {
		return nil, err
	}
	content, err := s.GetObject(doc, "Content")
	if err != nil {
		return nil, err
	}
	text, err := com.String(content, "Text")
	if err != nil {
		return nil, err
	}
	occurrences := countOccurrences(text, fr.Find, fr.MatchCase, fr.WholeWord)

	find, err := s.GetObject(content, "Find")
	if err != nil {
		return nil, err
	}
	if _, err := find.Call("ClearFormatting"); err != nil {
		return nil, err
	}
	replacement, err := s.GetObject(find, "Replacement")
	if err != nil {
		return nil, err
	}
	if _, err := replacement.Call("ClearFormatting"); err != nil {
		return nil, err
	}
	mode := wdReplaceOne
	if fr.ReplaceAll {
		mode = wdReplaceAll
	}
	// FindText, MatchCase, MatchWholeWord, MatchWildcards, MatchSoundsLike,
	// MatchAllWordForms, Forward, Wrap, Format, ReplaceWith, Replace
	found, err := find.Call("Execute", fr.Find, fr.MatchCase, fr.WholeWord, false, false, false, true, wdFindContinue, false, fr.Replace, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to replace %q", fr.Find)
	}
	return &FindResult{Replaced: com.ToBool(found), Occurrences: occurrences}, nil
}

// countOccurrences counts the non-overlapping matches Find.Execute would
// visit. A whole word match has no letter or digit on either side.
func countOccurrences(text, find string, matchCase, wholeWord bool) int {
	if !matchCase {
		text = strings.ToLower(text)
		find = strings.ToLower(find)
	}
	if !wholeWord {
		return strings.Count(text, find)
	}
	count := 0
	for i := 0; i <= len(text)-len(find); {
		j := strings.Index(text[i:], find)
		if j < 0 {
			break
		}
		start, end := i+j, i+j+len(find)
		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if !isWordRune(before) && !isWordRune(after) {
			count++
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		i = start + size
	}
	return count
}

func isWordRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// MoveToEnd places the insertion point at the end of the document.
func MoveToEnd(app com.Object) error {
	s := com.NewScope()
	defer s.Release()
	selection, err := s.GetObject(app, "Selection")
	if err != nil {
		return err
	}
	_, err = selection.Call("EndKey", wdStory)
	return err
}
