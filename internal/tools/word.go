package tools

import (
	"context"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
	"github.com/negokaz/office-server/internal/office/word"
)

// windowSettle gives an activated window time to repaint before capture.
const windowSettle = 300 * time.Millisecond

type WordWriteArguments struct {
	Text string `zog:"text"`
}

var wordWriteArgumentsSchema = z.Struct(z.Shape{
	"text": z.String().Required(),
})

type WordSetFontArguments struct {
	FontName  *string  `zog:"font_name"`
	FontSize  *float64 `zog:"font_size"`
	Bold      *bool    `zog:"bold"`
	Italic    *bool    `zog:"italic"`
	Underline *bool    `zog:"underline"`
	Color     *string  `zog:"color"`
	Scope     string   `zog:"scope"`
	Start     *int     `zog:"start"`
	End       *int     `zog:"end"`
}

var wordSetFontArgumentsSchema = z.Struct(z.Shape{
	"fontName":  z.Ptr(z.String()),
	"fontSize":  z.Ptr(z.Float64().GT(0).LTE(1638)),
	"bold":      z.Ptr(z.Bool()),
	"italic":    z.Ptr(z.Bool()),
	"underline": z.Ptr(z.Bool()),
	"color":     z.Ptr(z.String()),
	"scope":     z.String().Default(word.ScopeSelection),
	"start":     z.Ptr(z.Int().GTE(0)),
	"end":       z.Ptr(z.Int().GTE(0)),
})

type WordSetParagraphArguments struct {
	Alignment       *string  `zog:"alignment"`
	LineSpacing     *float64 `zog:"line_spacing"`
	SpaceBefore     *float64 `zog:"space_before"`
	SpaceAfter      *float64 `zog:"space_after"`
	LeftIndent      *float64 `zog:"left_indent"`
	FirstLineIndent *float64 `zog:"first_line_indent"`
	Scope           string   `zog:"scope"`
	Start           *int     `zog:"start"`
	End             *int     `zog:"end"`
}

var wordSetParagraphArgumentsSchema = z.Struct(z.Shape{
	"alignment":       z.Ptr(z.String()),
	"lineSpacing":     z.Ptr(z.Float64().GT(0)),
	"spaceBefore":     z.Ptr(z.Float64().GTE(0)),
	"spaceAfter":      z.Ptr(z.Float64().GTE(0)),
	"leftIndent":      z.Ptr(z.Float64()),
	"firstLineIndent": z.Ptr(z.Float64()),
	"scope":           z.String().Default(word.ScopeSelection),
	"start":           z.Ptr(z.Int().GTE(0)),
	"end":             z.Ptr(z.Int().GTE(0)),
})

type WordAddHyperlinkArguments struct {
	Link        string `zog:"url"`
	DisplayText string `zog:"display_text"`
	Tooltip     string `zog:"tooltip"`
}

var wordAddHyperlinkArgumentsSchema = z.Struct(z.Shape{
	"link":        z.String().Required(),
	"displayText": z.String(),
	"tooltip":     z.String(),
})

type WordInsertBreakArguments struct {
	Type string `zog:"type"`
}

var wordInsertBreakArgumentsSchema = z.Struct(z.Shape{
	"type": z.String().Default("page"),
})

type WordAddTableArguments struct {
	Rows int `zog:"rows"`
	Cols int `zog:"cols"`
}

var wordAddTableArgumentsSchema = z.Struct(z.Shape{
	"rows": z.Int().GTE(0),
	"cols": z.Int().GTE(0),
})

type WordFindReplaceArguments struct {
	Find       string `zog:"find"`
	Replace    string `zog:"replace"`
	ReplaceAll bool   `zog:"replace_all"`
	MatchCase  bool   `zog:"match_case"`
	WholeWord  bool   `zog:"whole_word"`
}

var wordFindReplaceArgumentsSchema = z.Struct(z.Shape{
	"find":       z.String().Required(),
	"replace":    z.String(),
	"replaceAll": z.Bool().Default(true),
	"matchCase":  z.Bool().Default(false),
	"wholeWord":  z.Bool().Default(false),
})

type WordSetStyleArguments struct {
	Style string `zog:"style"`
	Scope string `zog:"scope"`
	Start *int   `zog:"start"`
	End   *int   `zog:"end"`
}

var wordSetStyleArgumentsSchema = z.Struct(z.Shape{
	"style": z.String().Required(),
	"scope": z.String().Default(word.ScopeSelection),
	"start": z.Ptr(z.Int().GTE(0)),
	"end":   z.Ptr(z.Int().GTE(0)),
})

type ScreenshotArguments struct {
	MaxWidth int `zog:"max_width"`
}

var screenshotArgumentsSchema = z.Struct(z.Shape{
	"maxWidth": maxWidthSchema,
})

func targetParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("scope",
			mcp.Description("Range to change: "+oneOf(word.Scopes())+" (default \"selection\")"),
		),
		mcp.WithNumber("start",
			mcp.Description("Start character position of an explicit range; overrides scope"),
		),
		mcp.WithNumber("end",
			mcp.Description("End character position of an explicit range"),
		),
	}
}

func (tb *Toolbox) wordTools() []Tool {
	tools := lifecycleTools("/word", "Word", documents[*word.DocumentInfo]{
		name:    "document",
		create:  word.Create,
		open:    word.Open,
		save:    word.Save,
		close:   word.Close,
		session: tb.Word,
	})
	return append(tools,
		post("/word/write", "Type text at the insertion point of the active document", tb.wordWrite,
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Text to type; \"\\n\" starts a new paragraph"),
			),
		),
		get("/word/read", "Read the text of the active document", tb.wordRead),
		post("/word/set_font", "Set the font of the selection, the document, the last paragraph or a character range", tb.wordSetFont,
			withParams(fontParams(), targetParams())...,
		),
		post("/word/set_paragraph", "Set paragraph formatting of the target range", tb.wordSetParagraph,
			withParams([]mcp.ToolOption{
				mcp.WithString("alignment",
					mcp.Description("Alignment: "+oneOf(word.Alignments())),
				),
				mcp.WithNumber("line_spacing",
					mcp.Description("Line spacing as a multiple of single spacing (1, 1.5, 2, ...)"),
				),
				mcp.WithNumber("space_before",
					mcp.Description("Space before the paragraph in points"),
				),
				mcp.WithNumber("space_after",
					mcp.Description("Space after the paragraph in points"),
				),
				mcp.WithNumber("left_indent",
					mcp.Description("Left indent in points"),
				),
				mcp.WithNumber("first_line_indent",
					mcp.Description("First line indent in points; negative for a hanging indent"),
				),
			}, targetParams())...,
		),
		post("/word/add_hyperlink", "Insert a hyperlink at the insertion point", tb.wordAddHyperlink,
			mcp.WithString("url",
				mcp.Required(),
				mcp.Description("Link address"),
			),
			mcp.WithString("display_text",
				mcp.Description("Text shown for the link (default: the address)"),
			),
			mcp.WithString("tooltip",
				mcp.Description("Screen tip shown on hover"),
			),
		),
		post("/word/insert_break", "Insert a break at the insertion point", tb.wordInsertBreak,
			mcp.WithString("type",
				mcp.Description("Break type: "+oneOf(word.BreakTypes())+" (default \"page\")"),
			),
		),
		post("/word/add_table", "Insert a bordered table at the insertion point and move to the end of the document", tb.wordAddTable,
			mcp.WithNumber("rows",
				mcp.Description("Number of rows (default: rows of values)"),
			),
			mcp.WithNumber("cols",
				mcp.Description("Number of columns (default: widest row of values)"),
			),
			mcp.WithArray("values",
				mcp.Description("Cell texts, row by row"),
				mcp.Items(map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				}),
			),
		),
		post("/word/find_replace", "Find and replace text in the active document", tb.wordFindReplace,
			mcp.WithString("find",
				mcp.Required(),
				mcp.Description("Text to find"),
			),
			mcp.WithString("replace",
				mcp.Description("Replacement text (default: empty, deleting matches)"),
			),
			mcp.WithBoolean("replace_all",
				mcp.Description("Replace every occurrence instead of the first (default true)"),
			),
			mcp.WithBoolean("match_case",
				mcp.Description("Match case"),
			),
			mcp.WithBoolean("whole_word",
				mcp.Description("Match whole words only"),
			),
		),
		post("/word/set_style", "Apply a named style (e.g., \"Heading 1\") to the target range", tb.wordSetStyle,
			withParams([]mcp.ToolOption{
				mcp.WithString("style",
					mcp.Required(),
					mcp.Description("Style name as shown in Word"),
				),
			}, targetParams())...,
		),
		post("/word/select_all", "Select the whole document", tb.wordSelectAll),
		get("/word/get_selection", "Get the selected text and its character positions", tb.wordGetSelection),
		post("/word/move_to_end", "Move the insertion point to the end of the document", tb.wordMoveToEnd),
		get("/word/screenshot", "Capture the Word window as PNG", tb.wordScreenshot,
			maxWidthParam(),
		),
	)
}

func (tb *Toolbox) wordWrite(ctx context.Context, args map[string]any) (any, error) {
	a := WordWriteArguments{}
	if err := parse(wordWriteArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Word, func(app com.Object) (*Message, error) {
		return done("Text written", word.Write(app, a.Text))
	})
}

func (tb *Toolbox) wordRead(ctx context.Context, args map[string]any) (any, error) {
	return do(ctx, tb.Word, word.Read)
}

func (tb *Toolbox) wordSetFont(ctx context.Context, args map[string]any) (any, error) {
	a := WordSetFontArguments{}
	if err := parse(wordSetFontArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	font := office.Font{Name: a.FontName, Size: a.FontSize, Bold: a.Bold, Italic: a.Italic, Underline: a.Underline, Color: a.Color}
	target := word.Target{Scope: a.Scope, Start: a.Start, End: a.End}
	return do(ctx, tb.Word, func(app com.Object) (*Message, error) {
		return done("Font applied", word.SetFont(app, target, font))
	})
}

func (tb *Toolbox) wordSetParagraph(ctx context.Context, args map[string]any) (any, error) {
	a := WordSetParagraphArguments{}
	if err := parse(wordSetParagraphArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	p := word.Paragraph{
		Alignment:       a.Alignment,
		LineSpacing:     a.LineSpacing,
		SpaceBefore:     a.SpaceBefore,
		SpaceAfter:      a.SpaceAfter,
		LeftIndent:      a.LeftIndent,
		FirstLineIndent: a.FirstLineIndent,
	}
	target := word.Target{Scope: a.Scope, Start: a.Start, End: a.End}
	return do(ctx, tb.Word, func(app com.Object) (*Message, error) {
		return done("Paragraph format applied", word.SetParagraph(app, target, p))
	})
}

func (tb *Toolbox) wordAddHyperlink(ctx context.Context, args map[string]any) (any, error) {
	a := WordAddHyperlinkArguments{}
	if err := parse(wordAddHyperlinkArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	link := word.Hyperlink{URL: a.Link, DisplayText: a.DisplayText, Tooltip: a.Tooltip}
	return do(ctx, tb.Word, func(app com.Object) (*Message, error) {
		return done("Hyperlink added", word.AddHyperlink(app, link))
	})
}

func (tb *Toolbox) wordInsertBreak(ctx context.Context, args map[string]any) (any, error) {
	a := WordInsertBreakArguments{}
	if err := parse(wordInsertBreakArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.Word, func(app com.Object) (*Message, error) {
		return done(a.Type+" break inserted", word.InsertBreak(app, a.Type))
	})
}

func (tb *Toolbox) wordAddTable(ctx context.Context, args map[string]any) (any, error) {
	a := WordAddTableArguments{}
	if err := parse(wordAddTableArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	values, err := table(args, "values")
	if err != nil {
		return nil, err
	}
	t := word.Table{Rows: a.Rows, Cols: a.Cols, Values: textTable(values)}
	return do(ctx, tb.Word, func(app com.Object) (*word.TableInfo, error) {
		return word.AddTable(app, t)
	})
}

func (tb *Toolbox) wordFindReplace(ctx context.Context, args map[string]any) (any, error) {
	a := WordFindReplaceArguments{}
	if err := parse(wordFindReplaceArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	fr := word.FindReplace{Find: a.Find, Replace: a.Replace, ReplaceAll: a.ReplaceAll, MatchCase: a.MatchCase, WholeWord: a.WholeWord}
	return do(ctx, tb.Word, func(app com.Object) (*word.FindResult, error) {
		return word.Replace(app, fr)
	})
}

func (tb *Toolbox) wordSetStyle(ctx context.Context, args map[string]any) (any, error) {
	a := WordSetStyleArguments{}
	if err := parse(wordSetStyleArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	target := word.Target{Scope: a.Scope, Start: a.Start, End: a.End}
	return do(ctx, tb.Word, func(app com.Object) (*Message, error) {
		return done("Style "+a.Style+" applied", word.SetStyle(app, target, a.Style))
	})
}

func (tb *Toolbox) wordSelectAll(ctx context.Context, args map[string]any) (any, error) {
	return do(ctx, tb.Word, word.SelectAll)
}

func (tb *Toolbox) wordGetSelection(ctx context.Context, args map[string]any) (any, error) {
	return do(ctx, tb.Word, word.GetSelection)
}

func (tb *Toolbox) wordMoveToEnd(ctx context.Context, args map[string]any) (any, error) {
	return do(ctx, tb.Word, func(app com.Object) (*Message, error) {
		return done("Moved to end of document", word.MoveToEnd(app))
	})
}

func (tb *Toolbox) wordScreenshot(ctx context.Context, args map[string]any) (any, error) {
	a := ScreenshotArguments{}
	if err := parse(screenshotArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	rect, err := do(ctx, tb.Word, word.WindowRect)
	if err != nil {
		return nil, err
	}
	select {
	case <-time.After(windowSettle):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	img, err := tb.Capturer.Window(rect, a.MaxWidth)
	if err != nil {
		return nil, err
	}
	return &Screenshot{Image: img, Source: "Word window"}, nil
}
