package tools

import (
	"context"
	"fmt"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
	"github.com/negokaz/office-server/internal/office/powerpoint"
)

type PowerPointAddSlideArguments struct {
	Index int `zog:"index"`
}

var powerPointAddSlideArgumentsSchema = z.Struct(z.Shape{
	"index": z.Int().GTE(0),
})

type PowerPointSlideArguments struct {
	Slide int `zog:"slide"`
}

var powerPointSlideArgumentsSchema = z.Struct(z.Shape{
	"slide": z.Int().GTE(1).Required(),
})

type PowerPointWriteTextArguments struct {
	Slide int    `zog:"slide"`
	Shape int    `zog:"shape"`
	Text  string `zog:"text"`
}

var powerPointWriteTextArgumentsSchema = z.Struct(z.Shape{
	"slide": z.Int().GTE(1).Required(),
	"shape": z.Int().GTE(1).Required(),
	"text":  z.String(),
})

type PowerPointAddTextboxArguments struct {
	Slide  int     `zog:"slide"`
	Text   string  `zog:"text"`
	Left   float64 `zog:"left"`
	Top    float64 `zog:"top"`
	Width  float64 `zog:"width"`
	Height float64 `zog:"height"`
}

var powerPointAddTextboxArgumentsSchema = z.Struct(z.Shape{
	"slide":  z.Int().GTE(1).Required(),
	"text":   z.String(),
	"left":   z.Float64().Default(powerpoint.DefaultTextboxLeft),
	"top":    z.Float64().Default(powerpoint.DefaultTextboxTop),
	"width":  z.Float64().GT(0).Default(powerpoint.DefaultTextboxWidth),
	"height": z.Float64().GT(0).Default(powerpoint.DefaultTextboxHeight),
})

type PowerPointSetFontArguments struct {
	Slide     int      `zog:"slide"`
	Shape     int      `zog:"shape"`
	FontName  *string  `zog:"font_name"`
	FontSize  *float64 `zog:"font_size"`
	Bold      *bool    `zog:"bold"`
	Italic    *bool    `zog:"italic"`
	Underline *bool    `zog:"underline"`
	Color     *string  `zog:"color"`
}

var powerPointSetFontArgumentsSchema = z.Struct(z.Shape{
	"slide":     z.Int().GTE(1).Required(),
	"shape":     z.Int().GTE(1).Required(),
	"fontName":  z.Ptr(z.String()),
	"fontSize":  z.Ptr(z.Float64().GT(0)),
	"bold":      z.Ptr(z.Bool()),
	"italic":    z.Ptr(z.Bool()),
	"underline": z.Ptr(z.Bool()),
	"color":     z.Ptr(z.String()),
})

type PowerPointSetBackgroundArguments struct {
	Slide int    `zog:"slide"`
	Color string `zog:"color"`
}

var powerPointSetBackgroundArgumentsSchema = z.Struct(z.Shape{
	"slide": z.Int().GTE(1).Required(),
	"color": z.String().Required(),
})

type PowerPointAddAnimationArguments struct {
	Slide   int    `zog:"slide"`
	Shape   int    `zog:"shape"`
	Effect  string `zog:"effect"`
	Trigger string `zog:"trigger"`
}

var powerPointAddAnimationArgumentsSchema = z.Struct(z.Shape{
	"slide":   z.Int().GTE(1).Required(),
	"shape":   z.Int().GTE(1).Required(),
	"effect":  z.String().Required(),
	"trigger": z.String().Default("on_click"),
})

type PowerPointScreenshotArguments struct {
	Slide    int `zog:"slide"`
	MaxWidth int `zog:"max_width"`
}

var powerPointScreenshotArgumentsSchema = z.Struct(z.Shape{
	"slide":    z.Int().GTE(0),
	"maxWidth": maxWidthSchema,
})

// SlideCount is the result of get_slide_count.
type SlideCount struct {
	Count int `json:"count"`
}

func slideParam() mcp.ToolOption {
	return mcp.WithNumber("slide",
		mcp.Required(),
		mcp.Description("Slide number (1-based)"),
	)
}

func shapeParam() mcp.ToolOption {
	return mcp.WithNumber("shape",
		mcp.Required(),
		mcp.Description("Shape number on the slide (1-based)"),
	)
}

func (tb *Toolbox) powerPointTools() []Tool {
	tools := lifecycleTools("/powerpoint", "PowerPoint", documents[*powerpoint.PresentationInfo]{
		name:    "presentation",
		create:  powerpoint.Create,
		open:    powerpoint.Open,
		save:    powerpoint.Save,
		close:   powerpoint.Close,
		session: tb.PowerPoint,
	})
	return append(tools,
		post("/powerpoint/add_slide", "Add a slide with a layout", tb.powerPointAddSlide,
			withAny("layout", "Layout number (1-36) or name: "+oneOf(powerpoint.Layouts())+" (default \"blank\")", false),
			mcp.WithNumber("index",
				mcp.Description("Position of the new slide (1-based, default: after the last slide)"),
			),
		),
		post("/powerpoint/delete_slide", "Delete a slide", tb.powerPointDeleteSlide,
			slideParam(),
		),
		get("/powerpoint/get_slide_count", "Count the slides of the active presentation", tb.powerPointGetSlideCount),
		post("/powerpoint/write_text", "Replace the text of a shape; \"\\n\" starts a new paragraph", tb.powerPointWriteText,
			slideParam(),
			shapeParam(),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Text to write"),
			),
		),
		post("/powerpoint/add_textbox", "Add a text box to a slide", tb.powerPointAddTextbox,
			slideParam(),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Text of the box"),
			),
			mcp.WithNumber("left",
				mcp.Description(fmt.Sprintf("Left position in points (default %g)", powerpoint.DefaultTextboxLeft)),
			),
			mcp.WithNumber("top",
				mcp.Description(fmt.Sprintf("Top position in points (default %g)", powerpoint.DefaultTextboxTop)),
			),
			mcp.WithNumber("width",
				mcp.Description(fmt.Sprintf("Width in points (default %g)", powerpoint.DefaultTextboxWidth)),
			),
			mcp.WithNumber("height",
				mcp.Description(fmt.Sprintf("Height in points (default %g)", powerpoint.DefaultTextboxHeight)),
			),
		),
		post("/powerpoint/set_font", "Set the font of the text in a shape", tb.powerPointSetFont,
			withParams([]mcp.ToolOption{slideParam(), shapeParam()}, fontParams())...,
		),
		post("/powerpoint/read_slide", "List the shapes of a slide with their text and geometry", tb.powerPointReadSlide,
			slideParam(),
		),
		post("/powerpoint/set_background", "Give a slide a solid background color", tb.powerPointSetBackground,
			slideParam(),
			mcp.WithString("color",
				mcp.Required(),
				mcp.Description("Background color as #RRGGBB"),
			),
		),
		post("/powerpoint/add_animation", "Animate a shape", tb.powerPointAddAnimation,
			slideParam(),
			shapeParam(),
			mcp.WithString("effect",
				mcp.Required(),
				mcp.Description("Effect: "+oneOf(powerpoint.Effects())),
			),
			mcp.WithString("trigger",
				mcp.Description("Trigger: "+oneOf(powerpoint.Triggers())+" (default \"on_click\")"),
			),
		),
		get("/powerpoint/screenshot", "Render a slide as PNG", tb.powerPointScreenshot,
			mcp.WithNumber("slide",
				mcp.Description("Slide number (1-based, default 1)"),
			),
			maxWidthParam(),
		),
	)
}

// layoutArgument accepts a layout as a number or a name.
func layoutArgument(args map[string]any) (int, error) {
	var layout int
	var err error
	switch v := args["layout"].(type) {
	case nil:
		layout, err = powerpoint.ParseLayout("")
	case string:
		layout, err = powerpoint.ParseLayout(v)
	case float64, int, int64:
		layout, err = powerpoint.ParseLayout(com.ToString(v))
	default:
		return 0, &ArgumentError{Issues: map[string][]string{"layout": {"must be a number or a name"}}}
	}
	if err != nil {
		return 0, &ArgumentError{Issues: map[string][]string{"layout": {err.Error()}}}
	}
	return layout, nil
}

func (tb *Toolbox) powerPointAddSlide(ctx context.Context, args map[string]any) (any, error) {
	a := PowerPointAddSlideArguments{}
	if err := parse(powerPointAddSlideArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	layout, err := layoutArgument(args)
	if err != nil {
		return nil, err
	}
	return do(ctx, tb.PowerPoint, func(app com.Object) (*powerpoint.SlideInfo, error) {
		return powerpoint.AddSlide(app, layout, a.Index)
	})
}

func (tb *Toolbox) powerPointDeleteSlide(ctx context.Context, args map[string]any) (any, error) {
	a := PowerPointSlideArguments{}
	if err := parse(powerPointSlideArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.PowerPoint, func(app com.Object) (*powerpoint.SlideInfo, error) {
		return powerpoint.DeleteSlide(app, a.Slide)
	})
}

func (tb *Toolbox) powerPointGetSlideCount(ctx context.Context, args map[string]any) (any, error) {
	return do(ctx, tb.PowerPoint, func(app com.Object) (*SlideCount, error) {
		count, err := powerpoint.SlideCount(app)
		if err != nil {
			return nil, err
		}
		return &SlideCount{Count: count}, nil
	})
}

func (tb *Toolbox) powerPointWriteText(ctx context.Context, args map[string]any) (any, error) {
	a := PowerPointWriteTextArguments{}
	if err := parse(powerPointWriteTextArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	if _, ok := args["text"]; !ok {
		return nil, &ArgumentError{Issues: map[string][]string{"text": {"is required"}}}
	}
	return do(ctx, tb.PowerPoint, func(app com.Object) (*powerpoint.ShapeInfo, error) {
		return powerpoint.WriteText(app, a.Slide, a.Shape, a.Text)
	})
}

func (tb *Toolbox) powerPointAddTextbox(ctx context.Context, args map[string]any) (any, error) {
	a := PowerPointAddTextboxArguments{}
	if err := parse(powerPointAddTextboxArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	box := powerpoint.Textbox{Text: a.Text, Left: a.Left, Top: a.Top, Width: a.Width, Height: a.Height}
	return do(ctx, tb.PowerPoint, func(app com.Object) (*powerpoint.ShapeInfo, error) {
		return powerpoint.AddTextbox(app, a.Slide, box)
	})
}

func (tb *Toolbox) powerPointSetFont(ctx context.Context, args map[string]any) (any, error) {
	a := PowerPointSetFontArguments{}
	if err := parse(powerPointSetFontArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	font := office.Font{Name: a.FontName, Size: a.FontSize, Bold: a.Bold, Italic: a.Italic, Underline: a.Underline, Color: a.Color}
	return do(ctx, tb.PowerPoint, func(app com.Object) (*powerpoint.ShapeInfo, error) {
		return powerpoint.SetFont(app, a.Slide, a.Shape, font)
	})
}

func (tb *Toolbox) powerPointReadSlide(ctx context.Context, args map[string]any) (any, error) {
	a := PowerPointSlideArguments{}
	if err := parse(powerPointSlideArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.PowerPoint, func(app com.Object) (*powerpoint.SlideContent, error) {
		return powerpoint.ReadSlide(app, a.Slide)
	})
}

func (tb *Toolbox) powerPointSetBackground(ctx context.Context, args map[string]any) (any, error) {
	a := PowerPointSetBackgroundArguments{}
	if err := parse(powerPointSetBackgroundArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	return do(ctx, tb.PowerPoint, func(app com.Object) (*powerpoint.Background, error) {
		return powerpoint.SetBackground(app, a.Slide, a.Color)
	})
}

func (tb *Toolbox) powerPointAddAnimation(ctx context.Context, args map[string]any) (any, error) {
	a := PowerPointAddAnimationArguments{}
	if err := parse(powerPointAddAnimationArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	animation := powerpoint.Animation{Effect: a.Effect, Trigger: a.Trigger}
	return do(ctx, tb.PowerPoint, func(app com.Object) (*powerpoint.AnimationInfo, error) {
		return powerpoint.AddAnimation(app, a.Slide, a.Shape, animation)
	})
}

func (tb *Toolbox) powerPointScreenshot(ctx context.Context, args map[string]any) (any, error) {
	a := PowerPointScreenshotArguments{}
	if err := parse(powerPointScreenshotArgumentsSchema, args, &a); err != nil {
		return nil, err
	}
	img, slide, err := exportImage(ctx, tb.Capturer, tb.PowerPoint, "slide", a.MaxWidth, func(app com.Object, path string) (int, error) {
		return powerpoint.ExportSlide(app, a.Slide, path)
	})
	if err != nil {
		return nil, err
	}
	return &Screenshot{Image: img, Source: fmt.Sprintf("slide %d", slide)}, nil
}
