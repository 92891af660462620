package powerpoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negokaz/office-server/internal/com/comtest"
	"github.com/negokaz/office-server/internal/office"
	"github.com/negokaz/office-server/internal/office/powerpoint"
)

const slides = "app.ActivePresentation.Slides"

func newApp(slideCount int) *comtest.Object {
	app := comtest.New("app")
	app.Path("Presentations").Set("Count", int32(1))
	app.Path("ActivePresentation", "Slides").Set("Count", int32(slideCount))
	return app
}

func withShapes(app *comtest.Object, slide int, names ...string) *comtest.Object {
	shapes := app.Path("ActivePresentation", "Slides", comtest.Key("Item", slide), "Shapes").
		Set("Count", int32(len(names)))
	for i, name := range names {
		shapes.Child(comtest.Key("Item", i+1)).Set("Name", name).Set("HasTextFrame", int32(-1))
	}
	return shapes
}

func ptr[T any](v T) *T {
	return &v
}

func TestCreate(t *testing.T) {
	app := comtest.New("app")
	app.Path("Presentations").Set("Count", int32(1))
	pres := app.Path("Presentations", "Add(-1)").Set("Name", "Presentation1").Set("FullName", "Presentation1")
	pres.Path("Slides").Set("Count", int32(0))

	info, err := powerpoint.Create(app)
	require.NoError(t, err)
	assert.Equal(t, &powerpoint.PresentationInfo{Name: "Presentation1", Path: "Presentation1", Presentations: 1}, info)
}

func TestRequiresPresentation(t *testing.T) {
	app := comtest.New("app")
	app.Path("Presentations").Set("Count", int32(0))

	_, err := powerpoint.SlideCount(app)
	assert.ErrorIs(t, err, office.ErrNoDocument)
	_, err = powerpoint.AddSlide(app, 1, 0)
	assert.ErrorIs(t, err, office.ErrNoDocument)
}

func TestSave(t *testing.T) {
	app := newApp(1)
	app.Path("ActivePresentation").Set("Name", "deck.pptx")

	_, err := powerpoint.Save(app, `C:\work\deck.pptx`)
	require.NoError(t, err)
	assert.Contains(t, app.Log(), `call app.ActivePresentation.SaveAs(C:\work\deck.pptx)`)
}

func TestCloseWithoutSaving(t *testing.T) {
	app := newApp(2)
	app.Path("ActivePresentation").Set("Name", "Presentation1")

	info, err := powerpoint.Close(app, false)
	require.NoError(t, err)
	assert.Equal(t, "Presentation1", info.Name)
	log := app.Log()
	assert.Contains(t, log, "put app.ActivePresentation.Saved = -1")
	assert.Contains(t, log, "call app.ActivePresentation.Close()")
	assert.NotContains(t, log, "call app.ActivePresentation.Save()")
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		layout string
		want   int
	}{
		{"1", 1},
		{"2", 2},
		{"", 12},
		{"blank", 12},
		{"Title Only", 11},
		{" title_and_content ", 16},
	}
	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			got, err := powerpoint.ParseLayout(tt.layout)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, layout := range []string{"0", "37", "fancy"} {
		_, err := powerpoint.ParseLayout(layout)
		assert.ErrorIs(t, err, office.ErrInvalidArgument, layout)
	}
}

func TestAddSlide(t *testing.T) {
	app := newApp(0)

	info, err := powerpoint.AddSlide(app, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, &powerpoint.SlideInfo{Slide: 1, Count: 1}, info)
	assert.Contains(t, app.Log(), "call "+slides+".Add(1,1)")

	_, err = powerpoint.AddSlide(app, 2, 3)
	assert.ErrorIs(t, err, office.ErrOutOfRange)
}

func TestDeleteSlide(t *testing.T) {
	app := newApp(2)

	info, err := powerpoint.DeleteSlide(app, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Slide)
	assert.Contains(t, app.Log(), "call "+slides+".Item(2).Delete()")

	_, err = powerpoint.DeleteSlide(app, 3)
	assert.ErrorIs(t, err, office.ErrOutOfRange)
	_, err = powerpoint.DeleteSlide(app, 0)
	assert.ErrorIs(t, err, office.ErrOutOfRange)
}

func TestSlideCount(t *testing.T) {
	count, err := powerpoint.SlideCount(newApp(3))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestReadSlide(t *testing.T) {
	app := newApp(1)
	app.Path("ActivePresentation", "Slides", "Item(1)").Set("Layout", int32(1))
	shapes := withShapes(app, 1, "Title 1", "Picture 2")
	title := shapes.Child("Item(1)").
		Set("Type", int32(14)).
		Set("Left", 48.0).Set("Top", 30.0).Set("Width", 864.0).Set("Height", 120.0)
	title.Path("TextFrame", "TextRange").Set("Text", "Presentation\rTitle")
	shapes.Child("Item(2)").
		Set("Type", int32(13)).
		Set("HasTextFrame", int32(0)).
		Set("Left", 0.0).Set("Top", 200.0).Set("Width", 320.0).Set("Height", 240.0)

	content, err := powerpoint.ReadSlide(app, 1)
	require.NoError(t, err)
	assert.Equal(t, &powerpoint.SlideContent{
		Slide:  1,
		Layout: 1,
		Shapes: []powerpoint.Shape{
			{Index: 1, Name: "Title 1", Type: 14, Text: ptr("Presentation\nTitle"), Left: 48, Top: 30, Width: 864, Height: 120},
			{Index: 2, Name: "Picture 2", Type: 13, Left: 0, Top: 200, Width: 320, Height: 240},
		},
	}, content)
}

func TestWriteText(t *testing.T) {
	app := newApp(1)
	shapes := withShapes(app, 1, "Title 1", "Picture 2")
	shapes.Child("Item(2)").Set("HasTextFrame", int32(0))

	info, err := powerpoint.WriteText(app, 1, 1, "Presentation\nTitle")
	require.NoError(t, err)
	assert.Equal(t, &powerpoint.ShapeInfo{Slide: 1, Shape: 1, Name: "Title 1"}, info)
	assert.Contains(t, app.Log(), "put "+slides+".Item(1).Shapes.Item(1).TextFrame.TextRange.Text = Presentation\rTitle")

	_, err = powerpoint.WriteText(app, 1, 2, "x")
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
	_, err = powerpoint.WriteText(app, 1, 3, "x")
	assert.ErrorIs(t, err, office.ErrOutOfRange)
	_, err = powerpoint.WriteText(app, 2, 1, "x")
	assert.ErrorIs(t, err, office.ErrOutOfRange)
}

func TestAddTextbox(t *testing.T) {
	app := newApp(2)
	shapes := withShapes(app, 2, "Title 1", "Content 2", "TextBox 3")
	shapes.Child("AddTextbox(1,100,300,400,50)").Set("Name", "TextBox 3")

	info, err := powerpoint.AddTextbox(app, 2, powerpoint.Textbox{
		Text: "Custom textbox content", Left: 100, Top: 300, Width: 400, Height: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, &powerpoint.ShapeInfo{Slide: 2, Shape: 3, Name: "TextBox 3"}, info)
	log := app.Log()
	assert.Contains(t, log, "call "+slides+".Item(2).Shapes.AddTextbox(1,100,300,400,50)")
	assert.Contains(t, log, "put "+slides+".Item(2).Shapes.AddTextbox(1,100,300,400,50).TextFrame.TextRange.Text = Custom textbox content")

	_, err = powerpoint.AddTextbox(app, 2, powerpoint.Textbox{Text: "x", Width: 0, Height: 50})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
}

func TestSetFont(t *testing.T) {
	app := newApp(1)
	withShapes(app, 1, "Title 1")

	_, err := powerpoint.SetFont(app, 1, 1, office.Font{
		Name:  ptr("Arial"),
		Size:  ptr(44.0),
		Bold:  ptr(true),
		Color: ptr("#0066CC"),
	})
	require.NoError(t, err)
	font := slides + ".Item(1).Shapes.Item(1).TextFrame.TextRange.Font"
	log := app.Log()
	assert.Contains(t, log, "put "+font+".Name = Arial")
	assert.Contains(t, log, "put "+font+".Size = 44")
	assert.Contains(t, log, "put "+font+".Bold = -1")
	assert.Contains(t, log, "put "+font+".Color.RGB = 13395456")
	assert.NotContains(t, log, "put "+font+".Italic = 0")
}

func TestSetFontValidation(t *testing.T) {
	app := newApp(1)
	withShapes(app, 1, "Title 1")

	_, err := powerpoint.SetFont(app, 1, 1, office.Font{})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
	_, err = powerpoint.SetFont(app, 1, 1, office.Font{Color: ptr("blue")})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
	assert.Empty(t, app.Log())
}

func TestSetBackground(t *testing.T) {
	app := newApp(2)

	bg, err := powerpoint.SetBackground(app, 2, "#e0e0e0")
	require.NoError(t, err)
	assert.Equal(t, &powerpoint.Background{Slide: 2, Color: "#E0E0E0"}, bg)
	log := app.Log()
	assert.Contains(t, log, "put "+slides+".Item(2).FollowMasterBackground = 0")
	assert.Contains(t, log, "call "+slides+".Item(2).Background.Fill.Solid()")
	assert.Contains(t, log, "put "+slides+".Item(2).Background.Fill.ForeColor.RGB = 14737632")

	_, err = powerpoint.SetBackground(app, 3, "#E0E0E0")
	assert.ErrorIs(t, err, office.ErrOutOfRange)
}

func TestAddAnimation(t *testing.T) {
	app := newApp(1)
	withShapes(app, 1, "Title 1")
	app.Path("ActivePresentation", "Slides", "Item(1)", "TimeLine", "MainSequence").Set("Count", int32(1))

	info, err := powerpoint.AddAnimation(app, 1, 1, powerpoint.Animation{Effect: "Fade"})
	require.NoError(t, err)
	assert.Equal(t, &powerpoint.AnimationInfo{Slide: 1, Shape: 1, Effect: "fade", Trigger: "on_click", Effects: 1}, info)
	assert.Contains(t, app.Log(),
		"call "+slides+".Item(1).TimeLine.MainSequence.AddEffect("+slides+".Item(1).Shapes.Item(1),10,0,1)")

	_, err = powerpoint.AddAnimation(app, 1, 1, powerpoint.Animation{Effect: "fly", Trigger: "after_previous"})
	require.NoError(t, err)
	assert.Contains(t, app.Log(),
		"call "+slides+".Item(1).TimeLine.MainSequence.AddEffect("+slides+".Item(1).Shapes.Item(1),2,0,3)")
}

func TestAddAnimationValidation(t *testing.T) {
	app := newApp(1)
	withShapes(app, 1, "Title 1")

	_, err := powerpoint.AddAnimation(app, 1, 1, powerpoint.Animation{Effect: "explode"})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
	_, err = powerpoint.AddAnimation(app, 1, 1, powerpoint.Animation{Effect: "fade", Trigger: "on_hover"})
	assert.ErrorIs(t, err, office.ErrInvalidArgument)
	_, err = powerpoint.AddAnimation(app, 1, 2, powerpoint.Animation{Effect: "fade"})
	assert.ErrorIs(t, err, office.ErrOutOfRange)
}

func TestExportSlide(t *testing.T) {
	app := newApp(1)
	app.Path("ActivePresentation", "PageSetup").Set("SlideWidth", 960.0).Set("SlideHeight", 540.0)

	slide, err := powerpoint.ExportSlide(app, 0, "slide.png")
	require.NoError(t, err)
	assert.Equal(t, 1, slide)
	assert.Contains(t, app.Log(), "call "+slides+".Item(1).Export(slide.png,PNG,1280,720)")

	_, err = powerpoint.ExportSlide(newApp(0), 0, "slide.png")
	assert.ErrorIs(t, err, office.ErrOutOfRange)
}
