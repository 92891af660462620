package powerpoint

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// Background reports a changed slide background.
type Background struct {
	Slide int    `json:"slide"`
	Color string `json:"color"`
}

// SetBackground gives a slide a solid background, detached from the master.
func SetBackground(app com.Object, slideIndex int, color string) (*Background, error) {
	bgr, err := com.Color(color)
	if err != nil {
		return nil, office.InvalidArgument("%v", err)
	}
	s := com.NewScope()
	defer s.Release()
	slide, err := slideAt(s, app, slideIndex)
	if err != nil {
		return nil, err
	}
	if err := slide.Put("FollowMasterBackground", msoFalse); err != nil {
		return nil, err
	}
	fill, err := s.Path(slide, "Background", "Fill")
	if err != nil {
		return nil, err
	}
	if _, err := fill.Call("Solid"); err != nil {
		return nil, errors.Wrapf(err, "failed to set background of slide %d", slideIndex)
	}
	foreColor, err := s.GetObject(fill, "ForeColor")
	if err != nil {
		return nil, err
	}
	if err := foreColor.Put("RGB", bgr); err != nil {
		return nil, err
	}
	return &Background{Slide: slideIndex, Color: com.HexColor(bgr)}, nil
}

// MsoAnimEffect
var effects = map[string]int{
	"appear":       1,
	"fly":          2,
	"blinds":       3,
	"box":          4,
	"checkerboard": 5,
	"circle":       6,
	"diamond":      8,
	"dissolve":     9,
	"fade":         10,
	"random_bars":  14,
	"split":        16,
	"wheel":        21,
	"wipe":         22,
	"zoom":         23,
	"grow_shrink":  59,
	"spin":         61,
}

// Effects lists the accepted animation effects.
func Effects() []string {
	return []string{
		"appear", "fly", "blinds", "box", "checkerboard", "circle", "diamond", "dissolve",
		"fade", "random_bars", "split", "wheel", "wipe", "zoom", "grow_shrink", "spin",
	}
}

// MsoAnimTriggerType
var triggers = map[string]int{
	"on_click":       1,
	"with_previous":  2,
	"after_previous": 3,
}

// Triggers lists the accepted animation triggers.
func Triggers() []string {
	return []string{"on_click", "with_previous", "after_previous"}
}

const msoAnimateLevelNone = 0

// Animation describes an entrance effect on a shape.
type Animation struct {
	Effect  string
	Trigger string
}

// AnimationInfo reports an added animation.
type AnimationInfo struct {
	Slide   int    `json:"slide"`
	Shape   int    `json:"shape"`
	Effect  string `json:"effect"`
	Trigger string `json:"trigger"`
	Effects int    `json:"effects"`
}

// AddAnimation appends an effect for a shape to the main sequence of its
// slide. Effects counts the effects of the sequence afterwards.
func AddAnimation(app com.Object, slideIndex, shapeIndex int, a Animation) (*AnimationInfo, error) {
	effectName := strings.ToLower(a.Effect)
	effect, ok := effects[effectName]
	if !ok {
		return nil, office.InvalidArgument("unknown animation effect %q", a.Effect)
	}
	triggerName := strings.ToLower(a.Trigger)
	if triggerName == "" {
		triggerName = "on_click"
	}
	trigger, ok := triggers[triggerName]
	if !ok {
		return nil, office.InvalidArgument("unknown animation trigger %q", a.Trigger)
	}
	s := com.NewScope()
	defer s.Release()
	shape, err := shapeAt(s, app, slideIndex, shapeIndex)
	if err != nil {
		return nil, err
	}
	slide, err := slideAt(s, app, slideIndex)
	if err != nil {
		return nil, err
	}
	sequence, err := s.Path(slide, "TimeLine", "MainSequence")
	if err != nil {
		return nil, err
	}
	if _, err := s.CallObject(sequence, "AddEffect", shape, effect, msoAnimateLevelNone, trigger); err != nil {
		return nil, errors.Wrapf(err, "failed to add %s animation", effectName)
	}
	count, err := com.Int(sequence, "Count")
	if err != nil {
		return nil, err
	}
	return &AnimationInfo{Slide: slideIndex, Shape: shapeIndex, Effect: effectName, Trigger: triggerName, Effects: count}, nil
}
