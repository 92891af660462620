package powerpoint

import (
	"math"

	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
)

// ExportWidth is the pixel width slides are rendered at before scaling.
const ExportWidth = 1280

// ExportSlide renders a slide (the first one when slideIndex is 0) to a PNG
// file at path and returns the slide index.
func ExportSlide(app com.Object, slideIndex int, path string) (int, error) {
	if slideIndex == 0 {
		slideIndex = 1
	}
	s := com.NewScope()
	defer s.Release()
	slide, err := slideAt(s, app, slideIndex)
	if err != nil {
		return 0, err
	}
	pageSetup, err := s.Path(app, "ActivePresentation", "PageSetup")
	if err != nil {
		return 0, err
	}
	width, err := com.Float(pageSetup, "SlideWidth")
	if err != nil {
		return 0, err
	}
	height, err := com.Float(pageSetup, "SlideHeight")
	if err != nil {
		return 0, err
	}
	exportHeight := ExportWidth * 9 / 16
	if width > 0 {
		exportHeight = int(math.Round(ExportWidth * height / width))
	}
	if _, err := slide.Call("Export", path, "PNG", ExportWidth, exportHeight); err != nil {
		return 0, errors.Wrapf(err, "failed to export slide %d", slideIndex)
	}
	return slideIndex, nil
}
