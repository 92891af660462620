package word

import (
	"image"

	"github.com/negokaz/office-server/internal/com"
)

// WindowRect activates the active document window and returns its screen
// rectangle in pixels. Word reports window geometry in points.
func WindowRect(app com.Object) (image.Rectangle, error) {
	s := com.NewScope()
	defer s.Release()
	if _, err := activeDocument(s, app); err != nil {
		return image.Rectangle{}, err
	}
	window, err := s.GetObject(app, "ActiveWindow")
	if err != nil {
		return image.Rectangle{}, err
	}
	if _, err := window.Call("Activate"); err != nil {
		return image.Rectangle{}, err
	}
	var points [4]float64
	for i, name := range []string{"Left", "Top", "Width", "Height"} {
		v, err := com.Float(window, name)
		if err != nil {
			return image.Rectangle{}, err
		}
		points[i] = v
	}
	var pixels [4]int
	for i, v := range points {
		// Left and Width are horizontal, Top and Height vertical.
		vertical := i%2 == 1
		px, err := app.Call("PointsToPixels", v, vertical)
		if err != nil {
			return image.Rectangle{}, err
		}
		n, ok := com.ToInt(px)
		if !ok {
			n = int(v * 96 / 72)
		}
		pixels[i] = n
	}
	return image.Rect(pixels[0], pixels[1], pixels[0]+pixels[2], pixels[1]+pixels[3]), nil
}
