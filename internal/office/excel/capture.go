package excel

import (
	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
)

// XlPictureAppearance, XlCopyPictureFormat
const (
	xlScreen = 1
	xlBitmap = 2
)

// ExportRange renders a range (the used range when rangeStr is empty) to a
// PNG file at path. The range is copied as a picture, pasted into a
// temporary chart of the same size and exported from there. It returns the
// range that was rendered.
func ExportRange(app com.Object, sheetName, rangeStr, path string) (string, error) {
	if rangeStr != "" {
		if _, _, _, _, err := ParseRange(rangeStr); err != nil {
			return "", err
		}
	}
	s := com.NewScope()
	defer s.Release()
	sheet, err := worksheet(s, app, sheetName)
	if err != nil {
		return "", err
	}
	if rangeStr == "" {
		if rangeStr, err = usedRange(s, sheet); err != nil {
			return "", err
		}
	}
	r, err := s.GetObject(sheet, "Range", rangeStr)
	if err != nil {
		return "", err
	}
	width, err := com.Float(r, "Width")
	if err != nil {
		return "", err
	}
	height, err := com.Float(r, "Height")
	if err != nil {
		return "", err
	}
	if _, err := r.Call("CopyPicture", xlScreen, xlBitmap); err != nil {
		return "", errors.Wrapf(err, "failed to copy %s as picture", rangeStr)
	}

	chartObjects, err := s.CallObject(sheet, "ChartObjects")
	if err != nil {
		return "", err
	}
	chartObject, err := s.CallObject(chartObjects, "Add", 0.0, 0.0, width, height)
	if err != nil {
		return "", errors.Wrap(err, "failed to add capture chart")
	}
	defer chartObject.Call("Delete")

	// Chart.Paste needs the chart to be active.
	if _, err := chartObject.Call("Activate"); err != nil {
		return "", err
	}
	chart, err := s.GetObject(chartObject, "Chart")
	if err != nil {
		return "", err
	}
	if _, err := chart.Call("Paste"); err != nil {
		return "", errors.Wrap(err, "failed to paste picture")
	}
	exported, err := chart.Call("Export", path, "PNG")
	if err != nil {
		return "", errors.Wrapf(err, "failed to export %s", path)
	}
	if exported != nil && !com.ToBool(exported) {
		return "", errors.Errorf("Excel did not export %s", path)
	}
	return NormalizeRange(rangeStr), nil
}
