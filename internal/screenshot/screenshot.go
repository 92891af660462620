// Package screenshot turns exported slides, ranges and captured windows into
// base64 PNG payloads.
package screenshot

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/kbinani/screenshot"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

const Format = "png"

// Image is a screenshot ready to be returned to a client.
type Image struct {
	Image  string `json:"image"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Capturer produces screenshots. Office applications export to files, so
// Capturer also hands out the temporary paths they write to.
type Capturer struct {
	// TempDir receives exported files; os.TempDir() when empty.
	TempDir string
	// MaxWidth is the default width limit; 0 keeps the original size.
	MaxWidth int
}

// TempFile returns an absolute, unused path for an exported PNG. Office
// resolves relative paths against its own working directory.
func (c *Capturer) TempFile(prefix string) (string, error) {
	dir := c.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve screenshot directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create %s", dir)
	}
	return filepath.Join(dir, prefix+"-"+uuid.NewString()+".png"), nil
}

func (c *Capturer) maxWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	return c.MaxWidth
}

// FromFile reads an exported PNG and removes the file.
func (c *Capturer) FromFile(path string, maxWidth int) (*Image, error) {
	defer os.Remove(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "exported image not found")
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", filepath.Base(path))
	}
	return Encode(img, c.maxWidth(maxWidth))
}

// Window captures a rectangle of the screen.
func (c *Capturer) Window(rect image.Rectangle, maxWidth int) (*Image, error) {
	if rect.Empty() {
		return nil, errors.Errorf("window rectangle %v is empty", rect)
	}
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, errors.Wrap(err, "failed to capture window")
	}
	return Encode(img, c.maxWidth(maxWidth))
}

// Encode scales img down to maxWidth and encodes it as base64 PNG.
func Encode(img image.Image, maxWidth int) (*Image, error) {
	img = Scale(img, maxWidth)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "failed to encode screenshot")
	}
	b := img.Bounds()
	return &Image{
		Image:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		Format: Format,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// Scale returns img resized to maxWidth keeping the aspect ratio. Images
// that are already narrow enough are returned as they are.
func Scale(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	height := max(1, b.Dy()*maxWidth/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
