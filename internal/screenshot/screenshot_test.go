package screenshot

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff})
		}
	}
	return img
}

func decode(t *testing.T, shot *Image) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(shot.Image)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestScale(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		maxWidth int
		want     image.Point
	}{
		{"narrower than limit", 800, 600, 1600, image.Pt(800, 600)},
		{"no limit", 3200, 1800, 0, image.Pt(3200, 1800)},
		{"halved", 3200, 1800, 1600, image.Pt(1600, 900)},
		{"keeps one row", 1000, 1, 100, image.Pt(100, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale(image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)), tt.maxWidth)
			assert.Equal(t, tt.want, got.Bounds().Size())
		})
	}
}

func TestEncode(t *testing.T) {
	shot, err := Encode(solid(400, 200), 100)
	require.NoError(t, err)
	assert.Equal(t, "png", shot.Format)
	assert.Equal(t, 100, shot.Width)
	assert.Equal(t, 50, shot.Height)

	img := decode(t, shot)
	assert.Equal(t, image.Pt(100, 50), img.Bounds().Size())
	r, g, b, _ := img.At(50, 25).RGBA()
	assert.InDelta(t, 0x33, r>>8, 2)
	assert.InDelta(t, 0x66, g>>8, 2)
	assert.InDelta(t, 0x99, b>>8, 2)
}

func TestFromFileRemovesExport(t *testing.T) {
	c := &Capturer{TempDir: t.TempDir(), MaxWidth: 1600}
	path, err := c.TempFile("slide")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "slide-"))

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, solid(320, 180)))
	require.NoError(t, f.Close())

	shot, err := c.FromFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 320, shot.Width)
	assert.Equal(t, 180, shot.Height)
	assert.NoFileExists(t, path)
}

func TestFromFileMaxWidthOverridesDefault(t *testing.T) {
	c := &Capturer{TempDir: t.TempDir(), MaxWidth: 1600}
	path, err := c.TempFile("range")
	require.NoError(t, err)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, solid(320, 180)))
	require.NoError(t, f.Close())

	shot, err := c.FromFile(path, 160)
	require.NoError(t, err)
	assert.Equal(t, 160, shot.Width)
	assert.Equal(t, 90, shot.Height)
}

func TestFromFileMissing(t *testing.T) {
	c := &Capturer{}
	_, err := c.FromFile(filepath.Join(t.TempDir(), "missing.png"), 0)
	assert.Error(t, err)
}

func TestWindowRejectsEmptyRect(t *testing.T) {
	c := &Capturer{}
	_, err := c.Window(image.Rectangle{}, 0)
	assert.Error(t, err)
}
