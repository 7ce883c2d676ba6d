package imaging

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testImage(t *testing.T, w, h int) io.Reader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestGenerator_PreviewResizesToWidth(t *testing.T) {
	gen := NewGenerator(100, 70)

	out, err := gen.Preview(testImage(t, 400, 200))
	assert.NoError(t, err)

	decoded, _, err := image.Decode(out)
	assert.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 50, decoded.Bounds().Dy())
}

func TestGenerator_PreviewRejectsGarbage(t *testing.T) {
	gen := NewGenerator(100, 70)

	_, err := gen.Preview(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestNewGenerator_Defaults(t *testing.T) {
	gen := NewGenerator(0, 0)
	assert.Equal(t, 350, gen.width)
	assert.Equal(t, 70, gen.quality)
}
