package imaging

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// Generator produces the downscaled JPEG previews shown in listings.
// Originals keep their format; previews are always JPEG.
type Generator struct {
	width   int
	quality int
}

func NewGenerator(width, quality int) *Generator {
	if width <= 0 {
		width = 350
	}
	if quality <= 0 || quality > 100 {
		quality = 70
	}
	return &Generator{width: width, quality: quality}
}

// Preview reads an image, resizes it to the configured width keeping
// aspect ratio, and returns the recompressed JPEG bytes.
func (g *Generator) Preview(r io.Reader) (io.Reader, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Resize(img, g.width, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(g.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return &buf, nil
}
