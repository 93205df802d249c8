package loaders

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ImageData contains loaded image data as Vec3 color array, top row first
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads a PNG, JPEG, BMP or TIFF image from disk
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return DecodeImage(file)
}

// DecodeImageBytes decodes an in-memory image, such as one embedded in a glTF buffer
func DecodeImageBytes(data []byte) (*ImageData, error) {
	return DecodeImage(bytes.NewReader(data))
}

// DecodeImage decodes any registered image format into linear [0, 1]
// texels. Stored values are treated as gamma 2 encoded, the inverse of the
// encoding applied when renders are written.
func DecodeImage(r io.Reader) (*ImageData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cr, cg, cb, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*width+x] = core.NewVec3(decodeGamma(cr), decodeGamma(cg), decodeGamma(cb))
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// decodeGamma maps a 16-bit channel from RGBA to a linear value
func decodeGamma(c uint32) float64 {
	v := float64(c) / 65535.0
	return v * v
}

// Texture wraps the image as a material color source
func (d *ImageData) Texture() *material.ImageTexture {
	return material.NewImageTexture(d.Width, d.Height, d.Pixels)
}
