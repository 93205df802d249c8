package output

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestWrite_RoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(80 * x), G: uint8(120 * y), B: 200, A: 255})
		}
	}

	// Lossy formats only need to round-trip dimensions
	tests := []struct {
		name     string
		file     string
		lossless bool
	}{
		{"png", "frame.png", true},
		{"jpeg", "frame.jpg", false},
		{"jpeg upper case", "FRAME.JPEG", false},
		{"bmp", "frame.bmp", true},
		{"tiff", "frame.tiff", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "dir", tt.file)
			if !Supported(path) {
				t.Fatalf("Expected %s to be supported", tt.file)
			}
			if err := Write(path, img); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("Failed to open written file: %v", err)
			}
			defer f.Close()
			decoded, _, err := image.Decode(f)
			if err != nil {
				t.Fatalf("Failed to decode written file: %v", err)
			}
			if decoded.Bounds().Dx() != 3 || decoded.Bounds().Dy() != 2 {
				t.Fatalf("Expected 3x2 image, got %v", decoded.Bounds())
			}
			if !tt.lossless {
				return
			}
			for y := 0; y < 2; y++ {
				for x := 0; x < 3; x++ {
					r, g, b, _ := decoded.At(x, y).RGBA()
					want := img.RGBAAt(x, y)
					if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
						t.Errorf("Pixel (%d,%d): expected %v, got (%d,%d,%d)", x, y, want, r>>8, g>>8, b>>8)
					}
				}
			}
		})
	}
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.gif")
	if Supported(path) {
		t.Error("Expected .gif to be unsupported")
	}
	err := Write(path, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("Expected no file to be created")
	}
}
