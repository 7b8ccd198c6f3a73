package imageio

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

// createTestImage creates an RGBA image with a deterministic colour per pixel
func createTestImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 20), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func sameRGBA(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

// TestSaveAndLoad round-trips the lossless formats
func TestSaveAndLoad(t *testing.T) {
	img := createTestImage(12, 6)
	dir := t.TempDir()

	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(img, path, ""); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if loaded.Bounds().Dx() != 12 || loaded.Bounds().Dy() != 6 {
				t.Fatalf("Expected 12x6 image, got %v", loaded.Bounds())
			}

			for y := 0; y < 6; y++ {
				for x := 0; x < 12; x++ {
					if !sameRGBA(img.At(x, y), loaded.At(x, y)) {
						t.Fatalf("Pixel mismatch at (%d,%d)", x, y)
					}
				}
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"a.png", FormatPNG, false},
		{"a.JPG", FormatJPEG, false},
		{"a.jpeg", FormatJPEG, false},
		{"a.tif", FormatTIFF, false},
		{"a.gif", FormatGIF, false},
		{"a.bmp", FormatBMP, false},
		{"a.xyz", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}

// TestCropAndPaste moves a region and checks it lands where expected
func TestCropAndPaste(t *testing.T) {
	src := createTestImage(10, 4)

	region := Crop(src, 4, 0, 7, 4)
	if region.Bounds() != image.Rect(0, 0, 3, 4) {
		t.Fatalf("Expected region bounds 3x4 at origin, got %v", region.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			if !sameRGBA(region.At(x, y), src.At(x+4, y)) {
				t.Fatalf("Crop mismatch at (%d,%d)", x, y)
			}
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, 10, 4))
	Paste(dst, region, 1, 0)
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			if !sameRGBA(dst.At(x+1, y), src.At(x+4, y)) {
				t.Fatalf("Paste mismatch at (%d,%d)", x+1, y)
			}
		}
	}
	if !sameRGBA(dst.At(0, 0), color.RGBA{}) {
		t.Error("Paste should not touch pixels outside the target region")
	}
}

// TestCropOffsetBounds checks that crop coordinates are relative to the image origin
func TestCropOffsetBounds(t *testing.T) {
	full := createTestImage(10, 4)
	sub := full.SubImage(image.Rect(2, 0, 10, 4))

	region := Crop(sub, 0, 0, 2, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			if !sameRGBA(region.At(x, y), full.At(x+2, y)) {
				t.Fatalf("Offset crop mismatch at (%d,%d)", x, y)
			}
		}
	}
}
