// Package imageio loads, saves, crops and pastes images.
// It is the only place that knows about file formats.
package imageio

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Supported output formats
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatTIFF = "tiff"
	FormatBMP  = "bmp"
)

// Load decodes the image at path. PNG, JPEG and GIF come from the standard
// library, TIFF, BMP and WebP from golang.org/x/image.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return img, nil
}

// FormatFromPath derives the output format from a file extension
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return normalizeFormat(ext)
}

func normalizeFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "bmp":
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", format)
	}
}

// Save encodes img to path. An empty format is derived from the extension.
func Save(img image.Image, path, format string) error {
	var err error
	if format == "" {
		format, err = FormatFromPath(path)
	} else {
		format, err = normalizeFormat(format)
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatPNG:
		err = png.Encode(file, img)
	case FormatJPEG:
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: 95})
	case FormatGIF:
		err = gif.Encode(file, img, nil)
	case FormatTIFF:
		err = tiff.Encode(file, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatBMP:
		err = bmp.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	return file.Close()
}

// Crop copies the region [x1,x2) x [y1,y2) into a new image whose bounds start at 0,0.
// Coordinates are relative to the source bounds.
func Crop(img image.Image, x1, y1, x2, y2 int) image.Image {
	origin := img.Bounds().Min
	src := image.Rect(x1, y1, x2, y2).Add(origin).Intersect(img.Bounds())

	dst := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Copy(dst, image.Point{}, img, src, draw.Src, nil)
	return dst
}

// Paste draws src onto dst with its top-left corner at x, y
func Paste(dst draw.Image, src image.Image, x, y int) {
	b := src.Bounds()
	target := image.Rect(x, y, x+b.Dx(), y+b.Dy()).Add(dst.Bounds().Min)
	draw.Draw(dst, target, src, b.Min, draw.Src)
}
