package raster

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// defaultQuality is applied to lossy encodes when the caller gives none.
const defaultQuality = 90

var validFormats = []string{"png", "jpg", "jpeg", "webp", "gif", "bmp", "tiff"}

// imagingFormats maps target names onto the raster library's encoders.
// WebP is absent here and handled separately.
var imagingFormats = map[string]imaging.Format{
	"png":  imaging.PNG,
	"jpg":  imaging.JPEG,
	"jpeg": imaging.JPEG,
	"gif":  imaging.GIF,
	"bmp":  imaging.BMP,
	"tiff": imaging.TIFF,
}

func isLossy(format string) bool {
	return format == "jpg" || format == "jpeg" || format == "webp"
}

// encodeToFile writes img to path, encoding by the path's extension.
// quality only affects lossy formats.
func encodeToFile(img image.Image, path string, quality int) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "tif" {
		ext = "tiff"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if ext == "webp" {
		if err := webp.Encode(f, img, &webp.Options{Quality: float32(quality)}); err != nil {
			return fmt.Errorf("failed to encode webp: %w", err)
		}
		return nil
	}

	format, ok := imagingFormats[ext]
	if !ok {
		format = imaging.PNG
	}
	if err := imaging.Encode(f, img, format, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// Convert re-encodes an image in a different format. quality (1-100) is
// honored for lossy targets only.
func (o *Ops) Convert(imagePath, targetFormat string, quality int, outputPath string) (string, error) {
	if !fileExists(imagePath) {
		return fmt.Sprintf("Error: Image file not found: %s", imagePath), nil
	}

	targetFormat = strings.ToLower(targetFormat)
	valid := false
	for _, f := range validFormats {
		if f == targetFormat {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Sprintf("Error: Invalid format. Supported: %v", validFormats), nil
	}

	img, err := open(imagePath)
	if err != nil {
		return "", err
	}

	path, err := o.resolveOutput("converted", outputPath, targetFormat)
	if err != nil {
		return "", err
	}

	q := defaultQuality
	if isLossy(targetFormat) && quality > 0 {
		q = quality
	}
	if err := encodeToFile(img, path, q); err != nil {
		return "", err
	}
	log.Printf("Converted to %s: %s", targetFormat, path)

	return fmt.Sprintf("Image converted to %s. Saved to: %s", targetFormat, path), nil
}
