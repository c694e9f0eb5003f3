package raster

import (
	"encoding/binary"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/ironsheep/gemini-image-mcp/internal/naming"
)

// Info reports metadata about an image file as an indented key/value block.
func (o *Ops) Info(imagePath string) (string, error) {
	if !fileExists(imagePath) {
		return fmt.Sprintf("Error: Image file not found: %s", imagePath), nil
	}

	stat, err := os.Stat(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	depth := 8
	colorspace := "srgb"
	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		depth = 16
	case *image.Gray:
		colorspace = "gray"
	case *image.Gray16:
		colorspace = "gray"
		depth = 16
	case *image.CMYK:
		colorspace = "cmyk"
	}

	resolution := "Unknown"
	if x, y, ok := readDPI(imagePath); ok {
		resolution = fmt.Sprintf("%.0fx%.0f DPI", x, y)
	}

	bounds := img.Bounds()
	lines := []string{
		fmt.Sprintf("  path: %s", imagePath),
		fmt.Sprintf("  format: %s", format),
		fmt.Sprintf("  width: %d", bounds.Dx()),
		fmt.Sprintf("  height: %d", bounds.Dy()),
		fmt.Sprintf("  depth: %d", depth),
		fmt.Sprintf("  colorspace: %s", colorspace),
		fmt.Sprintf("  has_alpha: %v", hasAlpha),
		fmt.Sprintf("  file_size: %s", naming.FormatFileSize(stat.Size())),
		fmt.Sprintf("  resolution: %s", resolution),
	}

	return "Image Information:\n" + strings.Join(lines, "\n"), nil
}

const metersPerInch = 0.0254

// readDPI extracts the recorded pixel density from PNG (pHYs chunk) or
// JPEG (JFIF APP0 header) files. Files without density metadata, and other
// formats, report no DPI.
func readDPI(path string) (x, y float64, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil || len(data) < 12 {
		return 0, 0, false
	}

	if string(data[1:4]) == "PNG" {
		return pngDPI(data)
	}
	if data[0] == 0xFF && data[1] == 0xD8 {
		return jpegDPI(data)
	}
	return 0, 0, false
}

func pngDPI(data []byte) (x, y float64, ok bool) {
	// Walk chunks: length(4) type(4) data(length) crc(4), after the
	// 8-byte signature.
	pos := 8
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		chunkType := string(data[pos+4 : pos+8])
		if chunkType == "pHYs" && pos+8+9 <= len(data) {
			ppuX := binary.BigEndian.Uint32(data[pos+8 : pos+12])
			ppuY := binary.BigEndian.Uint32(data[pos+12 : pos+16])
			unit := data[pos+16]
			if unit == 1 { // pixels per meter
				return float64(ppuX) * metersPerInch, float64(ppuY) * metersPerInch, true
			}
			return 0, 0, false // unit 0 records aspect ratio only
		}
		if chunkType == "IDAT" || chunkType == "IEND" {
			return 0, 0, false
		}
		pos += 12 + length
	}
	return 0, 0, false
}

func jpegDPI(data []byte) (x, y float64, ok bool) {
	// Look for a JFIF APP0 segment directly after SOI.
	pos := 2
	for pos+4 <= len(data) && data[pos] == 0xFF {
		marker := data[pos+1]
		length := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		if marker == 0xE0 && pos+4+length-2 <= len(data) && length >= 14 {
			seg := data[pos+4 : pos+2+length]
			if string(seg[:5]) == "JFIF\x00" {
				unit := seg[7]
				dx := float64(binary.BigEndian.Uint16(seg[8:10]))
				dy := float64(binary.BigEndian.Uint16(seg[10:12]))
				switch unit {
				case 1: // dots per inch
					return dx, dy, true
				case 2: // dots per centimeter
					return dx * 2.54, dy * 2.54, true
				}
				return 0, 0, false
			}
		}
		if marker == 0xDA { // start of scan, no JFIF header found
			return 0, 0, false
		}
		pos += 2 + length
	}
	return 0, 0, false
}
