package raster

import (
	"fmt"
	"image"
	"log"
	"math"

	"github.com/disintegration/imaging"
)

// Resize scales an image to the given dimensions. A zero width or height
// means "unspecified": with maintainAspect the missing dimension is computed
// from the original ratio (rounded to the nearest pixel), otherwise it keeps
// the original value. Both zero is an error.
func (o *Ops) Resize(imagePath string, width, height int, maintainAspect bool, outputPath string) (string, error) {
	if !fileExists(imagePath) {
		return fmt.Sprintf("Error: Image file not found: %s", imagePath), nil
	}
	if width == 0 && height == 0 {
		return "Error: At least one of width or height must be specified", nil
	}

	img, err := open(imagePath)
	if err != nil {
		return "", err
	}

	bounds := img.Bounds()
	originalSize := fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy())

	if maintainAspect {
		if width > 0 && height == 0 {
			height = int(math.Round(float64(bounds.Dy()) * float64(width) / float64(bounds.Dx())))
		} else if height > 0 && width == 0 {
			width = int(math.Round(float64(bounds.Dx()) * float64(height) / float64(bounds.Dy())))
		}
	} else {
		if width == 0 {
			width = bounds.Dx()
		}
		if height == 0 {
			height = bounds.Dy()
		}
	}

	resized := imaging.Resize(img, width, height, imaging.Lanczos)

	path, err := o.save(resized, fmt.Sprintf("resized_%dx%d", width, height), outputPath, extOf(imagePath))
	if err != nil {
		return "", err
	}
	log.Printf("Resized %s -> %dx%d: %s", originalSize, width, height, path)

	return fmt.Sprintf("Image resized from %s to %dx%d. Saved to: %s", originalSize, width, height, path), nil
}

// gravityAnchors maps gravity names to crop anchors.
var gravityAnchors = map[string]imaging.Anchor{
	"center":     imaging.Center,
	"north":      imaging.Top,
	"south":      imaging.Bottom,
	"east":       imaging.Right,
	"west":       imaging.Left,
	"north_east": imaging.TopRight,
	"north_west": imaging.TopLeft,
	"south_east": imaging.BottomRight,
	"south_west": imaging.BottomLeft,
}

// Crop extracts a region from an image in one of two mutually exclusive
// modes: absolute coordinates (all four of left/top/right/bottom) or a
// gravity-anchored width×height window. An unknown gravity degrades to
// center with a warning.
func (o *Ops) Crop(imagePath string, left, top, right, bottom *int, width, height int, gravity, outputPath string) (string, error) {
	if !fileExists(imagePath) {
		return fmt.Sprintf("Error: Image file not found: %s", imagePath), nil
	}

	img, err := open(imagePath)
	if err != nil {
		return "", err
	}

	bounds := img.Bounds()
	originalSize := fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy())

	var cropped *image.NRGBA
	switch {
	case left != nil && top != nil && right != nil && bottom != nil:
		cropped = imaging.Crop(img, image.Rect(*left, *top, *right, *bottom))
	case width > 0 && height > 0:
		anchor, ok := gravityAnchors[gravity]
		if !ok {
			log.Printf("Invalid gravity '%s', defaulting to center", gravity)
			anchor = imaging.Center
		}
		cropped = imaging.CropAnchor(img, width, height, anchor)
	default:
		return "Error: Provide either (left, top, right, bottom) or (width, height, gravity)", nil
	}

	newW, newH := cropped.Bounds().Dx(), cropped.Bounds().Dy()

	path, err := o.save(cropped, fmt.Sprintf("cropped_%dx%d", newW, newH), outputPath, extOf(imagePath))
	if err != nil {
		return "", err
	}
	log.Printf("Cropped %s -> %dx%d: %s", originalSize, newW, newH, path)

	return fmt.Sprintf("Image cropped from %s to %dx%d. Saved to: %s", originalSize, newW, newH, path), nil
}

// Rotate turns an image by the given degrees, clockwise for positive
// values. Corners exposed by non-right-angle rotations are filled with
// backgroundColor. Output is always PNG so transparent fills survive.
func (o *Ops) Rotate(imagePath string, degrees float64, backgroundColor, outputPath string) (string, error) {
	if !fileExists(imagePath) {
		return fmt.Sprintf("Error: Image file not found: %s", imagePath), nil
	}

	bg, err := parseColor(backgroundColor)
	if err != nil {
		return "", err
	}

	img, err := open(imagePath)
	if err != nil {
		return "", err
	}

	// imaging rotates counter-clockwise for positive angles; negate to
	// keep the clockwise-positive convention callers expect.
	rotated := imaging.Rotate(img, -degrees, bg)

	path, err := o.save(rotated, fmt.Sprintf("rotated_%gdeg", degrees), outputPath, "png")
	if err != nil {
		return "", err
	}
	log.Printf("Rotated %g degrees: %s", degrees, path)

	return fmt.Sprintf("Image rotated %g degrees. Saved to: %s", degrees, path), nil
}

// Flip mirrors an image horizontally (left-right) or vertically
// (top-bottom). Any other direction is an error.
func (o *Ops) Flip(imagePath, direction, outputPath string) (string, error) {
	if !fileExists(imagePath) {
		return fmt.Sprintf("Error: Image file not found: %s", imagePath), nil
	}
	if direction != "horizontal" && direction != "vertical" {
		return "Error: Direction must be 'horizontal' or 'vertical'", nil
	}

	img, err := open(imagePath)
	if err != nil {
		return "", err
	}

	var flipped *image.NRGBA
	if direction == "horizontal" {
		flipped = imaging.FlipH(img)
	} else {
		flipped = imaging.FlipV(img)
	}

	path, err := o.save(flipped, "flipped_"+direction, outputPath, extOf(imagePath))
	if err != nil {
		return "", err
	}
	log.Printf("Flipped %s: %s", direction, path)

	return fmt.Sprintf("Image flipped %s. Saved to: %s", direction, path), nil
}

// Thumbnail produces an exact size×size square: scale to cover, then
// center-crop.
func (o *Ops) Thumbnail(imagePath string, size int, outputPath string) (string, error) {
	if !fileExists(imagePath) {
		return fmt.Sprintf("Error: Image file not found: %s", imagePath), nil
	}

	img, err := open(imagePath)
	if err != nil {
		return "", err
	}

	thumb := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	path, err := o.save(thumb, fmt.Sprintf("thumb_%d", size), outputPath, extOf(imagePath))
	if err != nil {
		return "", err
	}
	log.Printf("Created thumbnail %dx%d: %s", size, size, path)

	return fmt.Sprintf("Thumbnail created (%dx%d). Saved to: %s", size, size, path), nil
}

// Border pads the canvas on all sides by borderSize pixels of a solid
// fill color.
func (o *Ops) Border(imagePath string, borderSize int, borderColor, outputPath string) (string, error) {
	if !fileExists(imagePath) {
		return fmt.Sprintf("Error: Image file not found: %s", imagePath), nil
	}

	fill, err := parseColor(borderColor)
	if err != nil {
		return "", err
	}

	img, err := open(imagePath)
	if err != nil {
		return "", err
	}

	bounds := img.Bounds()
	bordered := imaging.New(bounds.Dx()+2*borderSize, bounds.Dy()+2*borderSize, fill)
	bordered = imaging.Paste(bordered, img, image.Pt(borderSize, borderSize))

	path, err := o.save(bordered, fmt.Sprintf("bordered_%dpx", borderSize), outputPath, extOf(imagePath))
	if err != nil {
		return "", err
	}
	log.Printf("Added %dpx border: %s", borderSize, path)

	return fmt.Sprintf("Added %dpx %s border. Saved to: %s", borderSize, borderColor, path), nil
}
