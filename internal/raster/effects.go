package raster

import (
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// EffectOptions selects the adjustments to apply. Nil pointers mean the
// effect is not requested; zero is a meaningful value for the adjustments
// (for example brightness 0 is an explicit no-change pass).
type EffectOptions struct {
	Blur       *float64 // gaussian blur sigma, 0-100
	Sharpen    *float64 // sharpen sigma, 0-100
	Brightness *float64 // -100 to 100 percent
	Contrast   *float64 // -100 to 100 percent
	Saturation *float64 // -100 to 100 percent
	Grayscale  bool
	Sepia      bool
	Negative   bool
}

func (e EffectOptions) empty() bool {
	return e.Blur == nil && e.Sharpen == nil && e.Brightness == nil &&
		e.Contrast == nil && e.Saturation == nil &&
		!e.Grayscale && !e.Sepia && !e.Negative
}

// Effects applies the selected adjustments in a fixed order: blur, sharpen,
// brightness, contrast, saturation, grayscale, sepia, negative. Selecting
// no effects is an error reported before anything is written.
func (o *Ops) Effects(imagePath string, opts EffectOptions, outputPath string) (string, error) {
	if !fileExists(imagePath) {
		return fmt.Sprintf("Error: Image file not found: %s", imagePath), nil
	}
	if opts.empty() {
		return "Error: No effects specified", nil
	}

	img, err := open(imagePath)
	if err != nil {
		return "", err
	}

	var applied []string
	var result image.Image = img

	if opts.Blur != nil {
		result = imaging.Blur(result, *opts.Blur)
		applied = append(applied, fmt.Sprintf("blur(%g)", *opts.Blur))
	}
	if opts.Sharpen != nil {
		result = imaging.Sharpen(result, *opts.Sharpen)
		applied = append(applied, fmt.Sprintf("sharpen(%g)", *opts.Sharpen))
	}
	if opts.Brightness != nil {
		result = imaging.AdjustBrightness(result, *opts.Brightness)
		applied = append(applied, fmt.Sprintf("brightness(%g)", *opts.Brightness))
	}
	if opts.Contrast != nil {
		// AdjustContrast consumes the caller's -100..100 scale directly.
		result = imaging.AdjustContrast(result, *opts.Contrast)
		applied = append(applied, fmt.Sprintf("contrast(%g)", *opts.Contrast))
	}
	if opts.Saturation != nil {
		result = imaging.AdjustSaturation(result, *opts.Saturation)
		applied = append(applied, fmt.Sprintf("saturation(%g)", *opts.Saturation))
	}
	if opts.Grayscale {
		result = imaging.Grayscale(result)
		applied = append(applied, "grayscale")
	}
	if opts.Sepia {
		result = effect.Sepia(result)
		applied = append(applied, "sepia")
	}
	if opts.Negative {
		result = imaging.Invert(result)
		applied = append(applied, "negative")
	}

	// Seed the filename with at most three effect names to keep it short.
	seedEffects := applied
	if len(seedEffects) > 3 {
		seedEffects = seedEffects[:3]
	}

	path, err := o.save(result, "effects_"+strings.Join(seedEffects, "_"), outputPath, extOf(imagePath))
	if err != nil {
		return "", err
	}
	log.Printf("Applied effects %v: %s", applied, path)

	return fmt.Sprintf("Applied effects: %s. Saved to: %s", strings.Join(applied, ", "), path), nil
}

// Composite overlays one image onto a base at a pixel offset. opacity in
// [0,1] fades the overlay before compositing; 1.0 leaves it untouched.
// Output is always PNG so overlay transparency survives.
func (o *Ops) Composite(baseImage, overlayImage string, positionX, positionY int, opacity float64, outputPath string) (string, error) {
	if !fileExists(baseImage) {
		return fmt.Sprintf("Error: Base image not found: %s", baseImage), nil
	}
	if !fileExists(overlayImage) {
		return fmt.Sprintf("Error: Overlay image not found: %s", overlayImage), nil
	}

	base, err := open(baseImage)
	if err != nil {
		return "", err
	}
	overlay, err := open(overlayImage)
	if err != nil {
		return "", err
	}

	result := imaging.Overlay(base, overlay, image.Pt(positionX, positionY), opacity)

	path, err := o.save(result, "composited", outputPath, "png")
	if err != nil {
		return "", err
	}
	log.Printf("Composited images: %s", path)

	return fmt.Sprintf("Images composited. Saved to: %s", path), nil
}
