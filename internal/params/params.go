// Package params validates enum-like tool parameters against fixed
// allow-lists.
//
// Validation never fails a call: a value outside its allow-list degrades to
// the documented default with a warning log, trading strictness for
// availability. The one exception is the reference-image count, which is a
// hard limit reported back to the caller.
package params

import (
	"log"
	"strings"
)

// DefaultModel is substituted for unrecognized model names.
const DefaultModel = "gemini-2.5-flash-image"

// DefaultAspectRatio is substituted for unrecognized aspect ratios.
const DefaultAspectRatio = "1:1"

// DefaultResolution is substituted for unrecognized resolutions.
const DefaultResolution = "1K"

var validModels = []string{
	"gemini-2.5-flash-image",
	"gemini-3-pro-image-preview",
}

var validAspectRatios = []string{
	"1:1", "2:3", "3:2", "3:4", "4:3", "4:5", "5:4", "9:16", "16:9", "21:9",
}

var validResolutions = []string{"1K", "2K", "4K"}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Model validates a model name, case-sensitively.
func Model(model string) string {
	if !contains(validModels, model) {
		log.Printf("Invalid model '%s', defaulting to %s", model, DefaultModel)
		return DefaultModel
	}
	return model
}

// AspectRatio validates an aspect ratio string.
func AspectRatio(ratio string) string {
	if !contains(validAspectRatios, ratio) {
		log.Printf("Invalid aspect ratio '%s', defaulting to %s", ratio, DefaultAspectRatio)
		return DefaultAspectRatio
	}
	return ratio
}

// Resolution validates a resolution code, normalizing case first.
func Resolution(resolution string) string {
	resolution = strings.ToUpper(resolution)
	if !contains(validResolutions, resolution) {
		log.Printf("Invalid resolution '%s', defaulting to %s", resolution, DefaultResolution)
		return DefaultResolution
	}
	return resolution
}

// MaxReferenceImages returns the reference-image limit for a model:
// 14 for the pro tier, 3 otherwise.
func MaxReferenceImages(model string) int {
	if strings.Contains(model, "3-pro") {
		return 14
	}
	return 3
}
