// Package raster implements the local, non-AI image transforms.
//
// Every operation follows the same shape: check the input file exists,
// open it, apply exactly one transform family, write the result through the
// output-path resolver, and return a descriptive success string. Expected
// failures (missing input, invalid mode combinations) are returned as
// "Error:" strings with a nil error; decode and write faults are returned
// as ordinary Go errors. These are local library calls, so nothing here
// retries.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/ironsheep/gemini-image-mcp/internal/naming"
)

// Ops executes raster operations, writing derived files under OutputDir
// unless the caller supplies an explicit output path.
type Ops struct {
	OutputDir string
}

// New creates an Ops bound to an output directory.
func New(outputDir string) *Ops {
	return &Ops{OutputDir: outputDir}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// extOf returns the input file's extension without the dot, falling back
// to png for extensionless paths so derived filenames stay well formed.
func extOf(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "png"
	}
	return ext
}

func open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return img, nil
}

// resolveOutput derives the destination path for a transform result.
func (o *Ops) resolveOutput(seed, explicitPath, ext string) (string, error) {
	return naming.Resolve(o.OutputDir, seed, explicitPath, ext)
}

// save resolves the output path for seed/explicitPath/ext and encodes img
// there. The encoder is chosen by the resolved path's extension.
func (o *Ops) save(img image.Image, seed, explicitPath, ext string) (string, error) {
	path, err := o.resolveOutput(seed, explicitPath, ext)
	if err != nil {
		return "", err
	}
	if err := encodeToFile(img, path, defaultQuality); err != nil {
		return "", err
	}
	return path, nil
}

// namedColors covers the color names callers commonly pass for rotation
// backgrounds and border fills.
var namedColors = map[string]color.NRGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"brown":   {165, 42, 42, 255},
	"pink":    {255, 192, 203, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"silver":  {192, 192, 192, 255},
}

// parseColor resolves a color name, #hex string, or "transparent" to a
// concrete color. Unknown values are faults, not validated degradation.
func parseColor(name string) (color.Color, error) {
	lower := strings.ToLower(strings.TrimSpace(name))

	if lower == "transparent" || lower == "none" {
		return color.NRGBA{}, nil
	}
	if strings.HasPrefix(lower, "#") {
		c, err := colorful.Hex(lower)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: %w", name, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	}
	if c, ok := namedColors[lower]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("invalid color %q", name)
}
