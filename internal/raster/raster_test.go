package raster

import (
	"encoding/binary"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func newTestOps(t *testing.T) *Ops {
	t.Helper()
	return New(t.TempDir())
}

// writeImage saves a solid-color image to dir and returns its path.
func writeImage(t *testing.T, dir, name string, w, h int, c color.NRGBA) string {
	t.Helper()
	img := imaging.New(w, h, c)
	path := filepath.Join(dir, name)
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("failed to save test image: %v", err)
	}
	return path
}

// savedPath extracts the path following "Saved to: " in a result string.
func savedPath(t *testing.T, result string) string {
	t.Helper()
	idx := strings.LastIndex(result, "Saved to: ")
	if idx < 0 {
		t.Fatalf("result has no saved path: %q", result)
	}
	return result[idx+len("Saved to: "):]
}

func openSaved(t *testing.T, result string) image.Image {
	t.Helper()
	img, err := imaging.Open(savedPath(t, result))
	if err != nil {
		t.Fatalf("failed to open saved image: %v", err)
	}
	return img
}

func pixelAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

var (
	red  = color.NRGBA{255, 0, 0, 255}
	blue = color.NRGBA{0, 0, 255, 255}
)

// === Resize ===

func TestResize_MaintainAspectFromWidth(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 400, 100, red)

	result, err := o.Resize(src, 200, 0, true, "")
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	if !strings.HasPrefix(result, "Image resized from 400x100 to 200x50.") {
		t.Errorf("result: got %q", result)
	}

	out := openSaved(t, result)
	if out.Bounds().Dx() != 200 || out.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 200x50", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestResize_MaintainAspectFromHeight(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 300, 150, red)

	result, err := o.Resize(src, 0, 50, true, "")
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	out := openSaved(t, result)
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 100x50", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestResize_NoAspectKeepsOriginalDimension(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 100, 80, red)

	result, err := o.Resize(src, 50, 0, false, "")
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	out := openSaved(t, result)
	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 80 {
		t.Errorf("dimensions: got %dx%d, want 50x80", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestResize_NoDimensions(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 100, 100, red)

	result, err := o.Resize(src, 0, 0, true, "")
	if err != nil {
		t.Fatalf("Resize returned error: %v", err)
	}
	if result != "Error: At least one of width or height must be specified" {
		t.Errorf("result: got %q", result)
	}
}

func TestResize_MissingFile(t *testing.T) {
	o := newTestOps(t)

	result, err := o.Resize("/no/such.png", 100, 0, true, "")
	if err != nil {
		t.Fatalf("Resize returned error: %v", err)
	}
	if result != "Error: Image file not found: /no/such.png" {
		t.Errorf("result: got %q", result)
	}
}

// === Crop ===

func TestCrop_Absolute(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 200, 200, red)

	left, top, right, bottom := 10, 10, 110, 110
	result, err := o.Crop(src, &left, &top, &right, &bottom, 0, 0, "center", "")
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	if !strings.HasPrefix(result, "Image cropped from 200x200 to 100x100.") {
		t.Errorf("result: got %q", result)
	}
	out := openSaved(t, result)
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestCrop_Gravity(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 100, 100, red)

	for _, gravity := range []string{"center", "north", "south", "east", "west", "north_east", "south_west"} {
		t.Run(gravity, func(t *testing.T) {
			result, err := o.Crop(src, nil, nil, nil, nil, 40, 30, gravity, "")
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			out := openSaved(t, result)
			if out.Bounds().Dx() != 40 || out.Bounds().Dy() != 30 {
				t.Errorf("dimensions: got %dx%d, want 40x30", out.Bounds().Dx(), out.Bounds().Dy())
			}
		})
	}
}

func TestCrop_UnknownGravityDefaultsToCenter(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 100, 100, red)

	result, err := o.Crop(src, nil, nil, nil, nil, 50, 50, "diagonal", "")
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	out := openSaved(t, result)
	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestCrop_NeitherMode(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 100, 100, red)

	left := 10
	result, err := o.Crop(src, &left, nil, nil, nil, 0, 0, "center", "")
	if err != nil {
		t.Fatalf("Crop returned error: %v", err)
	}
	if result != "Error: Provide either (left, top, right, bottom) or (width, height, gravity)" {
		t.Errorf("result: got %q", result)
	}
}

// === Rotate ===

func TestRotate_RightAngleClockwise(t *testing.T) {
	o := newTestOps(t)

	// 2x1 image: red on the left, blue on the right. Rotating 90
	// degrees clockwise puts red on top.
	img := imaging.New(2, 1, red)
	img.Set(1, 0, blue)
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	if err := imaging.Save(img, src); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	result, err := o.Rotate(src, 90, "transparent", "")
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}

	out := openSaved(t, result)
	if out.Bounds().Dx() != 1 || out.Bounds().Dy() != 2 {
		t.Fatalf("dimensions: got %dx%d, want 1x2", out.Bounds().Dx(), out.Bounds().Dy())
	}
	if got := pixelAt(out, 0, 0); got != red {
		t.Errorf("top pixel: got %v, want red", got)
	}
	if got := pixelAt(out, 0, 1); got != blue {
		t.Errorf("bottom pixel: got %v, want blue", got)
	}
}

func TestRotate_OutputIsPNG(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.jpg", 20, 20, red)

	result, err := o.Rotate(src, 45, "white", "")
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	if !strings.HasSuffix(savedPath(t, result), ".png") {
		t.Errorf("rotate output not png: %q", savedPath(t, result))
	}
}

func TestRotate_InvalidColor(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 10, 10, red)

	if _, err := o.Rotate(src, 45, "notacolor", ""); err == nil {
		t.Error("expected error for invalid background color")
	}
}

// === Flip ===

func TestFlip(t *testing.T) {
	o := newTestOps(t)

	img := imaging.New(2, 2, red)
	img.Set(1, 0, blue)
	img.Set(1, 1, blue)
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	if err := imaging.Save(img, src); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	t.Run("horizontal", func(t *testing.T) {
		result, err := o.Flip(src, "horizontal", "")
		if err != nil {
			t.Fatalf("Flip failed: %v", err)
		}
		out := openSaved(t, result)
		if got := pixelAt(out, 0, 0); got != blue {
			t.Errorf("left pixel after horizontal flip: got %v, want blue", got)
		}
	})

	t.Run("vertical", func(t *testing.T) {
		result, err := o.Flip(src, "vertical", "")
		if err != nil {
			t.Fatalf("Flip failed: %v", err)
		}
		// Columns unchanged by a vertical flip of this pattern.
		out := openSaved(t, result)
		if got := pixelAt(out, 0, 0); got != red {
			t.Errorf("left pixel after vertical flip: got %v, want red", got)
		}
	})

	t.Run("invalid direction", func(t *testing.T) {
		result, err := o.Flip(src, "diagonal", "")
		if err != nil {
			t.Fatalf("Flip returned error: %v", err)
		}
		if result != "Error: Direction must be 'horizontal' or 'vertical'" {
			t.Errorf("result: got %q", result)
		}
	})
}

// === Convert ===

func TestConvert(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 10, 10, red)

	tests := []struct {
		target     string
		wantFormat string
	}{
		{"jpeg", "jpeg"},
		{"jpg", "jpeg"},
		{"png", "png"},
		{"gif", "gif"},
		{"bmp", "bmp"},
		{"tiff", "tiff"},
		{"webp", "webp"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			result, err := o.Convert(src, tt.target, 90, "")
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if !strings.HasPrefix(result, "Image converted to "+tt.target+".") {
				t.Errorf("result: got %q", result)
			}

			f, err := os.Open(savedPath(t, result))
			if err != nil {
				t.Fatalf("failed to open output: %v", err)
			}
			defer f.Close()
			_, format, err := image.Decode(f)
			if err != nil {
				t.Fatalf("failed to decode output: %v", err)
			}
			if format != tt.wantFormat {
				t.Errorf("format: got %q, want %q", format, tt.wantFormat)
			}
		})
	}
}

func TestConvert_InvalidFormat(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 10, 10, red)

	result, err := o.Convert(src, "heic", 90, "")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if !strings.HasPrefix(result, "Error: Invalid format. Supported:") {
		t.Errorf("result: got %q", result)
	}
}

// === Effects ===

func TestEffects_NoneSelected(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 10, 10, red)

	result, err := o.Effects(src, EffectOptions{}, "")
	if err != nil {
		t.Fatalf("Effects returned error: %v", err)
	}
	if result != "Error: No effects specified" {
		t.Errorf("result: got %q", result)
	}

	// Nothing may be written for the empty selection.
	entries, err := os.ReadDir(o.OutputDir)
	if err == nil && len(entries) > 0 {
		t.Errorf("output directory touched: %d entries", len(entries))
	}
}

func TestEffects_Grayscale(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 10, 10, red)

	result, err := o.Effects(src, EffectOptions{Grayscale: true}, "")
	if err != nil {
		t.Fatalf("Effects failed: %v", err)
	}
	if !strings.HasPrefix(result, "Applied effects: grayscale.") {
		t.Errorf("result: got %q", result)
	}

	out := openSaved(t, result)
	px := pixelAt(out, 5, 5)
	if px.R != px.G || px.G != px.B {
		t.Errorf("pixel not gray: %v", px)
	}
}

func TestEffects_Negative(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 10, 10, red)

	result, err := o.Effects(src, EffectOptions{Negative: true}, "")
	if err != nil {
		t.Fatalf("Effects failed: %v", err)
	}

	out := openSaved(t, result)
	px := pixelAt(out, 5, 5)
	if px.R != 0 || px.G != 255 || px.B != 255 {
		t.Errorf("inverted red: got %v, want cyan", px)
	}
}

func TestEffects_OrderAndReporting(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 10, 10, red)

	blur, brightness := 2.0, 10.0
	result, err := o.Effects(src, EffectOptions{
		Blur:       &blur,
		Brightness: &brightness,
		Grayscale:  true,
	}, "")
	if err != nil {
		t.Fatalf("Effects failed: %v", err)
	}

	if !strings.HasPrefix(result, "Applied effects: blur(2), brightness(10), grayscale.") {
		t.Errorf("result: got %q", result)
	}
}

func TestEffects_ZeroValueStillApplies(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 10, 10, red)

	zero := 0.0
	result, err := o.Effects(src, EffectOptions{Contrast: &zero}, "")
	if err != nil {
		t.Fatalf("Effects failed: %v", err)
	}
	if !strings.HasPrefix(result, "Applied effects: contrast(0).") {
		t.Errorf("result: got %q", result)
	}
}

// === Composite ===

func TestComposite(t *testing.T) {
	o := newTestOps(t)
	dir := t.TempDir()
	base := writeImage(t, dir, "base.png", 8, 8, red)
	overlay := writeImage(t, dir, "overlay.png", 4, 4, blue)

	result, err := o.Composite(base, overlay, 2, 2, 1.0, "")
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	if !strings.HasPrefix(result, "Images composited.") {
		t.Errorf("result: got %q", result)
	}

	out := openSaved(t, result)
	if got := pixelAt(out, 3, 3); got != blue {
		t.Errorf("overlay region: got %v, want blue", got)
	}
	if got := pixelAt(out, 0, 0); got != red {
		t.Errorf("base region: got %v, want red", got)
	}
	if !strings.HasSuffix(savedPath(t, result), ".png") {
		t.Errorf("composite output not png")
	}
}

func TestComposite_Opacity(t *testing.T) {
	o := newTestOps(t)
	dir := t.TempDir()
	base := writeImage(t, dir, "base.png", 8, 8, red)
	overlay := writeImage(t, dir, "overlay.png", 4, 4, blue)

	result, err := o.Composite(base, overlay, 0, 0, 0.5, "")
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	out := openSaved(t, result)
	px := pixelAt(out, 1, 1)
	if px == blue || px == red {
		t.Errorf("half-opacity overlay not blended: %v", px)
	}
}

func TestComposite_MissingInputs(t *testing.T) {
	o := newTestOps(t)
	base := writeImage(t, t.TempDir(), "base.png", 8, 8, red)

	result, err := o.Composite("/no/base.png", base, 0, 0, 1.0, "")
	if err != nil {
		t.Fatalf("Composite returned error: %v", err)
	}
	if result != "Error: Base image not found: /no/base.png" {
		t.Errorf("result: got %q", result)
	}

	result, err = o.Composite(base, "/no/overlay.png", 0, 0, 1.0, "")
	if err != nil {
		t.Fatalf("Composite returned error: %v", err)
	}
	if result != "Error: Overlay image not found: /no/overlay.png" {
		t.Errorf("result: got %q", result)
	}
}

// === Thumbnail ===

func TestThumbnail(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 200, 100, red)

	result, err := o.Thumbnail(src, 50, "")
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}
	if !strings.HasPrefix(result, "Thumbnail created (50x50).") {
		t.Errorf("result: got %q", result)
	}

	out := openSaved(t, result)
	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

// === Info ===

func TestInfo(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 64, 48, red)

	result, err := o.Info(src)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}

	for _, want := range []string{
		"Image Information:",
		"path: " + src,
		"format: png",
		"width: 64",
		"height: 48",
		"depth: 8",
		"file_size: ",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Info output missing %q:\n%s", want, result)
		}
	}
}

func TestInfo_MissingFile(t *testing.T) {
	o := newTestOps(t)

	result, err := o.Info("/no/such.png")
	if err != nil {
		t.Fatalf("Info returned error: %v", err)
	}
	if result != "Error: Image file not found: /no/such.png" {
		t.Errorf("result: got %q", result)
	}
}

// === DPI parsing ===

func TestPNGDPI(t *testing.T) {
	// Minimal synthetic PNG: signature, fake IHDR, pHYs with 2835
	// pixels/meter (72 DPI), unit 1. CRCs are not validated.
	var data []byte
	data = append(data, []byte("\x89PNG\r\n\x1a\n")...)

	ihdr := make([]byte, 8+13+4)
	binary.BigEndian.PutUint32(ihdr[0:4], 13)
	copy(ihdr[4:8], "IHDR")
	data = append(data, ihdr...)

	phys := make([]byte, 8+9+4)
	binary.BigEndian.PutUint32(phys[0:4], 9)
	copy(phys[4:8], "pHYs")
	binary.BigEndian.PutUint32(phys[8:12], 2835)
	binary.BigEndian.PutUint32(phys[12:16], 2835)
	phys[16] = 1
	data = append(data, phys...)

	x, y, ok := pngDPI(data)
	if !ok {
		t.Fatal("pngDPI did not find pHYs")
	}
	if x < 71.9 || x > 72.1 || y < 71.9 || y > 72.1 {
		t.Errorf("dpi: got %.2fx%.2f, want ~72x72", x, y)
	}
}

func TestJPEGDPI(t *testing.T) {
	// SOI + JFIF APP0 claiming 300x300 DPI.
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	data = append(data, []byte("JFIF\x00")...)
	data = append(data, 0x01, 0x02) // version
	data = append(data, 0x01)       // units: dots per inch
	data = append(data, 0x01, 0x2C) // x density 300
	data = append(data, 0x01, 0x2C) // y density 300
	data = append(data, 0x00, 0x00) // no thumbnail

	x, y, ok := jpegDPI(data)
	if !ok {
		t.Fatal("jpegDPI did not find JFIF density")
	}
	if x != 300 || y != 300 {
		t.Errorf("dpi: got %.0fx%.0f, want 300x300", x, y)
	}
}

func TestReadDPI_NoMetadata(t *testing.T) {
	src := writeImage(t, t.TempDir(), "src.png", 10, 10, red)

	if _, _, ok := readDPI(src); ok {
		t.Error("readDPI reported density for a file without pHYs")
	}
}

// === Explicit output paths ===

func TestExplicitOutputPath(t *testing.T) {
	o := newTestOps(t)
	src := writeImage(t, t.TempDir(), "src.png", 20, 20, red)

	explicit := filepath.Join(t.TempDir(), "nested", "custom.png")
	result, err := o.Resize(src, 10, 0, true, explicit)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	if savedPath(t, result) != explicit {
		t.Errorf("path: got %q, want %q", savedPath(t, result), explicit)
	}
	if _, err := os.Stat(explicit); err != nil {
		t.Errorf("output not written to explicit path: %v", err)
	}
}
