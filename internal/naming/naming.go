// Package naming derives filesystem-safe output paths for generated and
// transformed images.
//
// Generated filenames take the form {slug}_{timestamp}.{ext}, where the slug
// is an ASCII token derived from the prompt (or another seed string) and the
// timestamp has second precision. Two calls with the same seed inside the
// same second therefore resolve to the same path and the later write wins;
// this is a known, accepted collision source.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// maxSlugLength caps the slug portion of generated filenames.
const maxSlugLength = 50

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s_-]`)
	separatorRun = regexp.MustCompile(`[-_\s]+`)
)

// Slugify converts free text to a lowercase ASCII token safe for filenames.
//
// Unicode input is NFKD-decomposed and non-ASCII code points are dropped, so
// accented characters degrade to their base letters ("café" -> "cafe").
// Runs of whitespace, underscores, and hyphens collapse to a single hyphen,
// so an underscore separates words rather than vanishing. The result always
// matches ^[a-z0-9-]{0,50}$ and may be empty.
func Slugify(text string) string {
	decomposed := norm.NFKD.String(text)

	var ascii strings.Builder
	for _, r := range decomposed {
		if r < 128 {
			ascii.WriteRune(r)
		}
	}

	s := strings.ToLower(ascii.String())
	s = nonSlugChars.ReplaceAllString(s, "")
	s = separatorRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > maxSlugLength {
		s = s[:maxSlugLength]
	}
	return s
}

// Filename generates a slug-and-timestamp filename for the given seed text.
func Filename(seed, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", Slugify(seed), timestamp, extension)
}

// Resolve determines the output path for an image.
//
// If explicitPath is non-empty it is returned verbatim after its parent
// directory has been created; extension is ignored in that case. Otherwise a
// filename is derived from seed and placed under dir, which is created
// recursively if absent.
func Resolve(dir, seed, explicitPath, extension string) (string, error) {
	if explicitPath != "" {
		if err := os.MkdirAll(filepath.Dir(explicitPath), 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
		return explicitPath, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return filepath.Join(dir, Filename(seed, extension)), nil
}

// FormatFileSize renders a byte count in human-readable binary units with
// one decimal place.
func FormatFileSize(sizeBytes int64) string {
	size := float64(sizeBytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

// MIMEType returns the MIME type for an image path based on its extension.
// Unrecognized extensions fall back to image/png.
func MIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	case ".tiff", ".tif":
		return "image/tiff"
	default:
		return "image/png"
	}
}
