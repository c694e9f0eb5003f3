// Package gemini implements the generative image operations backed by the
// Gemini API.
//
// Every operation returns a human-readable string. Expected failures a
// caller can fix (missing input file, too many reference images) come back
// as strings prefixed "Error:" with a nil error; backend and I/O faults are
// returned as ordinary Go errors after the retry schedule is exhausted.
package gemini

import (
	"context"
	"fmt"
	"log"
	"os"

	"google.golang.org/genai"

	"github.com/ironsheep/gemini-image-mcp/internal/config"
	"github.com/ironsheep/gemini-image-mcp/internal/naming"
	"github.com/ironsheep/gemini-image-mcp/internal/params"
	"github.com/ironsheep/gemini-image-mcp/internal/retry"
)

// contentGenerator is the slice of the genai SDK the operations depend on.
// *genai.Models satisfies it; tests substitute a fake backend.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client executes generative image operations.
type Client struct {
	models    contentGenerator
	outputDir string
	policy    retry.Policy
}

// New wraps an authenticated genai client.
func New(client *genai.Client, cfg *config.Config) *Client {
	return &Client{
		models:    client.Models,
		outputDir: cfg.OutputDir,
		policy:    retry.DefaultPolicy,
	}
}

// NewBackendClient creates the underlying genai client for the configured
// API key.
func NewBackendClient(ctx context.Context, cfg *config.Config) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func (c *Client) generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return retry.Do(ctx, c.policy, func() (*genai.GenerateContentResponse, error) {
		return c.models.GenerateContent(ctx, model, contents, cfg)
	})
}

// scanResponse walks the first candidate's parts and returns the last text
// fragment and the last inline image payload, either of which may be absent.
func scanResponse(resp *genai.GenerateContentResponse) (text string, imageData []byte) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.Text != "" {
			text = part.Text
		} else if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			imageData = part.InlineData.Data
		}
	}
	return text, imageData
}

func (c *Client) saveImage(seed, explicitPath string, data []byte) (string, error) {
	path, err := naming.Resolve(c.outputDir, seed, explicitPath, "png")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}

func imagePart(path string) (*genai.Part, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: naming.MIMEType(path),
			Data:     data,
		},
	}, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GenerateImage creates an image from a text prompt.
func (c *Client) GenerateImage(ctx context.Context, prompt, model, aspectRatio, resolution, outputPath string) (string, error) {
	model = params.Model(model)
	aspectRatio = params.AspectRatio(aspectRatio)
	resolution = params.Resolution(resolution)

	log.Printf("Generating image with model=%s, aspect_ratio=%s, resolution=%s", model, aspectRatio, resolution)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	// The API keyed by an AI Studio key honors only the aspect ratio;
	// the validated resolution is logged but not transmitted.
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: aspectRatio,
		},
	}

	resp, err := c.generate(ctx, model, contents, cfg)
	if err != nil {
		return "", err
	}

	text, imageData := scanResponse(resp)
	if imageData == nil {
		return fmt.Sprintf("No image was generated. Model response: %s", orNoResponse(text)), nil
	}

	path, err := c.saveImage(prompt, outputPath, imageData)
	if err != nil {
		return "", err
	}
	log.Printf("Image saved to %s", path)

	return withNotes(fmt.Sprintf("Image saved to: %s", path), text), nil
}

// EditImage applies text instructions to an existing image.
func (c *Client) EditImage(ctx context.Context, imagePath, prompt, model, outputPath string) (string, error) {
	model = params.Model(model)

	if !fileExists(imagePath) {
		return fmt.Sprintf("Error: Image file not found: %s", imagePath), nil
	}

	log.Printf("Editing image %s with model=%s", imagePath, model)

	img, err := imagePart(imagePath)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt), img}, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	resp, err := c.generate(ctx, model, contents, cfg)
	if err != nil {
		return "", err
	}

	text, imageData := scanResponse(resp)
	if imageData == nil {
		return fmt.Sprintf("No edited image was generated. Model response: %s", orNoResponse(text)), nil
	}

	path, err := c.saveImage("edited_"+prompt, outputPath, imageData)
	if err != nil {
		return "", err
	}
	log.Printf("Edited image saved to %s", path)

	return withNotes(fmt.Sprintf("Edited image saved to: %s", path), text), nil
}

// GenerateWithReferences creates an image guided by the prompt and one or
// more reference images.
func (c *Client) GenerateWithReferences(ctx context.Context, prompt string, referenceImages []string, model, aspectRatio, resolution, outputPath string) (string, error) {
	model = params.Model(model)
	aspectRatio = params.AspectRatio(aspectRatio)
	resolution = params.Resolution(resolution)

	maxRefs := params.MaxReferenceImages(model)
	if len(referenceImages) > maxRefs {
		return fmt.Sprintf("Error: Maximum %d reference images allowed for %s", maxRefs, model), nil
	}

	var missing []string
	for _, ref := range referenceImages {
		if !fileExists(ref) {
			missing = append(missing, ref)
		}
	}
	if len(missing) > 0 {
		return fmt.Sprintf("Error: Reference images not found: %v", missing), nil
	}

	log.Printf("Generating with %d references, model=%s, resolution=%s", len(referenceImages), model, resolution)

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	for _, ref := range referenceImages {
		img, err := imagePart(ref)
		if err != nil {
			return "", err
		}
		parts = append(parts, img)
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: aspectRatio,
		},
	}

	resp, err := c.generate(ctx, model, contents, cfg)
	if err != nil {
		return "", err
	}

	text, imageData := scanResponse(resp)
	if imageData == nil {
		return fmt.Sprintf("No image was generated. Model response: %s", orNoResponse(text)), nil
	}

	path, err := c.saveImage(prompt, outputPath, imageData)
	if err != nil {
		return "", err
	}
	log.Printf("Image saved to %s", path)

	return withNotes(fmt.Sprintf("Image saved to: %s", path), text), nil
}

// describePrompts maps detail levels to instruction templates. Unknown
// levels fall back to detailed.
var describePrompts = map[string]string{
	"brief":     "Describe this image in one or two sentences.",
	"detailed":  "Provide a detailed description of this image, including the main subjects, colors, composition, and mood.",
	"technical": "Provide a technical analysis of this image, including composition, lighting, color palette, style, and any text visible. Also note the apparent resolution and image quality.",
}

// DescribeImage returns a text description of an image. No file is written.
func (c *Client) DescribeImage(ctx context.Context, imagePath, detailLevel string) (string, error) {
	if !fileExists(imagePath) {
		return fmt.Sprintf("Error: Image file not found: %s", imagePath), nil
	}

	prompt, ok := describePrompts[detailLevel]
	if !ok {
		prompt = describePrompts["detailed"]
	}

	log.Printf("Describing image %s with detail_level=%s", imagePath, detailLevel)

	img, err := imagePart(imagePath)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt), img}, genai.RoleUser),
	}

	resp, err := c.generate(ctx, params.DefaultModel, contents, nil)
	if err != nil {
		return "", err
	}

	text, _ := scanResponse(resp)
	if text == "" {
		return "Could not generate description", nil
	}
	return text, nil
}

func orNoResponse(text string) string {
	if text == "" {
		return "No response"
	}
	return text
}

func withNotes(result, text string) string {
	if text != "" {
		return result + "\n\nModel notes: " + text
	}
	return result
}
