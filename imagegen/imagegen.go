package imagegen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"nyayasetu/config"
	"nyayasetu/logger"
)

const filePrefix = "dailylaw"

// Generator produces an editorial image for a generated case study and
// stores it under the local uploads directory.
//
// The whole step is best-effort: Generate may return a usable ref together
// with a non-nil error (remote fallback when the local save failed), or an
// empty ref with an error. Callers log the error and continue — a broken
// image pipeline must never block publishing the day's content.
type Generator struct {
	apiKey     string
	model      string
	timeout    time.Duration
	uploadsDir string
}

func NewGenerator(cfg config.AppConfig) *Generator {
	return &Generator{
		apiKey:     cfg.GeminiApiKey,
		model:      cfg.AI.ImageModel,
		timeout:    time.Duration(cfg.AI.ImageTimeoutSeconds) * time.Second,
		uploadsDir: cfg.UploadsDir,
	}
}

// Generate requests one image for the given title and saves it locally.
// On success the returned ref is a "/uploads/..." path owned by the daily
// record; otherwise it is a remote URI when the provider exposed one.
func (g *Generator) Generate(ctx context.Context, title string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: g.apiKey,
	})
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"A professional, realistic news editorial photograph for an Indian legal news article titled: %q. "+
			"The style should be serious, journalistic, and directly related to the incident or court ruling. "+
			"Do not include any text or words in the image.",
		title,
	)

	resp, err := client.Models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return "", err
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return "", fmt.Errorf("imagegen: empty image response")
	}

	img := resp.GeneratedImages[0].Image
	localRef, saveErr := g.save(img.ImageBytes)
	if saveErr == nil {
		return localRef, nil
	}

	// Local save failed; fall back to the provider-hosted asset if any.
	logger.ErrorWithFields("image save failed, using remote fallback", logger.Fields{
		"error": saveErr.Error(),
	})
	if img.GCSURI != "" {
		return img.GCSURI, saveErr
	}
	return "", saveErr
}

func (g *Generator) save(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("imagegen: no image bytes to save")
	}
	if err := os.MkdirAll(g.uploadsDir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s-%s.png", filePrefix, uuid.NewString())
	if err := os.WriteFile(filepath.Join(g.uploadsDir, filename), data, 0o644); err != nil {
		return "", err
	}
	return "/uploads/" + filename, nil
}
