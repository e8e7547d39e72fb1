// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// geminiProvider implements ImageProvider using the Gemini API's Imagen
// models through the official genai SDK. Images come back inline.
type geminiProvider struct {
	config ProviderConfig

	once      sync.Once
	client    *genai.Client
	clientErr error
}

// newGemini creates a new Google Gemini provider. The SDK client is built
// on first use because its constructor needs a context.
func newGemini(cfg ProviderConfig) *geminiProvider {
	if cfg.Model == "" {
		cfg.Model = "imagen-4.0-fast-generate-001"
	}
	return &geminiProvider{config: cfg}
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) sdk(ctx context.Context) (*genai.Client, error) {
	p.once.Do(func() {
		cc := &genai.ClientConfig{
			APIKey:  p.config.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
		if p.config.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: p.config.BaseURL}
		}
		p.client, p.clientErr = genai.NewClient(ctx, cc)
	})
	if p.clientErr != nil {
		return nil, fmt.Errorf("gemini client: %w", p.clientErr)
	}
	return p.client, nil
}

// GenerateImage asks Imagen for square PNG output and returns the bytes.
func (p *geminiProvider) GenerateImage(ctx context.Context, req ImageRequest) ([]Image, error) {
	client, err := p.sdk(ctx)
	if err != nil {
		return nil, err
	}

	mime := "image/png"
	if req.OutputFormat == "jpg" || req.OutputFormat == "jpeg" {
		mime = "image/jpeg"
	}

	resp, err := client.Models.GenerateImages(ctx, p.config.Model, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: int32(max(req.NumOutputs, 1)),
		AspectRatio:    req.AspectRatio,
		OutputMIMEType: mime,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate images: %w", err)
	}

	var images []Image
	for _, gi := range resp.GeneratedImages {
		if gi == nil || gi.Image == nil || len(gi.Image.ImageBytes) == 0 {
			continue
		}
		contentType := gi.Image.MIMEType
		if contentType == "" {
			contentType = mime
		}
		images = append(images, Image{Data: gi.Image.ImageBytes, ContentType: contentType})
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("gemini: %w", ErrNoOutput)
	}
	return images, nil
}
