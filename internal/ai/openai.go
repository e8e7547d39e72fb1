package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// openAIProvider implements ImageProvider using the OpenAI images API
// (POST /v1/images/generations).
type openAIProvider struct {
	config ProviderConfig
	client *http.Client
}

// newOpenAI creates a new OpenAI provider.
func newOpenAI(cfg ProviderConfig) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "dall-e-3"
	}
	return &openAIProvider{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *openAIProvider) Name() string { return "openai" }

// GenerateImage requests one square image. DALL-E models answer with a
// hosted URL; gpt-image models always return base64 data.
func (p *openAIProvider) GenerateImage(ctx context.Context, req ImageRequest) ([]Image, error) {
	body := openAIImageRequest{
		Model:  p.config.Model,
		Prompt: req.Prompt,
		N:      max(req.NumOutputs, 1),
		Size:   openAISize(req.AspectRatio),
	}
	if !strings.HasPrefix(p.config.Model, "gpt-image") {
		body.ResponseFormat = "url"
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("openai marshal: %w", err)
	}

	url := p.config.BaseURL + "/images/generations"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result openAIImageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("openai unmarshal: %w", err)
	}

	var images []Image
	for _, d := range result.Data {
		switch {
		case d.URL != "":
			images = append(images, Image{URL: d.URL, ContentType: "image/png"})
		case d.B64JSON != "":
			data, err := base64.StdEncoding.DecodeString(d.B64JSON)
			if err != nil {
				return nil, fmt.Errorf("openai decode base64: %w", err)
			}
			images = append(images, Image{Data: data, ContentType: "image/png"})
		}
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("openai: %w", ErrNoOutput)
	}
	return images, nil
}

// openAISize maps an aspect ratio onto the sizes the images API accepts.
func openAISize(aspect string) string {
	switch aspect {
	case "16:9":
		return "1792x1024"
	case "9:16":
		return "1024x1792"
	default:
		return "1024x1024"
	}
}

// --- OpenAI images request/response types ---

type openAIImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type openAIImageData struct {
	URL     string `json:"url,omitempty"`
	B64JSON string `json:"b64_json,omitempty"`
}

type openAIImageResponse struct {
	Data []openAIImageData `json:"data"`
}
