// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"iconforge/internal/ai"
)

// maxMirrorBytes caps how much of a provider-hosted image is copied.
const maxMirrorBytes = 20 << 20

// Uploader is the subset of Client the Publisher needs.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
}

// Publisher turns provider output into a URL the client can display.
//
//   - Hosted URLs pass through unchanged, or are copied into the bucket
//     when mirroring is on (provider links expire after about an hour).
//   - Inline bytes are uploaded to the bucket.
//   - Without storage, inline bytes become a data: URI.
type Publisher struct {
	uploader Uploader // nil when storage is not configured
	mirror   bool
	client   *http.Client
}

// NewPublisher creates a Publisher. uploader may be nil.
func NewPublisher(uploader Uploader, mirror bool) *Publisher {
	return &Publisher{
		uploader: uploader,
		mirror:   mirror && uploader != nil,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Publish returns the URL under which img can be fetched.
func (p *Publisher) Publish(ctx context.Context, img ai.Image) (string, error) {
	if !img.Inline() {
		if img.URL == "" {
			return "", ai.ErrNoOutput
		}
		if !p.mirror {
			return img.URL, nil
		}
		data, contentType, err := p.fetch(ctx, img.URL)
		if err != nil {
			// The provider URL still works for a while; keep it.
			slog.Warn("mirror fetch failed, using provider URL", "url", img.URL, "error", err)
			return img.URL, nil
		}
		if img.ContentType != "" {
			contentType = img.ContentType
		}
		return p.upload(ctx, data, contentType)
	}

	contentType := img.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(img.Data)
	}

	if p.uploader == nil {
		return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data), nil
	}
	return p.upload(ctx, img.Data, contentType)
}

func (p *Publisher) upload(ctx context.Context, data []byte, contentType string) (string, error) {
	key := objectKey(contentType)
	if err := p.uploader.Upload(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return "", fmt.Errorf("publish icon: %w", err)
	}
	return p.uploader.FileURL(key), nil
}

func (p *Publisher) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMirrorBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > maxMirrorBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", maxMirrorBytes)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// objectKey builds "icons/YYYY/MM/<uuid>.<ext>".
func objectKey(contentType string) string {
	ext := "png"
	switch contentType {
	case "image/jpeg", "image/jpg":
		ext = "jpg"
	case "image/webp":
		ext = "webp"
	}
	now := time.Now().UTC()
	return fmt.Sprintf("icons/%04d/%02d/%s.%s", now.Year(), now.Month(), uuid.New().String(), ext)
}
