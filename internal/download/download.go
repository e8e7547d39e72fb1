// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package download fetches generated icons, converts them to the requested
// format and bundles them for saving. It backs POST /api/download and the
// CLI's generate command.
package download

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// DefaultDelay is the pause between sequential saves.
const DefaultDelay = 300 * time.Millisecond

// maxImageBytes caps a single fetched image.
const maxImageBytes = 20 << 20

var (
	// ErrHostNotAllowed is returned for URLs outside the allow list.
	ErrHostNotAllowed = errors.New("download: host not allowed")

	// ErrUnsupportedFormat is returned for formats other than png and jpg.
	ErrUnsupportedFormat = errors.New("download: unsupported format")
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	JPG Format = "jpg"
)

// ParseFormat accepts "png", "jpg" and "jpeg" in any case. An empty
// string means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == JPG {
		return "image/jpeg"
	}
	return "image/png"
}

var extension = regexp.MustCompile(`\.\w+$`)

// Filename replaces the extension of name with the format's. Names
// without an extension are returned unchanged.
func Filename(name string, format Format) string {
	return extension.ReplaceAllLiteralString(name, "."+string(format))
}

// File is one image to download.
type File struct {
	URL  string
	Name string
}

// ObjectSource serves objects from our own bucket without going through
// the public URL. *storage.Client satisfies it.
type ObjectSource interface {
	ExtractKey(rawURL string) (string, bool)
	Download(ctx context.Context, key string) ([]byte, error)
	Host() string
}

// Client fetches icon images. Remote fetches are restricted to an allow
// list of hosts so the server cannot be used to reach arbitrary URLs.
type Client struct {
	http    *http.Client
	allowed map[string]bool // nil allows every host
	objects ObjectSource    // nil when storage is not configured
}

// NewClient creates a Client. An empty allowedHosts allows every host,
// which is what the CLI wants. objects may be nil.
func NewClient(allowedHosts []string, objects ObjectSource) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		objects: objects,
	}
	if len(allowedHosts) > 0 {
		c.allowed = make(map[string]bool, len(allowedHosts)+1)
		for _, h := range allowedHosts {
			if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
				c.allowed[h] = true
			}
		}
		if objects != nil {
			if h := objects.Host(); h != "" {
				c.allowed[strings.ToLower(h)] = true
			}
		}
	}
	return c
}

// Check reports whether rawURL may be fetched.
func (c *Client) Check(rawURL string) error {
	if strings.HasPrefix(rawURL, "data:") {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("download: invalid URL %q", rawURL)
	}
	if c.allowed != nil && !c.allowed[strings.ToLower(u.Hostname())] {
		return fmt.Errorf("%w: %s", ErrHostNotAllowed, u.Hostname())
	}
	return nil
}

// Fetch returns the raw bytes behind rawURL. data: URIs are decoded
// locally and URLs in our own bucket are read through the storage API.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.Check(rawURL); err != nil {
		return nil, err
	}
	if strings.HasPrefix(rawURL, "data:") {
		return decodeDataURI(rawURL)
	}
	if c.objects != nil {
		if key, ok := c.objects.ExtractKey(rawURL); ok {
			return c.objects.Download(ctx, key)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("download request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: status %d", rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("download read body: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("download %s: image exceeds %d bytes", rawURL, maxImageBytes)
	}
	return data, nil
}

// decodeDataURI decodes a base64 data: URI.
func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("download: unsupported data URI")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("download: decode data URI: %w", err)
	}
	return data, nil
}
