// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alexmullins/zip"
)

// Archive fetches every file, converts it and writes a ZIP to w. Entries
// are encrypted with AES-256 when password is non-empty. Files are
// processed in order and the first failure aborts the archive.
func (c *Client) Archive(ctx context.Context, w io.Writer, files []File, format Format, password string) error {
	zw := zip.NewWriter(w)

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := c.Fetch(ctx, f.URL)
		if err != nil {
			return err
		}
		out, err := Convert(data, format)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}

		name := Filename(f.Name, format)
		var entry io.Writer
		if password != "" {
			entry, err = zw.Encrypt(name, password)
		} else {
			entry, err = zw.Create(name)
		}
		if err != nil {
			return fmt.Errorf("archive entry %s: %w", name, err)
		}
		if _, err := entry.Write(out); err != nil {
			return fmt.Errorf("archive write %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("archive close: %w", err)
	}
	return nil
}

// SaveAll downloads files one at a time into dir, pausing delay between
// files. It returns the paths written so far, even on error.
func (c *Client) SaveAll(ctx context.Context, dir string, files []File, format Format, delay time.Duration) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var written []string
	for i, f := range files {
		data, err := c.Fetch(ctx, f.URL)
		if err != nil {
			return written, err
		}
		out, err := Convert(data, format)
		if err != nil {
			return written, fmt.Errorf("%s: %w", f.Name, err)
		}

		path := filepath.Join(dir, filepath.Base(Filename(f.Name, format)))
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
		slog.Debug("saved icon", "path", path)

		if i < len(files)-1 && delay > 0 {
			select {
			case <-ctx.Done():
				return written, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return written, nil
}
