// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package download

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"net/http"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Replicate can return webp
)

// JPEGQuality matches what browsers use for canvas.toBlob.
const JPEGQuality = 92

// Convert encodes data in the requested format. PNG input is passed
// through untouched for PNG output. JPEG output is flattened onto white
// since JPEG has no alpha channel.
func Convert(data []byte, format Format) ([]byte, error) {
	if format == PNG && http.DetectContentType(data) == "image/png" {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("convert decode: %w", err)
	}

	var buf bytes.Buffer
	switch format {
	case PNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	case JPG:
		err = imaging.Encode(&buf, flatten(img), imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("convert encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// flatten draws img over an opaque white canvas of the same size.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
