// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

// ImageRequest carries a prompt plus the generation parameters sent to the
// model. Providers map the fields onto their own API and ignore the ones
// they have no equivalent for.
type ImageRequest struct {
	Prompt            string
	NumOutputs        int
	AspectRatio       string
	OutputFormat      string
	OutputQuality     int
	NumInferenceSteps int
	GoFast            bool
}

// DefaultImageRequest returns the fixed parameters used for icons: one
// square PNG at maximum quality with the small step budget of a fast model.
func DefaultImageRequest(prompt string) ImageRequest {
	return ImageRequest{
		Prompt:            prompt,
		NumOutputs:        1,
		AspectRatio:       "1:1",
		OutputFormat:      "png",
		OutputQuality:     100,
		NumInferenceSteps: 4,
		GoFast:            false,
	}
}

// Image is a single generated image. Hosted models return a URL; others
// return the encoded bytes inline, in which case URL is empty.
type Image struct {
	URL         string
	Data        []byte
	ContentType string
}

// Inline reports whether the image arrived as bytes rather than a URL.
func (img Image) Inline() bool {
	return img.URL == "" && len(img.Data) > 0
}
