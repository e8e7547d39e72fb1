// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package style holds the fixed catalog of visual presets offered to users.
// Every preset carries two prompt phrases: the default one describes its
// own background, the "with color" one asks for a white background so a
// requested brand color is not drowned out.
package style

// Definition describes one preset style. Definitions are immutable.
type Definition struct {
	ID              string
	Name            string
	Description     string
	Prompt          string
	PromptWithColor string
}

// PromptFor returns the phrase to use for the given color description.
func (d Definition) PromptFor(colorDescription string) string {
	if colorDescription != "" {
		return d.PromptWithColor
	}
	return d.Prompt
}

// catalog order is the order styles are listed to clients.
var catalog = []Definition{
	{
		ID:              "pastels",
		Name:            "Pastels",
		Description:     "Soft, muted colors with gentle gradients and rounded shapes",
		Prompt:          "rounded shapes, minimalist, light colored background, cute aesthetic, soft lighting",
		PromptWithColor: "rounded shapes, minimalist, white background, cute aesthetic, soft lighting",
	},
	{
		ID:              "bubbles",
		Name:            "Bubbles",
		Description:     "Glossy, 3D bubble-like appearance with reflections",
		Prompt:          "3D glossy style, reflective surfaces, glass-like, light reflections, shiny, playful",
		PromptWithColor: "3D glossy style, reflective surfaces, shiny, playful, white background",
	},
	{
		ID:              "flat",
		Name:            "Flat Design",
		Description:     "Clean, modern flat design with bold colors and simple shapes",
		Prompt:          "flat design, bold solid colors, geometric shapes, clean lines, vector art style, high contrast",
		PromptWithColor: "flat design, geometric shapes, clean lines, vector art style, white background",
	},
	{
		ID:              "isometric",
		Name:            "Isometric",
		Description:     "3D isometric perspective with depth and dimension",
		Prompt:          "isometric 3D view, 30 degree angle, geometric, depth and dimension, clean edges",
		PromptWithColor: "isometric 3D view, 30 degree angle, geometric, depth and dimension, clean edges, white background",
	},
	{
		ID:              "handDrawn",
		Name:            "Hand Drawn",
		Description:     "Sketchy, hand-drawn illustration style with organic lines",
		Prompt:          "hand drawn illustration, sketchy lines, artistic, doodle style, whimsical",
		PromptWithColor: "hand drawn illustration, sketchy lines, artistic, doodle style, whimsical, white background",
	},
}

// Lookup returns the preset with the given id. Ids are case-sensitive.
func Lookup(id string) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// IDs returns every preset id in catalog order.
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, d := range catalog {
		ids[i] = d.ID
	}
	return ids
}

// All returns a copy of the catalog.
func All() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}
