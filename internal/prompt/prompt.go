// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package prompt builds the natural-language prompt sent to the image model.
package prompt

import "strings"

const suffix = "white background, digital illustration"

// Assemble joins subject, optional color description and style phrase.
//
// Callers pick the style phrase variant: when colorDescription is set the
// style's "with color" phrase is expected. No validation happens here.
func Assemble(subject, stylePrompt, colorDescription string) string {
	parts := []string{subject}
	if colorDescription != "" {
		parts = append(parts, colorDescription+" color")
	}
	parts = append(parts, stylePrompt, suffix)
	return strings.Join(parts, ", ")
}
