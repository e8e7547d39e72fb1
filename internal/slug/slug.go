// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns a theme prompt into a file-name-safe stem for
// downloaded icons.
package slug

import (
	"regexp"
	"strings"
)

// Fallback is used when nothing usable remains of the input.
const Fallback = "icons"

var (
	// whitespace matches runs of any whitespace.
	whitespace = regexp.MustCompile(`\s+`)
	// unsafe matches anything that isn't a letter, digit, hyphen, or underscore.
	unsafe = regexp.MustCompile(`[^\p{L}\p{N}_-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a file-name stem from the given string.
// Example: "Summer  Food!" → "summer-food"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = whitespace.ReplaceAllString(result, "-")
	result = unsafe.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if result == "" {
		return Fallback
	}
	return result
}
